package model

type GetMeRequest struct{}

type GetMeResponse User

type GetUserRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type GetUserResponse User

type UpdateProfileRequest struct {
	Name       string  `json:"name" validate:"omitempty,max=64"`
	Department string  `json:"department" validate:"omitempty,max=128"`
	Year       int     `json:"year" validate:"omitempty,min=1,max=4"`
	Bio        *string `json:"bio" validate:"omitempty,max=500"`
}

type UpdateProfileResponse User

type UploadAvatarRequest struct{}

type UploadAvatarResponse struct {
	URL string `json:"url"`
}

type DeleteAccountRequest struct{}

type DeleteAccountResponse struct{}

func (DeleteAccountResponse) RevokesAccessToken() bool {
	return true
}
