package model

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=64"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

type VerifyEmailResponse struct{}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResendVerificationResponse struct{}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// AccessToken is the payload signed into access tokens.
type AccessToken struct {
	ID string `json:"id"`
}

func (r LoginResponse) AccessTokenInfo() string {
	return r.AccessToken
}

func (r LoginResponse) SessionInfo() map[string]any {
	return map[string]any{"user_id": r.User.ID}
}
