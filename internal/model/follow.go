package model

type FollowRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type FollowResponse struct{}

type UnfollowRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type UnfollowResponse struct{}

type GetFollowersRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type GetFollowersResponse struct {
	Users []ShortUser `json:"users"`
}

type GetFollowingRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type GetFollowingResponse struct {
	Users []ShortUser `json:"users"`
}
