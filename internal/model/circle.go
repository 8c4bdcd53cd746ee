package model

type CreateCircleRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
	Category    string `json:"category" validate:"required,max=64"`
	Schedule    string `json:"schedule" validate:"max=200"`
}

type CreateCircleResponse Circle

type GetCircleRequest struct {
	CircleID string `json:"circle_id" validate:"required"`
}

type GetCircleResponse Circle

type GetCirclesRequest struct {
	Category string `json:"category"`
	Offset   int    `json:"offset" validate:"min=0"`
	Limit    int    `json:"limit" validate:"min=0"`
}

type GetCirclesResponse struct {
	Circles []Circle `json:"circles"`
}

type JoinCircleRequest struct {
	CircleID string `json:"circle_id" validate:"required"`
}

type JoinCircleResponse struct{}

type LeaveCircleRequest struct {
	CircleID string `json:"circle_id" validate:"required"`
}

type LeaveCircleResponse struct{}

type AskQuestionRequest struct {
	CircleID string `json:"circle_id" validate:"required"`
	Text     string `json:"text" validate:"required,max=5000"`
}

type AskQuestionResponse Post
