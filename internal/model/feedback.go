package model

type SubmitFeedbackRequest struct {
	Category string `json:"category" validate:"required,oneof=bug feature other"`
	Message  string `json:"message" validate:"required,max=2000"`
}

type SubmitFeedbackResponse struct {
	ID string `json:"id"`
}
