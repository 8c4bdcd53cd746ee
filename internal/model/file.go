package model

type UploadImageRequest struct {
	Kind string `json:"kind" validate:"required,oneof=boards posts circles"`
	ID   string `json:"id" validate:"required"`
}

type UploadImageResponse struct {
	URL string `json:"url"`
}
