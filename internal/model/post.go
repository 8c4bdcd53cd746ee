package model

type CreatePostRequest struct {
	BoardID string `json:"board_id" validate:"required"`
	Text    string `json:"text" validate:"required,max=5000"`
}

type CreatePostResponse Post

type ThankPostRequest struct {
	PostID string `json:"post_id" validate:"required"`
}

type ThankPostResponse struct {
	ThanksCount int64 `json:"thanks_count"`
}

type GetPostsRequest struct {
	BoardID string `json:"board_id" validate:"required"`
	Offset  int    `json:"offset" validate:"min=0"`
	Limit   int    `json:"limit" validate:"min=0"`
}

type GetPostsResponse struct {
	Posts []Post `json:"posts"`
}
