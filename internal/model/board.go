package model

type CreateBoardRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Department  string `json:"department" validate:"max=128"`
	Year        int    `json:"year" validate:"omitempty,min=1,max=4"`
}

type CreateBoardResponse Board

type GetBoardRequest struct {
	BoardID string `json:"board_id" validate:"required"`
}

type GetBoardResponse Board

type GetBoardsRequest struct {
	// Year is kept raw, it is normalized into [1, 4] by the handler.
	Year       string `json:"year"`
	Department string `json:"department"`
	Offset     int    `json:"offset" validate:"min=0"`
	Limit      int    `json:"limit" validate:"min=0"`
}

type GetBoardsResponse struct {
	Boards []Board `json:"boards"`
}

type SelectBestAnswerRequest struct {
	BoardID string `json:"board_id" validate:"required"`
	PostID  string `json:"post_id" validate:"required"`
}

type SelectBestAnswerResponse struct{}
