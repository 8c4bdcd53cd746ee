package model

type SearchRequest struct {
	Keyword       string `json:"keyword" validate:"required,max=100"`
	Period        string `json:"period" validate:"omitempty,oneof=week month all"`
	HasBestAnswer bool   `json:"has_best_answer"`
	Sort          string `json:"sort" validate:"omitempty,oneof=post_count latest_activity created_at"`
}

type SearchResponse struct {
	Boards  []Board  `json:"boards"`
	Posts   []Post   `json:"posts"`
	Circles []Circle `json:"circles"`
}
