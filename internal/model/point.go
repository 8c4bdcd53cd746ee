package model

type GetPointHistoryRequest struct {
	Offset int `json:"offset" validate:"min=0"`
	Limit  int `json:"limit" validate:"min=0"`
}

type GetPointHistoryResponse struct {
	History []PointHistory `json:"history"`
}

type GetBadgesRequest struct{}

type GetBadgesResponse struct {
	Badges []Badge `json:"badges"`
}
