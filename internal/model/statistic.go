package model

type GetLeaderboardRequest struct {
	Period string `json:"period" validate:"required,oneof=week month"`
	Offset int    `json:"offset" validate:"min=0"`
	Limit  int    `json:"limit" validate:"min=0"`
}

type GetLeaderboardResponse struct {
	Leaderboard []UserStatistic `json:"leaderboard"`
	MyRank      uint64          `json:"my_rank"`
}
