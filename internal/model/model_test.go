package model

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestPaginationRejectsNegativeValues(t *testing.T) {
	validate := validator.New()

	testCases := []struct {
		name  string
		valid any
		bad   any
		field string
	}{
		{"boards offset", &GetBoardsRequest{}, &GetBoardsRequest{Offset: -1}, "Offset"},
		{"boards limit", &GetBoardsRequest{Limit: 5}, &GetBoardsRequest{Limit: -5}, "Limit"},
		{"circles offset", &GetCirclesRequest{}, &GetCirclesRequest{Offset: -1}, "Offset"},
		{"posts offset", &GetPostsRequest{Offset: 3}, &GetPostsRequest{Offset: -3}, "Offset"},
		{"messages limit", &GetMessagesRequest{}, &GetMessagesRequest{Limit: -1}, "Limit"},
		{"notifications offset", &GetNotificationsRequest{}, &GetNotificationsRequest{Offset: -1}, "Offset"},
		{"point history offset", &GetPointHistoryRequest{}, &GetPointHistoryRequest{Offset: -1}, "Offset"},
		{"leaderboard offset", &GetLeaderboardRequest{Offset: 10}, &GetLeaderboardRequest{Offset: -1}, "Offset"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, validate.StructPartial(tt.valid, tt.field))
			require.Error(t, validate.StructPartial(tt.bad, tt.field))
		})
	}
}
