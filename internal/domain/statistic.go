package domain

import (
	"context"
	"time"

	"github.com/campusboard/backend/internal/domain/statistic"
	"github.com/campusboard/backend/internal/model"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/xcontext"
)

type StatisticDomain interface {
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
}

type statisticDomain struct {
	userRepo    repository.UserRepository
	leaderboard statistic.Leaderboard
}

func NewStatisticDomain(userRepo repository.UserRepository, leaderboard statistic.Leaderboard) *statisticDomain {
	return &statisticDomain{userRepo: userRepo, leaderboard: leaderboard}
}

func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	period, err := statistic.ParsePeriod(req.Period, time.Now())
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid period: %v", err)
	}

	user, err := getRequestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	points, err := d.leaderboard.GetLeaderBoard(
		ctx, user.UniversityID, period, req.Offset, paginationLimit(ctx, req.Limit))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := make([]string, 0, len(points))
	for _, p := range points {
		userIDs = append(userIDs, p.UserID)
	}

	users, err := getShortUsers(ctx, d.userRepo, userIDs)
	if err != nil {
		return nil, err
	}

	result := []model.UserStatistic{}
	for i, p := range points {
		u, ok := users[p.UserID]
		if !ok {
			// Deleted accounts keep their history but leave the ranking.
			continue
		}

		result = append(result, model.UserStatistic{
			User:        u,
			Value:       p.Points,
			CurrentRank: req.Offset + i + 1,
		})
	}

	myRank, err := d.leaderboard.GetRank(ctx, user.ID, user.UniversityID, period)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get rank: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetLeaderboardResponse{Leaderboard: result, MyRank: myRank}, nil
}
