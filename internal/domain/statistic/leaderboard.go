package statistic

import (
	"context"
	"sort"
	"time"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/campusboard/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

// A loaded leaderboard outlives its period a little, so late increments of
// the last day still land in an existing key.
const leaderboardTTL = 40 * 24 * time.Hour

// A point change earned less than loadMargin after a load may already be in
// the loaded sums. Such a change drops the ranking instead of incrementing it.
const loadMargin = 5 * time.Second

type Leaderboard interface {
	GetLeaderBoard(
		ctx context.Context,
		universityID string,
		period entity.LeaderboardPeriod,
		offset, limit int,
	) ([]entity.UserPoints, error)

	GetRank(
		ctx context.Context,
		userID, universityID string,
		period entity.LeaderboardPeriod,
	) (uint64, error)

	ChangePointLeaderboard(
		ctx context.Context,
		value int64,
		earnedAt time.Time,
		userID, universityID string,
	) error
}

type leaderboard struct {
	pointHistoryRepo repository.PointHistoryRepository
	redisClient      xredis.Client
	now              func() time.Time
}

func New(
	pointHistoryRepo repository.PointHistoryRepository,
	redisClient xredis.Client,
) *leaderboard {
	return &leaderboard{
		pointHistoryRepo: pointHistoryRepo,
		redisClient:      redisClient,
		now:              time.Now,
	}
}

func (l *leaderboard) GetLeaderBoard(
	ctx context.Context,
	universityID string,
	period entity.LeaderboardPeriod,
	offset, limit int,
) ([]entity.UserPoints, error) {
	key := leaderboardKey(universityID, period)
	uncached, err := l.ensureLoaded(ctx, key, universityID, period)
	if err != nil {
		return nil, err
	}

	if uncached != nil {
		if offset >= len(uncached) || limit <= 0 {
			return []entity.UserPoints{}, nil
		}

		return uncached[offset:min(offset+limit, len(uncached))], nil
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, key, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read range of %s: %v", key, err)
		return nil, errorx.Unknown
	}

	leaderboard := []entity.UserPoints{}
	for _, z := range results {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}

		leaderboard = append(leaderboard, entity.UserPoints{UserID: member, Points: int64(z.Score)})
	}

	return leaderboard, nil
}

// GetRank returns the 1-based rank of user, or 0 when the user has no points
// in the period.
func (l *leaderboard) GetRank(
	ctx context.Context,
	userID string,
	universityID string,
	period entity.LeaderboardPeriod,
) (uint64, error) {
	key := leaderboardKey(universityID, period)
	uncached, err := l.ensureLoaded(ctx, key, universityID, period)
	if err != nil {
		return 0, err
	}

	if uncached != nil {
		for i, p := range uncached {
			if p.UserID == userID {
				return uint64(i + 1), nil
			}
		}

		return 0, nil
	}

	rank, ok, err := l.redisClient.ZRevRank(ctx, key, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get rank of %s in %s: %v", userID, key, err)
		return 0, errorx.Unknown
	}

	if !ok {
		return 0, nil
	}

	return rank + 1, nil
}

func (l *leaderboard) ChangePointLeaderboard(
	ctx context.Context,
	value int64,
	earnedAt time.Time,
	userID, universityID string,
) error {
	for _, kind := range entity.LeaderboardPeriodKinds {
		period := entity.LeaderboardPeriod{Kind: kind, At: earnedAt}
		key := leaderboardKey(universityID, period)
		result, err := l.redisClient.ZChange(ctx, key, value, userID, earnedAt, loadMargin)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot change %s of %s: %v", key, userID, err)
			return errorx.Unknown
		}

		if result == xredis.ZChangeDropped {
			xcontext.Logger(ctx).Debugf("Dropped %s, it was loaded at the time %s earned points", key, userID)
		}
	}

	return nil
}

// ensureLoaded loads the ranking from the database on a cache miss. It
// returns the ranking itself when a concurrent change prevented caching it,
// and nil when the ranking is readable from redis.
func (l *leaderboard) ensureLoaded(
	ctx context.Context, key, universityID string, period entity.LeaderboardPeriod,
) ([]entity.UserPoints, error) {
	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check existence of %s: %v", key, err)
		return nil, errorx.Unknown
	}

	if ok {
		return nil, nil
	}

	// Changes after this point either fail the load below or are not in the
	// loaded sums.
	version, err := l.redisClient.Version(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get version of %s: %v", key, err)
		return nil, errorx.Unknown
	}

	points, err := l.pointHistoryRepo.Statistic(ctx, repository.StatisticPointFilter{
		UniversityID: universityID,
		Start:        period.Start(),
		End:          period.End(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load statistic from database: %v", err)
		return nil, errorx.Unknown
	}

	members := make([]redis.Z, 0, len(points))
	for _, p := range points {
		members = append(members, redis.Z{Member: p.UserID, Score: float64(p.Points)})
	}

	loaded, err := l.redisClient.ZLoad(ctx, key, version, l.now(), leaderboardTTL, members...)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot cache %s: %v", key, err)
		return nil, errorx.Unknown
	}

	if loaded {
		return nil, nil
	}

	// Same order as ZREVRANGE.
	sort.Slice(points, func(i, j int) bool {
		if points[i].Points != points[j].Points {
			return points[i].Points > points[j].Points
		}
		return points[i].UserID > points[j].UserID
	})

	if points == nil {
		points = []entity.UserPoints{}
	}

	return points, nil
}
