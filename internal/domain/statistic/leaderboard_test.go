package statistic

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/testutil"
	"github.com/campusboard/backend/pkg/xredis"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestLeaderboard_LoadFromDBOnMiss(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	pointHistoryRepo := repository.NewPointHistoryRepository()

	for _, h := range []entity.PointHistory{
		{UserID: testutil.User1.ID, Action: entity.PointActionPostCreated, Points: 5},
		{UserID: testutil.User2.ID, Action: entity.PointActionBestAnswer, Points: 10},
		{UserID: testutil.User1.ID, Action: entity.PointActionPostCreated, Points: 5},
	} {
		h.ID = uuid.NewString()
		h.UniversityID = testutil.KAIST.ID
		require.NoError(t, pointHistoryRepo.Create(ctx, &h))
	}

	var added []redis.Z
	var addedKey string
	redisClient := &testutil.MockRedisClient{
		ZLoadFunc: func(
			ctx context.Context, key string, version int64, loadedAt time.Time, ttl time.Duration, z ...redis.Z,
		) (bool, error) {
			require.Equal(t, leaderboardTTL, ttl)
			addedKey = key
			added = append(added, z...)
			return true, nil
		},
		ZRevRangeWithScoresFunc: func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
			return []redis.Z{{Member: testutil.User1.ID, Score: 10}, {Member: testutil.User2.ID, Score: 10}}, nil
		},
	}

	period := entity.LeaderboardPeriod{Kind: entity.LeaderboardWeek, At: time.Now()}
	board, err := New(pointHistoryRepo, redisClient).GetLeaderBoard(ctx, testutil.KAIST.ID, period, 0, 10)
	require.NoError(t, err)
	require.Len(t, board, 2)

	require.Equal(t, "leaderboard:kaist:week:"+period.Key(), addedKey)
	require.ElementsMatch(t, []redis.Z{
		{Member: testutil.User1.ID, Score: 10},
		{Member: testutil.User2.ID, Score: 10},
	}, added)
}

func TestLeaderboard_ChangeOnlyLoadedKeys(t *testing.T) {
	ctx := testutil.MockContext()
	now := time.Now()
	weekKey := leaderboardKey(testutil.KAIST.ID, entity.LeaderboardPeriod{Kind: entity.LeaderboardWeek, At: now})

	incremented := map[string]int64{}
	redisClient := &testutil.MockRedisClient{
		ZChangeFunc: func(
			ctx context.Context, key string, incr int64, member string, at time.Time, margin time.Duration,
		) (xredis.ZChangeResult, error) {
			require.Equal(t, now, at)
			require.Equal(t, loadMargin, margin)
			if key != weekKey {
				return xredis.ZChangeSkipped, nil
			}

			incremented[key] += incr
			return xredis.ZChangeIncremented, nil
		},
	}

	err := New(repository.NewPointHistoryRepository(), redisClient).
		ChangePointLeaderboard(ctx, 5, now, testutil.User1.ID, testutil.KAIST.ID)
	require.NoError(t, err)
	require.Equal(t, map[string]int64{weekKey: 5}, incremented)
}

func TestLeaderboard_GetRank(t *testing.T) {
	ctx := testutil.MockContext()
	redisClient := &testutil.MockRedisClient{
		ExistFunc: func(context.Context, string) (bool, error) { return true, nil },
		ZRevRankFunc: func(_ context.Context, _, member string) (uint64, bool, error) {
			if member == testutil.User1.ID {
				return 0, true, nil
			}

			return 0, false, nil
		},
	}

	period := entity.LeaderboardPeriod{Kind: entity.LeaderboardMonth, At: time.Now()}
	l := New(repository.NewPointHistoryRepository(), redisClient)

	rank, err := l.GetRank(ctx, testutil.User1.ID, testutil.KAIST.ID, period)
	require.NoError(t, err)
	require.Equal(t, uint64(1), rank)

	rank, err = l.GetRank(ctx, testutil.User2.ID, testutil.KAIST.ID, period)
	require.NoError(t, err)
	require.Zero(t, rank)
}

// memoryRankings keeps sorted sets in memory and applies the same load and
// change rules as xredis.
type memoryRankings struct {
	sets       map[string]map[string]float64
	versions   map[string]int64
	loadedAt   map[string]time.Time
	beforeLoad func(key string)
}

func newMemoryRankings() *memoryRankings {
	return &memoryRankings{
		sets:     map[string]map[string]float64{},
		versions: map[string]int64{},
		loadedAt: map[string]time.Time{},
	}
}

func (r *memoryRankings) client() *testutil.MockRedisClient {
	return &testutil.MockRedisClient{
		ExistFunc: func(_ context.Context, key string) (bool, error) {
			_, ok := r.sets[key]
			return ok, nil
		},
		VersionFunc: func(_ context.Context, key string) (int64, error) {
			return r.versions[key], nil
		},
		ZLoadFunc: func(
			_ context.Context, key string, version int64, loadedAt time.Time, _ time.Duration, members ...redis.Z,
		) (bool, error) {
			if r.beforeLoad != nil {
				r.beforeLoad(key)
			}

			if r.versions[key] != version {
				return false, nil
			}

			delete(r.sets, key)
			if len(members) == 0 {
				return true, nil
			}

			r.sets[key] = map[string]float64{}
			for _, m := range members {
				r.sets[key][m.Member.(string)] = m.Score
			}
			r.loadedAt[key] = loadedAt
			return true, nil
		},
		ZChangeFunc: func(
			_ context.Context, key string, incr int64, member string, at time.Time, margin time.Duration,
		) (xredis.ZChangeResult, error) {
			r.versions[key]++
			set, ok := r.sets[key]
			if !ok {
				return xredis.ZChangeSkipped, nil
			}

			if !at.Before(r.loadedAt[key].Add(margin)) {
				set[member] += float64(incr)
				return xredis.ZChangeIncremented, nil
			}

			delete(r.sets, key)
			delete(r.loadedAt, key)
			return xredis.ZChangeDropped, nil
		},
		ZRevRangeWithScoresFunc: func(_ context.Context, key string, offset, limit int) ([]redis.Z, error) {
			ranking := r.ranking(key)
			if offset >= len(ranking) {
				return nil, nil
			}

			return ranking[offset:min(offset+limit, len(ranking))], nil
		},
		ZRevRankFunc: func(_ context.Context, key, member string) (uint64, bool, error) {
			for i, z := range r.ranking(key) {
				if z.Member == member {
					return uint64(i), true, nil
				}
			}

			return 0, false, nil
		},
	}
}

func (r *memoryRankings) ranking(key string) []redis.Z {
	ranking := []redis.Z{}
	for member, score := range r.sets[key] {
		ranking = append(ranking, redis.Z{Member: member, Score: score})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Score != ranking[j].Score {
			return ranking[i].Score > ranking[j].Score
		}
		return ranking[i].Member.(string) > ranking[j].Member.(string)
	})

	return ranking
}

func createPointHistory(
	ctx context.Context, t *testing.T, userID string, points int64, at time.Time,
) {
	h := &entity.PointHistory{
		Base:         entity.Base{ID: uuid.NewString(), CreatedAt: at},
		UserID:       userID,
		UniversityID: testutil.KAIST.ID,
		Action:       entity.PointActionThanksReceived,
		Points:       points,
	}
	require.NoError(t, repository.NewPointHistoryRepository().Create(ctx, h))
}

func TestLeaderboard_LateChangeIsNotCountedTwice(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	at := time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)
	period := entity.LeaderboardPeriod{Kind: entity.LeaderboardWeek, At: at}
	key := leaderboardKey(testutil.KAIST.ID, period)
	rankings := newMemoryRankings()
	l := New(repository.NewPointHistoryRepository(), rankings.client())
	l.now = func() time.Time { return at.Add(time.Minute) }

	// The row is committed before the load but its change arrives after it.
	createPointHistory(ctx, t, testutil.User1.ID, 10, at)
	board, err := l.GetLeaderBoard(ctx, testutil.KAIST.ID, period, 0, 10)
	require.NoError(t, err)
	require.Equal(t, []entity.UserPoints{{UserID: testutil.User1.ID, Points: 10}}, board)

	require.NoError(t, l.ChangePointLeaderboard(ctx, 10, at, testutil.User1.ID, testutil.KAIST.ID))
	require.NotContains(t, rankings.sets, key)

	board, err = l.GetLeaderBoard(ctx, testutil.KAIST.ID, period, 0, 10)
	require.NoError(t, err)
	require.Equal(t, []entity.UserPoints{{UserID: testutil.User1.ID, Points: 10}}, board)

	// A row earned well after the load is only in the increment.
	later := at.Add(time.Hour)
	createPointHistory(ctx, t, testutil.User2.ID, 15, later)
	require.NoError(t, l.ChangePointLeaderboard(ctx, 15, later, testutil.User2.ID, testutil.KAIST.ID))
	require.Equal(t, float64(15), rankings.sets[key][testutil.User2.ID])

	board, err = l.GetLeaderBoard(ctx, testutil.KAIST.ID, period, 0, 10)
	require.NoError(t, err)
	require.Equal(t, []entity.UserPoints{
		{UserID: testutil.User2.ID, Points: 15},
		{UserID: testutil.User1.ID, Points: 10},
	}, board)
}

func TestLeaderboard_ChangeDuringLoadIsNotCached(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	at := time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)
	period := entity.LeaderboardPeriod{Kind: entity.LeaderboardWeek, At: at}
	key := leaderboardKey(testutil.KAIST.ID, period)
	createPointHistory(ctx, t, testutil.User1.ID, 10, at)
	createPointHistory(ctx, t, testutil.User2.ID, 20, at)

	rankings := newMemoryRankings()
	rankings.beforeLoad = func(key string) { rankings.versions[key]++ }
	l := New(repository.NewPointHistoryRepository(), rankings.client())
	l.now = func() time.Time { return at.Add(time.Minute) }

	board, err := l.GetLeaderBoard(ctx, testutil.KAIST.ID, period, 1, 10)
	require.NoError(t, err)
	require.Equal(t, []entity.UserPoints{{UserID: testutil.User1.ID, Points: 10}}, board)
	require.NotContains(t, rankings.sets, key)

	rank, err := l.GetRank(ctx, testutil.User1.ID, testutil.KAIST.ID, period)
	require.NoError(t, err)
	require.Equal(t, uint64(2), rank)

	rank, err = l.GetRank(ctx, testutil.User3.ID, testutil.KAIST.ID, period)
	require.NoError(t, err)
	require.Zero(t, rank)

	board, err = l.GetLeaderBoard(ctx, testutil.KAIST.ID, period, 5, 10)
	require.NoError(t, err)
	require.Empty(t, board)
}

func TestParsePeriod(t *testing.T) {
	_, err := ParsePeriod("year", time.Now())
	require.Error(t, err)

	p, err := ParsePeriod("month", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, entity.LeaderboardMonth, p.Kind)
	require.Equal(t, "2024-03", p.Key())
	require.Equal(t, "leaderboard:kaist:month:2024-03", leaderboardKey("kaist", p))
}
