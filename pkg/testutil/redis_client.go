package testutil

import (
	"context"
	"time"

	"github.com/campusboard/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

// MockRedisClient behaves like an empty redis unless the matching Func is
// set.
type MockRedisClient struct {
	ExistFunc               func(ctx context.Context, key string) (bool, error)
	VersionFunc             func(ctx context.Context, key string) (int64, error)
	ZLoadFunc               func(ctx context.Context, key string, version int64, loadedAt time.Time, ttl time.Duration, members ...redis.Z) (bool, error)
	ZChangeFunc             func(ctx context.Context, key string, incr int64, member string, at time.Time, margin time.Duration) (xredis.ZChangeResult, error)
	ZRevRangeWithScoresFunc func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error)
	ZRevRankFunc            func(ctx context.Context, key string, member string) (uint64, bool, error)
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if m.ExistFunc != nil {
		return m.ExistFunc(ctx, key)
	}

	return false, nil
}

func (m *MockRedisClient) Version(ctx context.Context, key string) (int64, error) {
	if m.VersionFunc != nil {
		return m.VersionFunc(ctx, key)
	}

	return 0, nil
}

func (m *MockRedisClient) ZLoad(
	ctx context.Context,
	key string,
	version int64,
	loadedAt time.Time,
	ttl time.Duration,
	members ...redis.Z,
) (bool, error) {
	if m.ZLoadFunc != nil {
		return m.ZLoadFunc(ctx, key, version, loadedAt, ttl, members...)
	}

	return true, nil
}

func (m *MockRedisClient) ZChange(
	ctx context.Context,
	key string,
	incr int64,
	member string,
	at time.Time,
	margin time.Duration,
) (xredis.ZChangeResult, error) {
	if m.ZChangeFunc != nil {
		return m.ZChangeFunc(ctx, key, incr, member, at, margin)
	}

	return xredis.ZChangeSkipped, nil
}

func (m *MockRedisClient) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	if m.ZRevRangeWithScoresFunc != nil {
		return m.ZRevRangeWithScoresFunc(ctx, key, offset, limit)
	}

	return nil, nil
}

func (m *MockRedisClient) ZRevRank(ctx context.Context, key string, member string) (uint64, bool, error) {
	if m.ZRevRankFunc != nil {
		return m.ZRevRankFunc(ctx, key, member)
	}

	return 0, false, nil
}
