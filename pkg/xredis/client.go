package xredis

import (
	"context"
	"errors"
	"time"

	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/redis/go-redis/v9"
)

// A sorted set loaded by zload carries two companion keys: KEYS[2] counts the
// changes ever applied to it and KEYS[3] holds the unix milliseconds of the
// load. zload writes only if no change happened since ARGV[1] was read.
var zload = redis.NewScript(`
local version = tonumber(redis.call("GET", KEYS[2]) or "0")
if version ~= tonumber(ARGV[1]) then
	return 0
end
redis.call("DEL", KEYS[1])
for i = 4, #ARGV, 2 do
	redis.call("ZADD", KEYS[1], ARGV[i], ARGV[i+1])
end
if redis.call("EXISTS", KEYS[1]) == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[3])
	redis.call("SET", KEYS[3], ARGV[2], "EX", ARGV[3])
end
return 1
`)

// zchange never resurrects an expired set with a single member. A change
// which may already be counted by the load drops the set instead.
var zchange = redis.NewScript(`
redis.call("INCR", KEYS[2])
redis.call("EXPIRE", KEYS[2], ARGV[5])
if redis.call("EXISTS", KEYS[1]) == 0 then
	return 0
end
local loadedAt = tonumber(redis.call("GET", KEYS[3]) or "0")
if tonumber(ARGV[3]) >= loadedAt + tonumber(ARGV[4]) then
	redis.call("ZINCRBY", KEYS[1], ARGV[1], ARGV[2])
	return 1
end
redis.call("DEL", KEYS[1], KEYS[3])
return 2
`)

// versionTTL outlives any sorted set loaded with ZLoad.
const versionTTL = 60 * 24 * time.Hour

type ZChangeResult int

const (
	// ZChangeSkipped means the set was not loaded.
	ZChangeSkipped ZChangeResult = iota
	ZChangeIncremented
	ZChangeDropped
)

type Client interface {
	Exist(ctx context.Context, key string) (bool, error)

	// Version returns how many changes were applied to the sorted set key.
	Version(ctx context.Context, key string) (int64, error)

	// ZLoad replaces the sorted set key with members unless its version
	// moved away from version. It reports whether the version still matched.
	ZLoad(
		ctx context.Context,
		key string,
		version int64,
		loadedAt time.Time,
		ttl time.Duration,
		members ...redis.Z,
	) (bool, error)

	// ZChange bumps the version of key and increments member by incr when
	// the set exists and at is not earlier than its load time plus margin.
	// An earlier change drops the set.
	ZChange(
		ctx context.Context,
		key string,
		incr int64,
		member string,
		at time.Time,
		margin time.Duration,
	) (ZChangeResult, error)

	// ZRevRangeWithScores returns members by descending score, limit items
	// starting at offset.
	ZRevRangeWithScores(ctx context.Context, key string, offset, limit int) ([]redis.Z, error)

	// ZRevRank returns the 0-based descending rank of member. The boolean is
	// false when member is not in the set.
	ZRevRank(ctx context.Context, key string, member string) (uint64, bool, error)
}

type client struct {
	redisClient *redis.Client
}

func NewClient(ctx context.Context) (*client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:            xcontext.Configs(ctx).Redis.Addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
		PoolSize:        10,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{redisClient: redisClient}, nil
}

func (c *client) Exist(ctx context.Context, key string) (bool, error) {
	n, err := c.redisClient.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}

	return n == 1, nil
}

func companionKeys(key string) []string {
	return []string{key, key + ":version", key + ":loaded_at"}
}

func (c *client) Version(ctx context.Context, key string) (int64, error) {
	version, err := c.redisClient.Get(ctx, key+":version").Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	return version, err
}

func (c *client) ZLoad(
	ctx context.Context,
	key string,
	version int64,
	loadedAt time.Time,
	ttl time.Duration,
	members ...redis.Z,
) (bool, error) {
	args := make([]any, 0, 3+2*len(members))
	args = append(args, version, loadedAt.UnixMilli(), int64(ttl.Seconds()))
	for _, m := range members {
		args = append(args, m.Score, m.Member)
	}

	n, err := zload.Run(ctx, c.redisClient, companionKeys(key), args...).Int()
	if err != nil {
		return false, err
	}

	return n == 1, nil
}

func (c *client) ZChange(
	ctx context.Context,
	key string,
	incr int64,
	member string,
	at time.Time,
	margin time.Duration,
) (ZChangeResult, error) {
	n, err := zchange.Run(ctx, c.redisClient, companionKeys(key),
		incr, member, at.UnixMilli(), margin.Milliseconds(), int64(versionTTL.Seconds())).Int()
	if err != nil {
		return ZChangeSkipped, err
	}

	return ZChangeResult(n), nil
}

func (c *client) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	if limit <= 0 {
		return nil, nil
	}

	return c.redisClient.ZRevRangeWithScores(ctx, key, int64(offset), int64(offset+limit-1)).Result()
}

func (c *client) ZRevRank(ctx context.Context, key string, member string) (uint64, bool, error) {
	rank, err := c.redisClient.ZRevRank(ctx, key, member).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}

	if err != nil {
		return 0, false, err
	}

	return rank, true, nil
}
