package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Rate-limit buckets. Each write path has its own window counter.
const (
	BucketPost   = "post"
	BucketReport = "report"
)

// slidingWindowScript atomically prunes the window, counts it, and records
// the request only when it is admitted. A denial adds nothing, so being
// over quota never extends the window.
//
// The member is generated by the caller and passed in, not derived in Lua:
// Redis reseeds the script RNG identically on every invocation, so an
// in-script math.random member would collide for two requests in the same
// millisecond and the second ZADD would silently overwrite the first.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local member = ARGV[4]
local window_start = now - window

redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)
local count = redis.call('ZCARD', key)

if count < limit then
    redis.call('ZADD', key, now, member)
    redis.call('EXPIRE', key, math.ceil(window / 1000) + 1)
    return {1, limit - count - 1, 0}
else
    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    local reset_at = 0
    if #oldest >= 2 then
        reset_at = tonumber(oldest[2]) + window
    end
    return {0, 0, reset_at}
end
`)

type bucketConfig struct {
	window time.Duration
	max    int
}

// RateLimiter gates write operations per identity token and bucket. The
// check-and-increment is a single Redis script, so two simultaneous requests
// from one identity cannot both take the last slot. When Redis is
// unreachable the limiter fails open rather than blocking posts.
type RateLimiter struct {
	rdb     *redis.Client
	buckets map[string]bucketConfig
}

func NewRateLimiter(rdb *redis.Client, window time.Duration, maxPosts, maxReports int) *RateLimiter {
	return &RateLimiter{
		rdb: rdb,
		buckets: map[string]bucketConfig{
			BucketPost:   {window: window, max: maxPosts},
			BucketReport: {window: window, max: maxReports},
		},
	}
}

// Allow admits or denies one write. On denial retryAfter holds the time
// until the oldest window entry falls out.
func (rl *RateLimiter) Allow(ctx context.Context, identity, bucket string) (allowed bool, retryAfter time.Duration) {
	cfg, ok := rl.buckets[bucket]
	if !ok || rl.rdb == nil {
		return true, 0
	}

	key := "ratelimit:" + bucket + ":" + identity
	now := time.Now().UnixMilli()

	result, err := slidingWindowScript.Run(ctx, rl.rdb, []string{key},
		cfg.max, cfg.window.Milliseconds(), now, uuid.NewString(),
	).Int64Slice()
	if err != nil {
		// Fail open: a Redis outage must not take the board down.
		slog.Error("rate limiter unavailable", "error", err, "bucket", bucket)
		return true, 0
	}

	if result[0] == 1 {
		return true, 0
	}

	resetAt := result[2]
	retryAfter = time.Duration(resetAt-now) * time.Millisecond
	if retryAfter < time.Second {
		retryAfter = time.Second
	}
	return false, retryAfter
}
