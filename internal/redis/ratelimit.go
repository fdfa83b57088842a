package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is used by the API middleware to throttle clients.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type redisFixedWindowLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRedisFixedWindowLimiter allows up to limit requests per key per
// window, counted in a Redis key that expires with the window.
func NewRedisFixedWindowLimiter(client *redis.Client, limit int, window time.Duration) Limiter {
	return &redisFixedWindowLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

var countScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

func (l *redisFixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	rkey := fmt.Sprintf("ratelimit:%s", key)

	n, err := countScript.Run(ctx, l.client, []string{rkey}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("count request: %w", err)
	}

	return n <= int64(l.limit), nil
}
