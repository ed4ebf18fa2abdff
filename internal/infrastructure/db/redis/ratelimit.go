package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter implements fixed-window request counting backed by Redis.
// Key format: rl:<scope>:<caller>, expiring at the end of the window.
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter creates a RateLimiter wrapping the given Redis client.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow counts one request for the caller within the scope's current window
// and reports whether the caller is still under the limit. The first hit in
// a window sets the key's TTL; subsequent hits only increment.
func (l *RateLimiter) Allow(ctx context.Context, scope, caller string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf("rl:%s:%s", scope, caller)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= int64(limit), nil
}
