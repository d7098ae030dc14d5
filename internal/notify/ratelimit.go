package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter caps how often a sender identity may fire within a rolling
// window. It is constructed once and injected; state lives in Redis, keyed by
// sender identity, so multiple service instances share the same budget.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewRateLimiter creates a limiter allowing limit sends per window.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "notify:ratelimit",
	}
}

// Allow reports whether the identity may send now. Without a configured
// client, or on Redis errors, it fails open: dropping alerts is worse than
// sending a few extra.
func (l *RateLimiter) Allow(ctx context.Context, identity string) bool {
	if l == nil || l.client == nil || l.limit <= 0 {
		return true
	}
	key := fmt.Sprintf("%s:%s", l.prefix, identity)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		l.client.Expire(ctx, key, l.window)
	}
	return count <= int64(l.limit)
}
