package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisFixedWindow counts requests per key with INCR and expires the counter
// after the window, so limits hold across service instances.
type RedisFixedWindow struct {
	rdb    *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRedisFixedWindow(rdb *redis.Client, prefix string, limit int, window time.Duration) *RedisFixedWindow {
	return &RedisFixedWindow{
		rdb:    rdb,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

func (l *RedisFixedWindow) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	rkey := fmt.Sprintf("rl:%s:%s", l.prefix, key)

	count, err := l.rdb.Incr(ctx, rkey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	// first hit in the window owns setting the expiry
	if count == 1 {
		if err := l.rdb.Expire(ctx, rkey, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to expire rate limit counter: %w", err)
		}
	}

	if count > int64(l.limit) {
		ttl, err := l.rdb.TTL(ctx, rkey).Result()
		if err != nil || ttl < 0 {
			ttl = l.window
		}
		return false, ttl, nil
	}

	return true, 0, nil
}
