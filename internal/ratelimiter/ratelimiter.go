package ratelimiter

import (
	"context"
	"time"
)

// Limiter decides whether a client key may proceed. When denied, the returned
// duration is the time until the current window resets.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

type Config struct {
	Enabled bool
}
