package cache

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Config struct {
	Host string
	Port int
}

// NewClient builds the redis client without a startup ping: the cache is
// best-effort, so an unreachable backend must not prevent the service from
// starting. Health probes ping it explicitly.
func NewClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		DialTimeout: 5 * time.Second,
	})
}
