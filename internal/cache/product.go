package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	listKey    = "products:all"
	productKey = "product:%d"

	ListTTL    = 60 * time.Second
	ProductTTL = 300 * time.Second
)

// ProductCache is the cache-aside layer in front of the product repository.
// Implementations are best-effort: a backend failure reads as a miss and
// writes are dropped silently, so callers never surface cache errors.
type ProductCache interface {
	GetList(ctx context.Context) ([]byte, bool)
	SetList(ctx context.Context, payload []byte)
	GetProduct(ctx context.Context, id int64) ([]byte, bool)
	SetProduct(ctx context.Context, id int64, payload []byte)
	InvalidateProduct(ctx context.Context, id int64)
	InvalidateList(ctx context.Context)
}

type RedisProductCache struct {
	rdb    *redis.Client
	logger *zap.SugaredLogger
}

func NewRedisProductCache(rdb *redis.Client, logger *zap.SugaredLogger) *RedisProductCache {
	return &RedisProductCache{
		rdb:    rdb,
		logger: logger,
	}
}

func (c *RedisProductCache) GetList(ctx context.Context) ([]byte, bool) {
	return c.get(ctx, listKey)
}

func (c *RedisProductCache) SetList(ctx context.Context, payload []byte) {
	c.set(ctx, listKey, payload, ListTTL)
}

func (c *RedisProductCache) GetProduct(ctx context.Context, id int64) ([]byte, bool) {
	return c.get(ctx, fmt.Sprintf(productKey, id))
}

func (c *RedisProductCache) SetProduct(ctx context.Context, id int64, payload []byte) {
	c.set(ctx, fmt.Sprintf(productKey, id), payload, ProductTTL)
}

func (c *RedisProductCache) InvalidateProduct(ctx context.Context, id int64) {
	c.del(ctx, fmt.Sprintf(productKey, id))
}

func (c *RedisProductCache) InvalidateList(ctx context.Context) {
	c.del(ctx, listKey)
}

func (c *RedisProductCache) get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnw("cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	return payload, true
}

func (c *RedisProductCache) set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if err := c.rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
		c.logger.Warnw("cache write failed", "key", key, "error", err)
	}
}

func (c *RedisProductCache) del(ctx context.Context, key string) {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.logger.Warnw("cache invalidation failed", "key", key, "error", err)
	}
}
