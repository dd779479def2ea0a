package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jconover/k8s-microservices-platform/internal/cache"
)

type cacheEntry struct {
	payload   []byte
	expiresAt time.Time
}

// ProductCache is an in-memory cache.ProductCache used by tests. Setting
// Unavailable simulates an unreachable backend: reads miss and writes drop,
// matching the best-effort contract.
type ProductCache struct {
	mu          sync.RWMutex
	entries     map[string]cacheEntry
	Unavailable bool
}

func NewProductCache() *ProductCache {
	return &ProductCache{
		entries: make(map[string]cacheEntry),
	}
}

func (c *ProductCache) GetList(ctx context.Context) ([]byte, bool) {
	return c.get("products:all")
}

func (c *ProductCache) SetList(ctx context.Context, payload []byte) {
	c.set("products:all", payload, cache.ListTTL)
}

func (c *ProductCache) GetProduct(ctx context.Context, id int64) ([]byte, bool) {
	return c.get(fmt.Sprintf("product:%d", id))
}

func (c *ProductCache) SetProduct(ctx context.Context, id int64, payload []byte) {
	c.set(fmt.Sprintf("product:%d", id), payload, cache.ProductTTL)
}

func (c *ProductCache) InvalidateProduct(ctx context.Context, id int64) {
	c.del(fmt.Sprintf("product:%d", id))
}

func (c *ProductCache) InvalidateList(ctx context.Context) {
	c.del("products:all")
}

func (c *ProductCache) get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Unavailable {
		return nil, false
	}

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}

	return entry.payload, true
}

func (c *ProductCache) set(key string, payload []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Unavailable {
		return
	}

	c.entries[key] = cacheEntry{
		payload:   payload,
		expiresAt: time.Now().Add(ttl),
	}
}

func (c *ProductCache) del(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}
