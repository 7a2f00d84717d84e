// Package cache provides a small cache-aside wrapper around Redis for
// read-heavy payloads. A nil *Cache is valid and disables caching, so the
// server runs fine without a Redis instance.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a Redis client.
type Cache struct {
	client *redis.Client
}

// New connects to Redis at the given address. An empty address returns a nil
// cache, which disables caching.
func New(addr string) (*Cache, error) {
	if addr == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(fmt.Sprintf("redis://%s", addr))
	if err != nil {
		// Fallback to simple connection
		opt = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// GetJSON loads and unmarshals the cached value into v, reporting whether a
// usable entry was found. Cache errors are treated as misses.
func (c *Cache) GetJSON(ctx context.Context, key string, v interface{}) bool {
	if c == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// SetJSON stores v under key with the given TTL. Errors are ignored; the
// cache is best effort.
func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if c == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		c.client.SetEx(ctx, key, data, ttl)
	}
}

// Invalidate removes the given keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	c.client.Del(ctx, keys...)
}

// BudgetKey is the cache key for one trip's combined budget payload.
func BudgetKey(tripID string) string {
	return "budget:" + tripID
}
