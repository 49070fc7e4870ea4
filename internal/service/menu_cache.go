package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	cacheKeyCategories = "menu:categories"
	cacheKeyProducts   = "menu:products"

	menuCacheTTL = 5 * time.Minute
)

// MenuCache is a best-effort read-through cache for menu listings. Any Redis
// fault degrades to a direct repository read.
type MenuCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewMenuCache builds the cache. A nil client disables caching entirely.
func NewMenuCache(client *redis.Client, logger *zap.Logger) *MenuCache {
	return &MenuCache{client: client, logger: logger}
}

// Get unmarshals the cached value under key into dest, reporting a hit.
func (c *MenuCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("corrupt cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set stores value under key with the cache TTL.
func (c *MenuCache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, menuCacheTTL).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops the given keys.
func (c *MenuCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
