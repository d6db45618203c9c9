package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/commerce-service/internal/domain"
)

const productKeyPrefix = "product:"

// ProductCache caches product-by-id reads in Redis. Misses and Redis
// failures degrade to the repository; the cache is never authoritative.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewProductCache builds a cache on top of the shared Redis client.
func NewProductCache(r *Redis, ttl time.Duration, logger *zap.Logger) *ProductCache {
	var client *redis.Client
	if r != nil {
		client = r.Client
	}
	return &ProductCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached product, or false on miss or cache error.
func (c *ProductCache) Get(ctx context.Context, id string) (*domain.Product, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, productKeyPrefix+id).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("product cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var product domain.Product
	if err := json.Unmarshal(payload, &product); err != nil {
		return nil, false
	}
	return &product, true
}

// Set stores the product under its id with the configured TTL.
func (c *ProductCache) Set(ctx context.Context, product *domain.Product) {
	if c == nil || c.client == nil || product == nil {
		return
	}
	payload, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productKeyPrefix+product.ID, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("product cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached entry for the product id.
func (c *ProductCache) Invalidate(ctx context.Context, id string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, productKeyPrefix+id).Err(); err != nil {
		c.logger.Warn("product cache invalidate failed", zap.Error(err))
	}
}
