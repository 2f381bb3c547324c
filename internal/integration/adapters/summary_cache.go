// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/field-console/backend/internal/application/adapter"
)

// summaryCache implements the adapter.SummaryCache interface on Redis.
type summaryCache struct {
	client *redis.Client
}

// NewSummaryCache creates a new Redis-backed summary cache instance.
func NewSummaryCache(client *redis.Client) adapter.SummaryCache {
	return &summaryCache{
		client: client,
	}
}

// Get retrieves the cached payload for a key. A miss returns (nil, nil).
func (c *summaryCache) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return payload, nil
}

// Set stores a payload under a key with the given TTL.
func (c *summaryCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, payload, ttl).Err()
}

// Invalidate removes the given keys from the cache.
func (c *summaryCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
