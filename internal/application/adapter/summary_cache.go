// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// SummaryCache defines the interface for short-lived dashboard summary
// caching. Implementations must treat a miss as a non-error so callers can
// fall through to the repositories.
type SummaryCache interface {
	// Get retrieves the cached payload for a key. Returns (nil, nil) on a
	// cache miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a payload under a key with the given TTL.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Invalidate removes the given keys from the cache.
	Invalidate(ctx context.Context, keys ...string) error
}
