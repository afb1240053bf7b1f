package cache

import (
	"context"
	"time"
)

// Cache defines the interface for caching services. A nil Cache disables
// caching at call sites.
type Cache interface {
	// Get returns the cached value, or the empty string when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
