package ports

import (
	"context"
	"time"
)

// RouteCache stores opaque routing payloads by key. Implementations must
// treat expired entries as misses.
type RouteCache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
