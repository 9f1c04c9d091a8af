package cache

import (
	"context"
	"time"
)

// Store is the key/value-with-TTL boundary under the coordinator.
// Implementations return sentinel.ErrNotFound for missing or expired keys.
//
// DeleteByPrefix is best-effort: stores that cannot enumerate keys
// implement it as a no-op, and the pipeline tolerates serving a stale
// paginated list until its TTL lapses.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}
