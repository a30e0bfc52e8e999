package cache

import (
	"context"
	"time"
)

// StatusStore caches job status snapshots so status polling does not hit
// Postgres on every request.
type StatusStore interface {
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}
