package ports

import (
	"context"
	"time"
)

// CacheProvider stores opaque values under string keys. A miss or an expired
// entry is reported as a NotFound error. Clear only drops entries this
// provider owns.
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context) error
}

// CacheMetrics counts lookups against a cache
type CacheMetrics interface {
	GetStats() CacheStats
	RecordHit()
	RecordMiss()
}
