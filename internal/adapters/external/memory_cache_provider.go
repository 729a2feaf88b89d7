package external

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"weatherhome.app/pkg/errors"
)

// MemoryCacheProvider keeps weather payloads in process with go-cache. Entries carry
// their own TTL; the janitor purges expired ones every cleanupInterval.
type MemoryCacheProvider struct {
	store *gocache.Cache
	hitCounter
}

func NewMemoryCacheProvider(cleanupInterval time.Duration) *MemoryCacheProvider {
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	return &MemoryCacheProvider{
		store: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

func (c *MemoryCacheProvider) Get(_ context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	value, found := c.store.Get(key)
	payload, ok := value.([]byte)
	if !found || !ok {
		c.RecordMiss()
		return nil, errors.NewNotFoundError("cache miss")
	}

	c.RecordHit()
	return payload, nil
}

func (c *MemoryCacheProvider) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if err := validateEntry(key, value, ttl); err != nil {
		return err
	}

	// copy so later writes to the caller's buffer do not leak into the cache
	c.store.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

func (c *MemoryCacheProvider) Delete(_ context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	c.store.Delete(key)
	return nil
}

func (c *MemoryCacheProvider) Exists(_ context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	_, found := c.store.Get(key)
	return found, nil
}

func (c *MemoryCacheProvider) Clear(context.Context) error {
	c.store.Flush()
	return nil
}

// ItemCount returns the number of cached entries, expired ones included until cleanup
func (c *MemoryCacheProvider) ItemCount() int {
	return c.store.ItemCount()
}
