package external

import (
	"context"
	"time"

	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

// CacheRecorder receives cache outcomes for exposition
type CacheRecorder interface {
	RecordHit()
	RecordMiss()
	RecordLatency(operation string, seconds float64)
}

// InstrumentedCache reports hits, misses and latency of a wrapped cache
type InstrumentedCache struct {
	CacheProvider
	recorder CacheRecorder
	logger   ports.Logger
}

func NewInstrumentedCache(cache CacheProvider, recorder CacheRecorder, logger ports.Logger) *InstrumentedCache {
	return &InstrumentedCache{CacheProvider: cache, recorder: recorder, logger: logger}
}

func (c *InstrumentedCache) measureLatency(operation string, fn func()) {
	start := time.Now()
	fn()
	c.recorder.RecordLatency(operation, time.Since(start).Seconds())
}

func (c *InstrumentedCache) Get(ctx context.Context, key string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	c.measureLatency("get", func() {
		data, err = c.CacheProvider.Get(ctx, key)
	})

	switch {
	case err == nil:
		c.recorder.RecordHit()
		c.logger.Debug("Cache hit", ports.F("key", key))
	case errors.IsNotFoundError(err):
		c.recorder.RecordMiss()
		c.logger.Debug("Cache miss", ports.F("key", key))
	}
	return data, err
}

func (c *InstrumentedCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var err error
	c.measureLatency("set", func() {
		err = c.CacheProvider.Set(ctx, key, value, ttl)
	})
	return err
}
