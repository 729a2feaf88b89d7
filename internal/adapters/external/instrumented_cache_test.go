package external

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherhome.app/internal/mocks"
)

type recordedCache struct {
	mu         sync.Mutex
	hits       int
	misses     int
	operations []string
}

func (r *recordedCache) RecordHit()  { r.mu.Lock(); r.hits++; r.mu.Unlock() }
func (r *recordedCache) RecordMiss() { r.mu.Lock(); r.misses++; r.mu.Unlock() }
func (r *recordedCache) RecordLatency(operation string, _ float64) {
	r.mu.Lock()
	r.operations = append(r.operations, operation)
	r.mu.Unlock()
}

func TestInstrumentedCache(t *testing.T) {
	ctx := context.Background()
	recorder := &recordedCache{}
	cache := NewInstrumentedCache(NewMemoryCacheProvider(time.Minute), recorder, mocks.NewLogger())

	_, err := cache.Get(ctx, "citylist")
	require.Error(t, err)

	require.NoError(t, cache.Set(ctx, "citylist", []byte("[]"), time.Minute))
	got, err := cache.Get(ctx, "citylist")
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), got)

	_, err = cache.Get(ctx, "")
	require.Error(t, err)

	assert.Equal(t, 1, recorder.hits)
	assert.Equal(t, 1, recorder.misses)
	assert.Equal(t, []string{"get", "set", "get", "get"}, recorder.operations)

	stats := cache.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
}
