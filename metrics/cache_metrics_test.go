package metrics

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCacheMetrics_HitRatio(t *testing.T) {
	tests := []struct {
		name   string
		hits   int
		misses int
		ratio  float64
	}{
		{name: "no traffic", ratio: 0},
		{name: "all misses", misses: 4, ratio: 0},
		{name: "mixed", hits: 7, misses: 3, ratio: 0.7},
		{name: "all hits", hits: 2, ratio: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector := NewCollector()
			m := collector.CacheMetrics("citylist")

			for i := 0; i < tt.hits; i++ {
				m.RecordHit()
			}
			for i := 0; i < tt.misses; i++ {
				m.RecordMiss()
			}

			stats := m.GetStats()
			assert.Equal(t, "citylist", stats["cache_type"])
			assert.Equal(t, int64(tt.hits), stats["hits"])
			assert.Equal(t, int64(tt.misses), stats["misses"])
			assert.Equal(t, int64(tt.hits+tt.misses), stats["total"])
			assert.InDelta(t, tt.ratio, stats["hit_ratio"], 1e-9)

			assert.Equal(t, float64(tt.hits), testutil.ToFloat64(collector.cache.hits.WithLabelValues("citylist")))
			assert.Equal(t, float64(tt.hits+tt.misses), testutil.ToFloat64(collector.cache.requests.WithLabelValues("citylist")))
			assert.InDelta(t, tt.ratio, testutil.ToFloat64(collector.cache.hitRatio.WithLabelValues("citylist")), 1e-9)
		})
	}
}

func TestCacheMetrics_ConcurrentRecording(t *testing.T) {
	collector := NewCollector()
	m := collector.CacheMetrics("redis")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); m.RecordHit() }()
		go func() { defer wg.Done(); m.RecordMiss() }()
	}
	wg.Wait()

	stats := m.GetStats()
	assert.Equal(t, int64(100), stats["total"])
	assert.InDelta(t, 0.5, stats["hit_ratio"], 1e-9)
	assert.Equal(t, float64(50), testutil.ToFloat64(collector.cache.misses.WithLabelValues("redis")))
}

func TestCacheMetrics_LatencyPerOperation(t *testing.T) {
	collector := NewCollector()
	m := collector.CacheMetrics("memory")

	m.RecordLatency("get", 0.001)
	m.RecordLatency("get", 0.003)
	m.RecordLatency("set", 0.002)

	assert.Equal(t, 2, testutil.CollectAndCount(collector.cache.latency))
}
