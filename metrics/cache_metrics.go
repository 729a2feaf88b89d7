package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type cacheVectors struct {
	hits     *prometheus.CounterVec
	misses   *prometheus.CounterVec
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	hitRatio *prometheus.GaugeVec
}

func newCacheVectors(factory promauto.Factory) *cacheVectors {
	return &cacheVectors{
		hits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "The total number of cache hits",
		}, []string{"cache_type"}),
		misses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "The total number of cache misses",
		}, []string{"cache_type"}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "The total number of cache requests",
		}, []string{"cache_type"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cache_duration_seconds",
			Help:      "Cache operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"cache_type", "operation"}),
		hitRatio: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_hit_ratio",
			Help:      "Cache hit ratio (hits/total requests)",
		}, []string{"cache_type"}),
	}
}

// CacheMetrics tracks hits and misses of one cache
type CacheMetrics struct {
	cacheType string
	vectors   *cacheVectors

	mu     sync.RWMutex
	hits   int64
	misses int64
	total  int64
}

func newCacheMetrics(cacheType string, vectors *cacheVectors) *CacheMetrics {
	return &CacheMetrics{cacheType: cacheType, vectors: vectors}
}

func (m *CacheMetrics) RecordHit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hits++
	m.total++
	m.vectors.hits.WithLabelValues(m.cacheType).Inc()
	m.vectors.requests.WithLabelValues(m.cacheType).Inc()
	m.updateHitRatio()
}

func (m *CacheMetrics) RecordMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.misses++
	m.total++
	m.vectors.misses.WithLabelValues(m.cacheType).Inc()
	m.vectors.requests.WithLabelValues(m.cacheType).Inc()
	m.updateHitRatio()
}

func (m *CacheMetrics) RecordLatency(operation string, seconds float64) {
	m.vectors.latency.WithLabelValues(m.cacheType, operation).Observe(seconds)
}

// must hold m.mu
func (m *CacheMetrics) updateHitRatio() {
	if m.total > 0 {
		m.vectors.hitRatio.WithLabelValues(m.cacheType).Set(float64(m.hits) / float64(m.total))
	}
}

func (m *CacheMetrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var hitRatio float64
	if m.total > 0 {
		hitRatio = float64(m.hits) / float64(m.total)
	}

	return map[string]interface{}{
		"cache_type": m.cacheType,
		"hits":       m.hits,
		"misses":     m.misses,
		"total":      m.total,
		"hit_ratio":  hitRatio,
	}
}
