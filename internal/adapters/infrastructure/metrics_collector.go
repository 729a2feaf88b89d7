package infrastructure

import (
	"context"
	"time"

	"weatherhome.app/internal/ports"
)

// MetricsCollectorAdapter builds the JSON snapshot served at /api/metrics.
// Counters live in the Prometheus registry; this view covers what an operator
// checks by hand: the provider, the cache and the notification queue.
type MetricsCollectorAdapter struct {
	weatherMetrics ports.WeatherMetrics
	notifier       ports.LocalNotifier
}

type MetricsCollectorConfig struct {
	WeatherMetrics ports.WeatherMetrics
	Notifier       ports.LocalNotifier
}

func NewMetricsCollectorAdapter(config MetricsCollectorConfig) *MetricsCollectorAdapter {
	return &MetricsCollectorAdapter{
		weatherMetrics: config.WeatherMetrics,
		notifier:       config.Notifier,
	}
}

func (m *MetricsCollectorAdapter) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	snapshot := map[string]interface{}{
		"weather": m.weatherMetrics.GetProviderInfo(),
	}

	if stats, err := m.weatherMetrics.GetCacheMetrics(); err == nil {
		snapshot["cache"] = cacheSnapshot(stats)
	}

	if m.notifier == nil {
		return snapshot, nil
	}

	pending, err := m.notifier.PendingNotifications(ctx)
	if err != nil {
		return nil, err
	}
	snapshot["notifications"] = queueSnapshot(pending)

	return snapshot, nil
}

func cacheSnapshot(stats ports.CacheStats) map[string]interface{} {
	return map[string]interface{}{
		"hits":      stats.Hits,
		"misses":    stats.Misses,
		"total_ops": stats.TotalOps,
		"hit_ratio": stats.HitRatio,
		"updated":   stats.LastUpdated,
	}
}

func queueSnapshot(pending []ports.LocalNotification) map[string]interface{} {
	byChannel := make(map[string]int)
	var next time.Time
	for _, n := range pending {
		byChannel[n.ChannelID]++
		if next.IsZero() || n.FireAt.Before(next) {
			next = n.FireAt
		}
	}

	queue := map[string]interface{}{
		"pending":    len(pending),
		"by_channel": byChannel,
	}
	if !next.IsZero() {
		queue["next_fire_at"] = next.UTC().Format(time.RFC3339)
	}
	return queue
}
