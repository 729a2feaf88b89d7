package external

import (
	"time"

	"weatherhome.app/internal/ports"
)

// CircuitReporter exposes a circuit breaker state
type CircuitReporter interface {
	CircuitState() string
}

// WeatherMetricsAdapter implements WeatherMetrics port
type WeatherMetricsAdapter struct {
	provider ports.WeatherProvider
	cache    ports.CacheMetrics
	config   ports.ConfigProvider
	circuit  CircuitReporter
}

// NewWeatherMetricsAdapter creates a weather metrics adapter; circuit may be nil
func NewWeatherMetricsAdapter(provider ports.WeatherProvider, cache ports.CacheMetrics, config ports.ConfigProvider, circuit CircuitReporter) *WeatherMetricsAdapter {
	return &WeatherMetricsAdapter{
		provider: provider,
		cache:    cache,
		config:   config,
		circuit:  circuit,
	}
}

func (m *WeatherMetricsAdapter) GetProviderInfo() map[string]interface{} {
	cfg := m.config.GetWeatherConfig()
	info := map[string]interface{}{
		"provider":      m.provider.GetProviderName(),
		"cache_enabled": cfg.EnableCache,
		"cache_ttl":     cfg.CacheTTL.String(),
		"cities":        len(cfg.CityIDs),
	}
	if m.circuit != nil {
		info["circuit_state"] = m.circuit.CircuitState()
	}
	return info
}

func (m *WeatherMetricsAdapter) GetCacheMetrics() (ports.CacheStats, error) {
	if m.cache == nil {
		return ports.CacheStats{LastUpdated: time.Now()}, nil
	}
	return m.cache.GetStats(), nil
}
