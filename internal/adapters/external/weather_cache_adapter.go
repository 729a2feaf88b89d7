package external

import (
	"context"
	"encoding/json"
	"time"

	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

// weatherCacheVersion is bumped whenever ports.CityWeather changes shape
const weatherCacheVersion = 1

type weatherCacheEntry struct {
	Version  int                 `json:"v"`
	CachedAt time.Time           `json:"cached_at"`
	Items    []ports.CityWeather `json:"items"`
}

// WeatherCacheAdapter stores weather sequences as versioned JSON in a byte cache
type WeatherCacheAdapter struct {
	cacheProvider ports.CacheProvider
}

func NewWeatherCacheAdapter(cacheProvider ports.CacheProvider) *WeatherCacheAdapter {
	return &WeatherCacheAdapter{
		cacheProvider: cacheProvider,
	}
}

// Get returns the cached sequence. Entries written by another version count as a miss.
func (w *WeatherCacheAdapter) Get(ctx context.Context, key string) ([]ports.CityWeather, error) {
	data, err := w.cacheProvider.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var entry weatherCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, errors.NewExternalAPIError("failed to deserialize weather data", err)
	}
	if entry.Version != weatherCacheVersion {
		return nil, errors.NewNotFoundError("cached weather data has an outdated format")
	}

	return entry.Items, nil
}

func (w *WeatherCacheAdapter) Set(ctx context.Context, key string, items []ports.CityWeather, ttl time.Duration) error {
	if len(items) == 0 {
		return errors.NewValidationError("weather data cannot be empty")
	}

	data, err := json.Marshal(weatherCacheEntry{
		Version:  weatherCacheVersion,
		CachedAt: time.Now().UTC(),
		Items:    items,
	})
	if err != nil {
		return errors.NewExternalAPIError("failed to serialize weather data", err)
	}

	return w.cacheProvider.Set(ctx, key, data, ttl)
}
