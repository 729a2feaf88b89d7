package ports

import (
	"context"
	"time"
)

// CityWeather is one weather reading as delivered by the weather service
type CityWeather struct {
	ID          int64
	Name        string
	Description string
	Temp        float64
	Humidity    float64
	Icon        string
	Latitude    float64
	Longitude   float64
	Timestamp   time.Time
}

// CacheStats represents cache performance metrics
type CacheStats struct {
	Hits        int64
	Misses      int64
	TotalOps    int64
	HitRatio    float64
	LastUpdated time.Time
}

// WeatherTrigger is the callback contract the screen uses to ask for fresh data.
// Calls return immediately; results are pushed back through a WeatherSink.
type WeatherTrigger interface {
	RefreshCityList(ctx context.Context)
	RefreshCurrentLocationWeather(ctx context.Context, lat, lon float64)
}

// WeatherSink receives weather sequences produced by the weather service
type WeatherSink interface {
	PublishCityList(items []CityWeather)
	PublishCurrentWeather(items []CityWeather)
}

// WeatherProvider defines the contract for weather data providers
type WeatherProvider interface {
	GetCityList(ctx context.Context, cityIDs []int64) ([]CityWeather, error)
	GetByCoordinates(ctx context.Context, lat, lon float64) (*CityWeather, error)
	GetProviderName() string
}

// WeatherCache defines the contract for caching weather data
type WeatherCache interface {
	Get(ctx context.Context, key string) ([]CityWeather, error)
	Set(ctx context.Context, key string, items []CityWeather, ttl time.Duration) error
}

// WeatherMetrics defines the contract for weather provider metrics
type WeatherMetrics interface {
	GetProviderInfo() map[string]interface{}
	GetCacheMetrics() (CacheStats, error)
}
