package external

import (
	"context"
	"time"

	"weatherhome.app/internal/ports"
)

// WeatherProviderLoggingDecorator decorates weather providers with structured logging
// and per-call metrics
type WeatherProviderLoggingDecorator struct {
	provider ports.WeatherProvider
	logger   ports.Logger
	metrics  ports.MetricsCollector
}

// NewWeatherProviderLoggingDecorator creates a new logging decorator for weather providers
func NewWeatherProviderLoggingDecorator(provider ports.WeatherProvider, logger ports.Logger, metrics ports.MetricsCollector) *WeatherProviderLoggingDecorator {
	return &WeatherProviderLoggingDecorator{
		provider: provider,
		logger:   logger,
		metrics:  metrics,
	}
}

// GetCityList wraps the provider call with structured logging
func (d *WeatherProviderLoggingDecorator) GetCityList(ctx context.Context, cityIDs []int64) ([]ports.CityWeather, error) {
	providerName := d.provider.GetProviderName()

	d.logger.Info("Weather API request started",
		ports.F("provider", providerName),
		ports.F("operation", "city_list"),
		ports.F("cities", len(cityIDs)),
		ports.F("event", "request"))

	startTime := time.Now()
	items, err := d.provider.GetCityList(ctx, cityIDs)
	duration := time.Since(startTime)
	d.metrics.RecordWeatherAPICall(ctx, providerName, err == nil)

	if err != nil {
		d.logger.Error("Weather API request failed",
			ports.F("provider", providerName),
			ports.F("operation", "city_list"),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Weather API request completed",
		ports.F("provider", providerName),
		ports.F("operation", "city_list"),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("returned", len(items)))

	return items, nil
}

// GetByCoordinates wraps the provider call with structured logging
func (d *WeatherProviderLoggingDecorator) GetByCoordinates(ctx context.Context, lat, lon float64) (*ports.CityWeather, error) {
	providerName := d.provider.GetProviderName()

	d.logger.Info("Weather API request started",
		ports.F("provider", providerName),
		ports.F("operation", "coordinates"),
		ports.F("latitude", lat),
		ports.F("longitude", lon),
		ports.F("event", "request"))

	startTime := time.Now()
	item, err := d.provider.GetByCoordinates(ctx, lat, lon)
	duration := time.Since(startTime)
	d.metrics.RecordWeatherAPICall(ctx, providerName, err == nil)

	if err != nil {
		d.logger.Error("Weather API request failed",
			ports.F("provider", providerName),
			ports.F("operation", "coordinates"),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Weather API request completed",
		ports.F("provider", providerName),
		ports.F("operation", "coordinates"),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("city", item.Name),
		ports.F("temperature", item.Temp),
		ports.F("description", item.Description))

	return item, nil
}

// GetProviderName returns the name of the wrapped provider with logging indication
func (d *WeatherProviderLoggingDecorator) GetProviderName() string {
	return "logged(" + d.provider.GetProviderName() + ")"
}
