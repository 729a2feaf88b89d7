package external

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

// WeatherServiceAdapter implements ports.WeatherTrigger. Each refresh runs in the
// background and publishes its result to the sink; failures are logged only.
type WeatherServiceAdapter struct {
	provider ports.WeatherProvider
	cache    ports.WeatherCache
	sink     ports.WeatherSink
	config   ports.ConfigProvider
	logger   ports.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type WeatherServiceParams struct {
	Provider ports.WeatherProvider
	Cache    ports.WeatherCache
	Sink     ports.WeatherSink
	Config   ports.ConfigProvider
	Logger   ports.Logger
}

func NewWeatherServiceAdapter(params WeatherServiceParams) (*WeatherServiceAdapter, error) {
	if params.Provider == nil {
		return nil, errors.NewValidationError("weather provider is required")
	}
	if params.Cache == nil {
		return nil, errors.NewValidationError("cache is required")
	}
	if params.Sink == nil {
		return nil, errors.NewValidationError("weather sink is required")
	}
	if params.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if params.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &WeatherServiceAdapter{
		provider: params.Provider,
		cache:    params.Cache,
		sink:     params.Sink,
		config:   params.Config,
		logger:   params.Logger,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// RefreshCityList fetches the configured city list and publishes it
func (s *WeatherServiceAdapter) RefreshCityList(ctx context.Context) {
	s.spawn(ctx, func(ctx context.Context) {
		items, err := s.cityList(ctx)
		if err != nil {
			s.logger.Error("Failed to refresh city list", ports.F("error", err))
			return
		}
		s.sink.PublishCityList(items)
	})
}

// RefreshCurrentLocationWeather fetches weather at the given coordinates and publishes it
func (s *WeatherServiceAdapter) RefreshCurrentLocationWeather(ctx context.Context, lat, lon float64) {
	s.spawn(ctx, func(ctx context.Context) {
		item, err := s.byCoordinates(ctx, lat, lon)
		if err != nil {
			s.logger.Error("Failed to refresh current location weather",
				ports.F("latitude", lat),
				ports.F("longitude", lon),
				ports.F("error", err))
			return
		}
		s.sink.PublishCurrentWeather([]ports.CityWeather{*item})
	})
}

// Wait blocks until all in-flight refreshes have finished
func (s *WeatherServiceAdapter) Wait() {
	s.wg.Wait()
}

// Close cancels in-flight refreshes and waits for them
func (s *WeatherServiceAdapter) Close() {
	s.cancel()
	s.wg.Wait()
}

// spawn runs fn detached from the caller's cancellation but bounded by the
// refresh timeout and the adapter lifetime
func (s *WeatherServiceAdapter) spawn(parent context.Context, fn func(ctx context.Context)) {
	if s.ctx.Err() != nil {
		s.logger.Debug("Weather service closed, refresh ignored")
		return
	}

	timeout := s.config.GetWeatherConfig().RefreshTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), timeout)
		defer cancel()
		stop := context.AfterFunc(s.ctx, cancel)
		defer stop()

		fn(ctx)
	}()
}

func (s *WeatherServiceAdapter) cityList(ctx context.Context) ([]ports.CityWeather, error) {
	cfg := s.config.GetWeatherConfig()
	if len(cfg.CityIDs) == 0 {
		return nil, errors.NewConfigurationError("no cities configured", nil)
	}

	ids := make([]string, 0, len(cfg.CityIDs))
	for _, id := range cfg.CityIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	key := "citylist:" + strings.Join(ids, ",")

	return s.withCache(ctx, key, func() ([]ports.CityWeather, error) {
		return s.provider.GetCityList(ctx, cfg.CityIDs)
	})
}

func (s *WeatherServiceAdapter) byCoordinates(ctx context.Context, lat, lon float64) (*ports.CityWeather, error) {
	key := fmt.Sprintf("coords:%.3f,%.3f", lat, lon)

	items, err := s.withCache(ctx, key, func() ([]ports.CityWeather, error) {
		item, err := s.provider.GetByCoordinates(ctx, lat, lon)
		if err != nil {
			return nil, err
		}
		return []ports.CityWeather{*item}, nil
	})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (s *WeatherServiceAdapter) withCache(ctx context.Context, key string, fetch func() ([]ports.CityWeather, error)) ([]ports.CityWeather, error) {
	cfg := s.config.GetWeatherConfig()
	if !cfg.EnableCache {
		return s.fetch(fetch)
	}

	cached, err := s.cache.Get(ctx, key)
	if err == nil && len(cached) > 0 {
		s.logger.Debug("Weather found in cache", ports.F("key", key))
		return cached, nil
	}

	items, err := s.fetch(fetch)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cache.Set(ctx, key, items, cfg.CacheTTL); cacheErr != nil {
		s.logger.Warn("Failed to cache weather data",
			ports.F("key", key),
			ports.F("error", cacheErr))
	}

	return items, nil
}

func (s *WeatherServiceAdapter) fetch(fetch func() ([]ports.CityWeather, error)) ([]ports.CityWeather, error) {
	items, err := fetch()
	if err != nil {
		if errors.TypeOf(err) != errors.ErrorTypeUnknown {
			return nil, err
		}
		return nil, errors.NewExternalAPIError("weather provider failed", err)
	}
	if len(items) == 0 {
		return nil, errors.NewNotFoundError("weather provider returned no data")
	}
	return items, nil
}
