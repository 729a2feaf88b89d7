package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"weatherhome.app/internal/ports"
)

// WeatherTrigger is a mock of ports.WeatherTrigger
type WeatherTrigger struct {
	mock.Mock
}

func NewWeatherTrigger(t testingT) *WeatherTrigger {
	m := &WeatherTrigger{}
	register(&m.Mock, t)
	return m
}

func (m *WeatherTrigger) RefreshCityList(ctx context.Context) {
	m.Called(ctx)
}

func (m *WeatherTrigger) RefreshCurrentLocationWeather(ctx context.Context, lat, lon float64) {
	m.Called(ctx, lat, lon)
}

// WeatherProvider is a mock of ports.WeatherProvider
type WeatherProvider struct {
	mock.Mock
}

func NewWeatherProvider(t testingT) *WeatherProvider {
	m := &WeatherProvider{}
	register(&m.Mock, t)
	return m
}

func (m *WeatherProvider) GetCityList(ctx context.Context, cityIDs []int64) ([]ports.CityWeather, error) {
	args := m.Called(ctx, cityIDs)
	items, _ := args.Get(0).([]ports.CityWeather)
	return items, args.Error(1)
}

func (m *WeatherProvider) GetByCoordinates(ctx context.Context, lat, lon float64) (*ports.CityWeather, error) {
	args := m.Called(ctx, lat, lon)
	item, _ := args.Get(0).(*ports.CityWeather)
	return item, args.Error(1)
}

func (m *WeatherProvider) GetProviderName() string {
	args := m.Called()
	return args.String(0)
}

// WeatherCache is a mock of ports.WeatherCache
type WeatherCache struct {
	mock.Mock
}

func NewWeatherCache(t testingT) *WeatherCache {
	m := &WeatherCache{}
	register(&m.Mock, t)
	return m
}

func (m *WeatherCache) Get(ctx context.Context, key string) ([]ports.CityWeather, error) {
	args := m.Called(ctx, key)
	items, _ := args.Get(0).([]ports.CityWeather)
	return items, args.Error(1)
}

func (m *WeatherCache) Set(ctx context.Context, key string, items []ports.CityWeather, ttl time.Duration) error {
	args := m.Called(ctx, key, items, ttl)
	return args.Error(0)
}

// WeatherSink is a mock of ports.WeatherSink
type WeatherSink struct {
	mock.Mock
}

func NewWeatherSink(t testingT) *WeatherSink {
	m := &WeatherSink{}
	register(&m.Mock, t)
	return m
}

func (m *WeatherSink) PublishCityList(items []ports.CityWeather) {
	m.Called(items)
}

func (m *WeatherSink) PublishCurrentWeather(items []ports.CityWeather) {
	m.Called(items)
}
