package infrastructure

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"weatherhome.app/internal/adapters/database"
	"weatherhome.app/internal/config"
	"weatherhome.app/internal/mocks"
	"weatherhome.app/internal/ports"
)

type fixedCircuit string

func (c fixedCircuit) CircuitState() string { return string(c) }

type stubWeatherMetrics struct{}

func (stubWeatherMetrics) GetProviderInfo() map[string]interface{} {
	return map[string]interface{}{"provider": "openweathermap"}
}

func (stubWeatherMetrics) GetCacheMetrics() (ports.CacheStats, error) {
	return ports.CacheStats{Hits: 3, Misses: 1, TotalOps: 4, HitRatio: 0.75}, nil
}

func TestConfigProviderAdapter(t *testing.T) {
	cfg := &config.Config{
		Server:   config.ServerConfig{Port: 8080, Mode: "release"},
		Platform: config.PlatformConfig{OS: "android", APILevel: 30, PermissionPolicy: "granted", ReachabilityTimeoutSeconds: 3},
		Location: config.LocationConfig{Source: "static", TimeoutSeconds: 15, MaximumAgeSeconds: 10, EnableHighAccuracy: true},
		Weather: config.WeatherConfig{
			CityIDs:               []int64{1259229},
			EnableCache:           true,
			CacheTTLMinutes:       10,
			RequestTimeoutSeconds: 5,
		},
		Cache: config.CacheConfig{Type: config.CacheTypeRedis, Redis: config.RedisConfig{Addr: "localhost:6379"}},
		Notification: config.NotificationConfig{
			ChannelID:              "weqs-123-wede",
			ChannelName:            "Weather App",
			Mode:                   "await",
			DelayMillis:            5000,
			DeliveryURLs:           []string{"logger://"},
			DeliveryTimeoutSeconds: 10,
		},
	}
	p := NewConfigProviderAdapter(cfg)

	assert.Equal(t, ports.ServerConfig{Port: 8080, Mode: "release"}, p.GetServerConfig())

	weather := p.GetWeatherConfig()
	assert.Equal(t, 10*time.Minute, weather.CacheTTL)
	assert.Equal(t, 5*time.Second, weather.RefreshTimeout)
	weather.CityIDs[0] = 0
	assert.Equal(t, int64(1259229), cfg.Weather.CityIDs[0])

	assert.Equal(t, 3*time.Second, p.GetPlatformConfig().ReachabilityTimeout)

	location := p.GetLocationConfig()
	assert.Equal(t, 15*time.Second, location.Timeout)
	assert.Equal(t, 10*time.Second, location.MaximumAge)
	assert.True(t, location.EnableHighAccuracy)

	notification := p.GetNotificationConfig()
	assert.Equal(t, 5*time.Second, notification.Delay)
	assert.Equal(t, "await", notification.Mode)
	assert.Equal(t, []string{"logger://"}, notification.DeliveryURLs)

	assert.Equal(t, "redis", p.GetCacheConfig().Type)
}

func TestWeatherAPIHealthChecker(t *testing.T) {
	tests := []struct {
		circuit fixedCircuit
		status  string
	}{
		{"closed", statusHealthy},
		{"half-open", statusDegraded},
		{"open", statusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(string(tt.circuit), func(t *testing.T) {
			provider := mocks.NewWeatherProvider(t)
			provider.On("GetProviderName").Return("openweathermap").Once()

			status := NewWeatherAPIHealthChecker(provider, tt.circuit).Check(context.Background())

			assert.Equal(t, tt.status, status.Status)
			assert.Equal(t, "openweathermap", status.Details["provider"])
		})
	}

	status := NewWeatherAPIHealthChecker(nil, nil).Check(context.Background())
	assert.Equal(t, statusUnhealthy, status.Status)
}

func TestReachabilityHealthChecker(t *testing.T) {
	reach := mocks.NewNetworkReachability(t)
	reach.On("IsConnected", mock.Anything).Return(true, nil).Once()
	reach.On("IsConnected", mock.Anything).Return(false, nil).Once()
	reach.On("IsConnected", mock.Anything).Return(false, stderrors.New("radio off")).Once()
	checker := NewReachabilityHealthChecker(reach, "https://clients3.google.com/generate_204")

	assert.Equal(t, statusHealthy, checker.Check(context.Background()).Status)
	assert.Equal(t, statusDegraded, checker.Check(context.Background()).Status)

	status := checker.Check(context.Background())
	assert.Equal(t, statusUnhealthy, status.Status)
	assert.Equal(t, "radio off", status.Error)
}

func TestDatabaseHealthChecker(t *testing.T) {
	db, err := database.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)

	status := NewDatabaseHealthChecker(db).Check(context.Background())
	assert.Equal(t, statusHealthy, status.Status)
	assert.Equal(t, "sqlite", status.Details["driver"])
	assert.Equal(t, int64(0), status.Details["pending_notifications"])

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	status = NewDatabaseHealthChecker(db).Check(context.Background())
	assert.Equal(t, statusUnhealthy, status.Status)

	status = NewDatabaseHealthChecker(nil).Check(context.Background())
	assert.Equal(t, "database instance is nil", status.Error)
}

func TestDatabaseHealthChecker_NotMigrated(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	status := NewDatabaseHealthChecker(db).Check(context.Background())

	assert.Equal(t, statusUnhealthy, status.Status)
	assert.Equal(t, "notifier schema is not migrated", status.Error)
}

func TestSystemHealthChecker(t *testing.T) {
	notifier := mocks.NewInMemoryNotifier()
	provider := mocks.NewWeatherProvider(t)
	provider.On("GetProviderName").Return("openweathermap").Once()

	checker := NewSystemHealthChecker(SystemHealthCheckerConfig{
		Checkers: map[string]ports.HealthChecker{
			"weatherAPI": NewWeatherAPIHealthChecker(provider, fixedCircuit("open")),
			"notifier":   NewNotifierHealthChecker(notifier),
			"missing":    nil,
		},
		ConfigProvider: &mocks.ConfigProvider{
			Platform:     ports.PlatformConfig{OS: "ios"},
			Notification: ports.NotificationConfig{Mode: "await", Delay: 5 * time.Second},
		},
	})

	results := checker.CheckAll(context.Background())

	require.Len(t, results, 3)
	assert.Equal(t, 0, results["notifier"].Details["pending"])
	assert.Equal(t, "ios", results["config"].Details["os"])
	assert.Equal(t, "5s", results["config"].Details["notificationDelay"])
	assert.False(t, Healthy(results))
}

func TestMetricsCollectorAdapter(t *testing.T) {
	notifier := mocks.NewInMemoryNotifier()
	fireAt := time.Date(2024, 6, 1, 12, 0, 5, 0, time.UTC)
	require.NoError(t, notifier.ScheduleLocalNotification(context.Background(), ports.LocalNotification{
		ID: "a", ChannelID: "weather-home", FireAt: fireAt,
	}))

	collector := NewMetricsCollectorAdapter(MetricsCollectorConfig{
		WeatherMetrics: stubWeatherMetrics{},
		Notifier:       notifier,
	})

	metrics, err := collector.GetMetrics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "openweathermap", metrics["weather"].(map[string]interface{})["provider"])
	assert.Equal(t, 0.75, metrics["cache"].(map[string]interface{})["hit_ratio"])
	queue := metrics["notifications"].(map[string]interface{})
	assert.Equal(t, 1, queue["pending"])
	assert.Equal(t, map[string]int{"weather-home": 1}, queue["by_channel"])
	assert.Equal(t, "2024-06-01T12:00:05Z", queue["next_fire_at"])
}

func TestMetricsCollectorAdapter_EmptyQueue(t *testing.T) {
	collector := NewMetricsCollectorAdapter(MetricsCollectorConfig{
		WeatherMetrics: stubWeatherMetrics{},
		Notifier:       mocks.NewInMemoryNotifier(),
	})

	metrics, err := collector.GetMetrics(context.Background())

	require.NoError(t, err)
	queue := metrics["notifications"].(map[string]interface{})
	assert.Equal(t, 0, queue["pending"])
	assert.NotContains(t, queue, "next_fire_at")
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubCacheStats struct{}

func (stubCacheStats) GetStats() ports.CacheStats {
	return ports.CacheStats{Hits: 1, Misses: 1, TotalOps: 2, HitRatio: 0.5}
}
func (stubCacheStats) RecordHit()  {}
func (stubCacheStats) RecordMiss() {}

func TestCacheHealthChecker(t *testing.T) {
	ctx := context.Background()

	memory := NewCacheHealthChecker("memory", stubCacheStats{}, nil).Check(ctx)
	assert.Equal(t, "healthy", memory.Status)
	assert.Equal(t, "memory", memory.Details["type"])
	assert.Equal(t, 0.5, memory.Details["hit_ratio"])

	redisUp := NewCacheHealthChecker("redis", stubCacheStats{}, stubPinger{}).Check(ctx)
	assert.Equal(t, "healthy", redisUp.Status)

	redisDown := NewCacheHealthChecker("redis", nil, stubPinger{err: stderrors.New("connection refused")}).Check(ctx)
	assert.Equal(t, "degraded", redisDown.Status)
	assert.Equal(t, "connection refused", redisDown.Error)
}
