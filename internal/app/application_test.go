package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherhome.app/internal/adapters/infrastructure"
	"weatherhome.app/internal/config"
	"weatherhome.app/internal/core/location"
	"weatherhome.app/internal/core/screen"
	"weatherhome.app/internal/mocks"
	"weatherhome.app/internal/ports"
)

func setupTestConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("OPENWEATHERMAP_API_KEY", "test-key")
	t.Setenv("GIN_MODE", "test")
	t.Setenv("DB_SQLITE_PATH", "file:"+t.Name()+"?mode=memory&cache=shared")
	t.Setenv("WEATHER_ENABLE_LOGGING", "false")
	t.Setenv("NOTIFICATION_DELIVERY_URLS", "logger://")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	return cfg
}

func TestNewApplicationWithDependencies(t *testing.T) {
	cfg := setupTestConfig(t)

	deps, err := NewDependencyContainer(cfg)
	require.NoError(t, err)

	application, err := NewApplicationWithDependencies(cfg, deps)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, application.Shutdown(ctx))
	})

	assert.Same(t, cfg, application.Config())
	require.NotNil(t, application.Screen())

	w := httptest.NewRecorder()
	application.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/screen", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var view screen.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "initializing", view.State)
	assert.Empty(t, view.Items)

	w = httptest.NewRecorder()
	application.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/screen/retry", nil))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	application.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notifications", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"notifications":[]}`, w.Body.String())

	w = httptest.NewRecorder()
	application.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestApplication_ShutdownIsIdempotent(t *testing.T) {
	cfg := setupTestConfig(t)

	deps, err := NewDependencyContainer(cfg)
	require.NoError(t, err)
	application, err := NewApplicationWithDependencies(cfg, deps)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, application.Shutdown(ctx))
	require.NoError(t, application.Shutdown(ctx))
}

func TestApplication_StartScreenCancelledIsNotAnError(t *testing.T) {
	cfg := setupTestConfig(t)

	deps, err := NewDependencyContainer(cfg)
	require.NoError(t, err)
	application, err := NewApplicationWithDependencies(cfg, deps)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, application.Shutdown(context.Background())) })

	log := mocks.NewLogger()
	application.logger = log

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	application.screenWG.Add(1)
	application.startScreen(ctx)

	_, interrupted := log.Find("Home screen activation interrupted by shutdown")
	assert.True(t, interrupted)
	_, failed := log.Find("Home screen activation failed")
	assert.False(t, failed)
	assert.Equal(t, "disconnected", application.Screen().View().State)
}

func TestNewDependencyContainer_InvalidDatabase(t *testing.T) {
	cfg := setupTestConfig(t)
	cfg.Database.Driver = "mysql"

	_, err := NewDependencyContainer(cfg)

	require.Error(t, err)
}

func TestLocationOptions(t *testing.T) {
	t.Run("ConfiguredValues", func(t *testing.T) {
		opts := locationOptions(ports.LocationConfig{
			Timeout:              20 * time.Second,
			MaximumAge:           5 * time.Second,
			EnableHighAccuracy:   true,
			ForceRequestLocation: true,
			ShowLocationDialog:   true,
		})

		assert.Equal(t, 20*time.Second, opts.Timeout)
		assert.Equal(t, 5*time.Second, opts.MaximumAge)
		assert.True(t, opts.EnableHighAccuracy)
		assert.True(t, opts.ForceRequestLocation)
		assert.True(t, opts.ShowLocationDialog)
		assert.Equal(t, "high", opts.Accuracy.Android)
		assert.Equal(t, "best", opts.Accuracy.IOS)
	})

	t.Run("DefaultConfigMatchesCoreDefaults", func(t *testing.T) {
		cfg := setupTestConfig(t)
		opts := locationOptions(infrastructure.NewConfigProviderAdapter(cfg).GetLocationConfig())
		defaults := location.DefaultOptions()

		assert.Equal(t, defaults.EnableHighAccuracy, opts.EnableHighAccuracy)
		assert.Equal(t, defaults.ForceRequestLocation, opts.ForceRequestLocation)
		assert.Equal(t, defaults.ShowLocationDialog, opts.ShowLocationDialog)
	})

	t.Run("ZeroTimeoutKeepsDefault", func(t *testing.T) {
		opts := locationOptions(ports.LocationConfig{})

		assert.Equal(t, location.DefaultTimeout, opts.Timeout)
		assert.Zero(t, opts.MaximumAge)
	})
}
