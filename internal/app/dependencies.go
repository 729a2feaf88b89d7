package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"gorm.io/gorm"
	"weatherhome.app/internal/adapters/database"
	"weatherhome.app/internal/adapters/external"
	"weatherhome.app/internal/adapters/infrastructure"
	"weatherhome.app/internal/adapters/notifier"
	"weatherhome.app/internal/adapters/platform"
	"weatherhome.app/internal/config"
	"weatherhome.app/internal/core/weather"
	"weatherhome.app/internal/ports"
	"weatherhome.app/metrics"
	"weatherhome.app/pkg/logger"
)

// DependencyContainer builds the adapters behind every port and owns their lifetimes
type DependencyContainer struct {
	config    *config.Config
	db        *gorm.DB
	ports     *ports.ApplicationPorts
	collector *metrics.Collector

	feed           *weather.Feed
	weatherService *external.WeatherServiceAdapter
	weatherAPI     *external.OpenWeatherMapProviderAdapter
	permissions    *platform.PolicyPermissionAPI
	navigator      *platform.RecordingNavigator
	notifier       *notifier.GocronNotifier
	cache          external.CacheProvider
	fileLogger     *infrastructure.FileLoggerAdapter
}

func NewDependencyContainer(cfg *config.Config) (*DependencyContainer, error) {
	c := &DependencyContainer{
		config:    cfg,
		collector: metrics.NewCollector(),
		feed:      weather.NewFeed(),
	}

	log := c.initializeLogger()

	if err := c.initializeDatabase(log); err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if err := c.initializePorts(log); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return c, nil
}

func (c *DependencyContainer) initializeLogger() ports.Logger {
	level := logger.ParseLevel(c.config.LogLevel)
	var log ports.Logger = infrastructure.NewSlogLoggerAdapter(logger.NewWithLevel(level).Logger)

	if !c.config.Weather.EnableLogging || c.config.Weather.LogFilePath == "" {
		return log
	}

	fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Weather.LogFilePath, level)
	if err != nil {
		log.Warn("Failed to create file logger, falling back to stdout", ports.F("error", err))
		return log
	}
	c.fileLogger = fileLogger
	log.Info("File logging enabled", ports.F("path", fileLogger.Path()))
	return infrastructure.TeeLogger{log, fileLogger}
}

func (c *DependencyContainer) initializeDatabase(log ports.Logger) error {
	log.Info("Initializing database connection", ports.F("driver", c.config.Database.Driver))

	db, err := database.Open(c.config.Database.Driver, c.config.Database.GetDSN())
	if err != nil {
		return err
	}

	c.db = db
	log.Info("Database connection established")
	return nil
}

func (c *DependencyContainer) initializePorts(log ports.Logger) error {
	configProvider := infrastructure.NewConfigProviderAdapter(c.config)
	platformCfg := configProvider.GetPlatformConfig()
	clock := platform.SystemClock{}

	device := platform.NewDevice(platformCfg.OS, platformCfg.APILevel)

	reachability, err := platform.NewHTTPReachability(platform.HTTPReachabilityParams{
		Target:  platformCfg.ReachabilityTarget,
		Timeout: platformCfg.ReachabilityTimeout,
		Logger:  log,
	})
	if err != nil {
		return fmt.Errorf("create reachability: %w", err)
	}

	permissions, err := platform.NewPolicyPermissionAPI(platformCfg.PermissionPolicy, log)
	if err != nil {
		return fmt.Errorf("create permission api: %w", err)
	}
	c.permissions = permissions

	positions, err := c.newPositionProvider(clock, log)
	if err != nil {
		return fmt.Errorf("create position provider: %w", err)
	}

	c.navigator = platform.NewRecordingNavigator(log)

	// Weather
	c.weatherAPI = external.NewOpenWeatherMapProviderAdapter(external.OpenWeatherMapProviderParams{
		APIKey:  c.config.Weather.OpenWeatherMapKey,
		BaseURL: c.config.Weather.OpenWeatherMapBaseURL,
		Timeout: time.Duration(c.config.Weather.RequestTimeoutSeconds) * time.Second,
		Logger:  log,
	})
	var weatherProvider ports.WeatherProvider = c.weatherAPI
	if c.config.Weather.EnableLogging {
		weatherProvider = external.NewWeatherProviderLoggingDecorator(c.weatherAPI, log, c.collector)
		log.Info("Weather provider logging enabled")
	}

	cache, err := external.NewCacheProviderFactory().CreateCacheProvider(&c.config.Cache)
	if err != nil {
		return fmt.Errorf("create cache provider: %w", err)
	}
	c.cache = cache
	cacheMetrics := c.collector.CacheMetrics(c.config.Cache.Type.String())
	weatherCache := external.NewWeatherCacheAdapter(external.NewInstrumentedCache(cache, cacheMetrics, log))
	log.Info("Cache provider initialized",
		ports.F("type", c.config.Cache.Type.String()),
		ports.F("redis_addr", c.config.Cache.Redis.Addr))

	weatherService, err := external.NewWeatherServiceAdapter(external.WeatherServiceParams{
		Provider: weatherProvider,
		Cache:    weatherCache,
		Sink:     c.feed,
		Config:   configProvider,
		Logger:   log,
	})
	if err != nil {
		return fmt.Errorf("create weather service: %w", err)
	}
	c.weatherService = weatherService

	weatherMetrics := external.NewWeatherMetricsAdapter(weatherProvider, cache, configProvider, c.weatherAPI)

	// Notification
	notificationCfg := configProvider.GetNotificationConfig()
	repository := database.NewNotificationRepositoryAdapter(c.db)
	delivery, err := notifier.NewShoutrrrDelivery(notificationCfg.DeliveryURLs, notificationCfg.DeliveryTimeout, log)
	if err != nil {
		return fmt.Errorf("create notification delivery: %w", err)
	}

	localNotifier, err := notifier.NewGocronNotifier(notifier.GocronNotifierParams{
		Repository:      repository,
		Delivery:        delivery,
		Clock:           clock,
		Logger:          log,
		Location:        c.config.Scheduler.Location(),
		DeliveryTimeout: notificationCfg.DeliveryTimeout,
	})
	if err != nil {
		return fmt.Errorf("create local notifier: %w", err)
	}
	c.notifier = localNotifier

	c.ports = &ports.ApplicationPorts{
		// Platform
		Platform:     device,
		Reachability: reachability,
		Permissions:  permissions,
		Positions:    positions,
		Navigator:    c.navigator,
		Clock:        clock,

		// Weather
		WeatherProvider: weatherProvider,
		WeatherCache:    weatherCache,
		WeatherMetrics:  weatherMetrics,

		// Notification
		LocalNotifier:          localNotifier,
		NotificationRepository: repository,

		// Cache
		CacheMetrics: cache,

		// Infrastructure
		ConfigProvider: configProvider,
		Logger:         log,
		Metrics:        c.collector,
		Database:       c.db,
	}

	log.Info("Ports initialized",
		ports.F("os", device.OS()),
		ports.F("location_source", c.config.Location.Source))
	return nil
}

func (c *DependencyContainer) newPositionProvider(clock ports.Clock, log ports.Logger) (ports.PositionProvider, error) {
	if c.config.Location.Source != "geoip" {
		return platform.NewStaticPositionProvider(c.config.Location.Latitude, c.config.Location.Longitude, clock), nil
	}

	return platform.NewGeoIPPositionProvider(platform.GeoIPPositionParams{
		URL:    c.config.Location.GeoIPURL,
		Client: &http.Client{Timeout: time.Duration(c.config.Location.TimeoutSeconds) * time.Second},
		Clock:  clock,
		Logger: log,
	})
}

func (c *DependencyContainer) cacheHealthChecker() *infrastructure.CacheHealthChecker {
	var pinger interface{ Ping(ctx context.Context) error }
	if redis, ok := c.cache.(*external.RedisCacheProviderAdapter); ok {
		pinger = redis
	}
	return infrastructure.NewCacheHealthChecker(c.config.Cache.Type.String(), c.cache, pinger)
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

func (c *DependencyContainer) Database() *gorm.DB {
	return c.db
}

// Cleanup releases background workers and connections
func (c *DependencyContainer) Cleanup() {
	if c.weatherService != nil {
		c.weatherService.Close()
	}
	if c.notifier != nil {
		c.notifier.Close()
	}
	if closer, ok := c.cache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			slog.Warn("Error closing cache", "error", err)
		}
	}
	if c.db != nil {
		if db, err := c.db.DB(); err == nil {
			if err := db.Close(); err != nil {
				slog.Warn("Error closing database", "error", err)
			}
		}
	}
	if c.fileLogger != nil {
		if err := c.fileLogger.Close(); err != nil {
			slog.Warn("Error closing log file", "error", err)
		}
	}
}
