package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"weatherhome.app/internal/adapters/api"
	"weatherhome.app/internal/adapters/infrastructure"
	"weatherhome.app/internal/config"
	"weatherhome.app/internal/core/connectivity"
	"weatherhome.app/internal/core/location"
	"weatherhome.app/internal/core/notification"
	"weatherhome.app/internal/core/permission"
	"weatherhome.app/internal/core/screen"
	"weatherhome.app/internal/ports"
)

type Application struct {
	config *config.Config
	deps   *DependencyContainer

	// Use Cases
	connectivityUseCase *connectivity.UseCase
	permissionUseCase   *permission.UseCase
	locationUseCase     *location.UseCase
	notificationUseCase *notification.UseCase
	screen              *screen.Controller

	// Adapters
	httpServer *http.Server
	router     *gin.Engine

	// Infrastructure
	ports  *ports.ApplicationPorts
	logger ports.Logger

	screenWG sync.WaitGroup
	shutdown sync.Once
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	deps, err := NewDependencyContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app, err := NewApplicationWithDependencies(cfg, deps)
	if err != nil {
		deps.Cleanup()
		return nil, err
	}
	return app, nil
}

// NewApplicationWithDependencies creates an application around an existing container
func NewApplicationWithDependencies(cfg *config.Config, deps *DependencyContainer) (*Application, error) {
	app := &Application{
		config: cfg,
		deps:   deps,
		ports:  deps.ApplicationPorts(),
		logger: deps.ApplicationPorts().Logger,
	}

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	a.logger.Info("Initializing use cases")

	connectivityUseCase, err := connectivity.NewUseCase(connectivity.UseCaseDependencies{
		Reachability: a.ports.Reachability,
		Logger:       a.ports.Logger,
		Metrics:      a.ports.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create connectivity use case: %w", err)
	}
	a.connectivityUseCase = connectivityUseCase

	permissionUseCase, err := permission.NewUseCase(permission.UseCaseDependencies{
		Platform:    a.ports.Platform,
		Permissions: a.ports.Permissions,
		Logger:      a.ports.Logger,
		Metrics:     a.ports.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create permission use case: %w", err)
	}
	a.permissionUseCase = permissionUseCase

	locationUseCase, err := location.NewUseCase(location.UseCaseDependencies{
		Permission: permissionUseCase,
		Positions:  a.ports.Positions,
		Trigger:    a.deps.weatherService,
		Platform:   a.ports.Platform,
		Logger:     a.ports.Logger,
		Metrics:    a.ports.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create location use case: %w", err)
	}
	a.locationUseCase = locationUseCase

	notificationCfg := a.ports.ConfigProvider.GetNotificationConfig()
	notificationUseCase, err := notification.NewUseCase(notification.UseCaseDependencies{
		Notifier:    a.ports.LocalNotifier,
		Clock:       a.ports.Clock,
		Logger:      a.ports.Logger,
		Metrics:     a.ports.Metrics,
		ChannelID:   notificationCfg.ChannelID,
		ChannelName: notificationCfg.ChannelName,
		Delay:       notificationCfg.Delay,
		Mode:        notification.ParseMode(notificationCfg.Mode),
	})
	if err != nil {
		return fmt.Errorf("create notification use case: %w", err)
	}
	a.notificationUseCase = notificationUseCase

	controller, err := screen.New(screen.Deps{
		Connectivity:     connectivityUseCase,
		Permissions:      permissionUseCase,
		Location:         locationUseCase,
		Trigger:          a.deps.weatherService,
		Feed:             a.deps.feed,
		Notifications:    notificationUseCase,
		Navigator:        a.ports.Navigator,
		Logger:           a.ports.Logger,
		LocationOptions:  locationOptions(a.ports.ConfigProvider.GetLocationConfig()),
		NotificationMode: notificationUseCase.DefaultMode(),
	})
	if err != nil {
		return fmt.Errorf("create screen controller: %w", err)
	}
	a.screen = controller

	return nil
}

// locationOptions overlays configured values on the default single-fix options
func locationOptions(cfg ports.LocationConfig) location.Options {
	opts := location.DefaultOptions()
	if cfg.Timeout > 0 {
		opts.Timeout = cfg.Timeout
	}
	opts.MaximumAge = cfg.MaximumAge
	opts.DistanceFilter = cfg.DistanceFilter
	opts.EnableHighAccuracy = cfg.EnableHighAccuracy
	opts.ForceRequestLocation = cfg.ForceRequestLocation
	opts.ShowLocationDialog = cfg.ShowLocationDialog
	return opts
}

func (a *Application) initializeAdapters() error {
	a.logger.Info("Initializing adapters")

	metricsCollector := infrastructure.NewMetricsCollectorAdapter(infrastructure.MetricsCollectorConfig{
		WeatherMetrics: a.ports.WeatherMetrics,
		Notifier:       a.ports.LocalNotifier,
	})

	platformCfg := a.ports.ConfigProvider.GetPlatformConfig()
	systemHealthChecker := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		Checkers: map[string]ports.HealthChecker{
			"database":     infrastructure.NewDatabaseHealthChecker(a.deps.Database()),
			"weatherAPI":   infrastructure.NewWeatherAPIHealthChecker(a.ports.WeatherProvider, a.deps.weatherAPI),
			"reachability": infrastructure.NewReachabilityHealthChecker(a.ports.Reachability, platformCfg.ReachabilityTarget),
			"notifier":     infrastructure.NewNotifierHealthChecker(a.ports.LocalNotifier),
			"cache":        a.deps.cacheHealthChecker(),
		},
		ConfigProvider: a.ports.ConfigProvider,
	})

	serverCfg := a.ports.ConfigProvider.GetServerConfig()
	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config:         api.ServerConfig{Port: serverCfg.Port, Mode: serverCfg.Mode},
		Screen:         a.screen,
		Navigation:     a.deps.navigator,
		Permissions:    a.deps.permissions,
		Notifier:       a.ports.LocalNotifier,
		Notifications:  a.ports.NotificationRepository,
		Metrics:        metricsCollector,
		MetricsHandler: a.deps.collector.Handler(),
		Health:         systemHealthChecker,
		Logger:         a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.router = httpAdapter.GetRouter()
	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", serverCfg.Port),
		Handler:      a.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return nil
}

// Start activates the home screen in the background and serves HTTP until shutdown
func (a *Application) Start(ctx context.Context) error {
	a.logger.Info("Starting application")

	a.screenWG.Add(1)
	go a.startScreen(ctx)

	a.logger.Info("Starting HTTP server", ports.F("port", a.config.Server.Port))
	if err := a.httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

func (a *Application) startScreen(ctx context.Context) {
	defer a.screenWG.Done()

	err := a.screen.Start(ctx)
	switch {
	case stderrors.Is(err, screen.ErrStopped), stderrors.Is(err, context.Canceled):
		a.logger.Info("Home screen activation interrupted by shutdown")
		return
	case err != nil:
		a.logger.Error("Home screen activation failed", ports.F("error", err))
		return
	}

	view := a.screen.View()
	a.logger.Info("Home screen activated",
		ports.F("state", view.State),
		ports.F("items", len(view.Items)))
}

// Shutdown stops the screen, the HTTP server and every background worker
func (a *Application) Shutdown(ctx context.Context) error {
	var shutdownErr error
	a.shutdown.Do(func() {
		a.logger.Info("Shutting down application")

		a.screen.Stop()
		a.screenWG.Wait()

		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.logger.Error("Error shutting down HTTP server", ports.F("error", err))
			shutdownErr = fmt.Errorf("shutdown HTTP server: %w", err)
		}

		a.logger.Info("Application shutdown complete")
		a.deps.Cleanup()
	})
	return shutdownErr
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// Screen returns the home screen controller
func (a *Application) Screen() *screen.Controller {
	return a.screen
}
