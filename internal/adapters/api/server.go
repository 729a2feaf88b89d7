// Package api exposes the home screen over HTTP. Each route maps to one
// screen or notifier operation.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherhome.app/internal/adapters/platform"
	"weatherhome.app/internal/core/screen"
	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
	Mode string
}

// Screen is the home screen controller surface used by the handlers
type Screen interface {
	View() screen.View
	Retry(ctx context.Context) error
	SelectItem(id int64) error
}

type NavigationHistory interface {
	History() []platform.Navigation
}

// PermissionPolicy lets operators change how the next permission prompt is answered
type PermissionPolicy interface {
	Policy() string
	SetPolicy(policy string) error
}

type MetricsCollector interface {
	GetMetrics(ctx context.Context) (map[string]interface{}, error)
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router        *gin.Engine
	config        ServerConfig
	screen        Screen
	navigation    NavigationHistory
	permissions   PermissionPolicy
	notifier      ports.LocalNotifier
	notifications ports.NotificationRepository
	metrics       MetricsCollector
	health        ports.SystemHealthChecker
	logger        ports.Logger
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config         ServerConfig
	Screen         Screen
	Navigation     NavigationHistory
	Permissions    PermissionPolicy
	Notifier       ports.LocalNotifier
	Notifications  ports.NotificationRepository
	Metrics        MetricsCollector
	MetricsHandler http.Handler
	Health         ports.SystemHealthChecker
	Logger         ports.Logger
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.Screen == nil {
		return errors.NewValidationError("screen is required")
	}
	if opts.Navigation == nil {
		return errors.NewValidationError("navigation history is required")
	}
	if opts.Permissions == nil {
		return errors.NewValidationError("permission policy is required")
	}
	if opts.Notifier == nil {
		return errors.NewValidationError("local notifier is required")
	}
	if opts.Notifications == nil {
		return errors.NewValidationError("notification repository is required")
	}
	if opts.Metrics == nil {
		return errors.NewValidationError("metrics collector is required")
	}
	if opts.MetricsHandler == nil {
		return errors.NewValidationError("metrics handler is required")
	}
	if opts.Health == nil {
		return errors.NewValidationError("health checker is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	if opts.Config.Mode != "" {
		gin.SetMode(opts.Config.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(opts.Logger))

	server := &HTTPServerAdapter{
		router:        router,
		config:        opts.Config,
		screen:        opts.Screen,
		navigation:    opts.Navigation,
		permissions:   opts.Permissions,
		notifier:      opts.Notifier,
		notifications: opts.Notifications,
		metrics:       opts.Metrics,
		health:        opts.Health,
		logger:        opts.Logger,
	}

	server.setupRoutes(opts.MetricsHandler)
	return server, nil
}

func (s *HTTPServerAdapter) setupRoutes(metricsHandler http.Handler) {
	api := s.router.Group("/api")
	{
		api.GET("/screen", s.getScreen)
		api.POST("/screen/retry", s.retry)
		api.POST("/screen/items/:id/select", s.selectItem)
		api.GET("/navigation", s.getNavigation)

		api.GET("/notifications", s.listNotifications)
		api.GET("/notifications/pending", s.pendingNotifications)

		api.GET("/platform/permission", s.getPermissionPolicy)
		api.PUT("/platform/permission", s.setPermissionPolicy)

		api.GET("/health", s.getHealth)
		api.GET("/metrics", s.getMetrics)
	}

	s.router.GET("/metrics", gin.WrapH(metricsHandler))
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}

func requestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Debug("HTTP request",
			ports.F("method", c.Request.Method),
			ports.F("path", c.FullPath()),
			ports.F("status", c.Writer.Status()))
	}
}
