package infrastructure

import (
	"context"

	"weatherhome.app/internal/ports"
)

const (
	statusHealthy   = ports.HealthStatusHealthy
	statusDegraded  = ports.HealthStatusDegraded
	statusUnhealthy = ports.HealthStatusUnhealthy
)

func unhealthy(status ports.HealthStatus, reason string) ports.HealthStatus {
	status.Status = statusUnhealthy
	status.Error = reason
	return status
}

// WeatherAPIHealthChecker reports the weather provider and its circuit breaker
type WeatherAPIHealthChecker struct {
	provider ports.WeatherProvider
	circuit  interface{ CircuitState() string }
}

// NewWeatherAPIHealthChecker builds the checker; circuit may be nil
func NewWeatherAPIHealthChecker(provider ports.WeatherProvider, circuit interface{ CircuitState() string }) *WeatherAPIHealthChecker {
	return &WeatherAPIHealthChecker{provider: provider, circuit: circuit}
}

func (w *WeatherAPIHealthChecker) Check(_ context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "weatherAPI",
		Status:    statusHealthy,
		Details:   map[string]interface{}{},
	}

	if w.provider == nil {
		return unhealthy(status, "weather provider is not available")
	}
	status.Details["provider"] = w.provider.GetProviderName()

	if w.circuit != nil {
		state := w.circuit.CircuitState()
		status.Details["circuit"] = state
		switch state {
		case "open":
			status.Status = statusUnhealthy
			status.Error = "circuit breaker is open"
		case "half-open":
			status.Status = statusDegraded
		}
	}

	return status
}

// ReachabilityHealthChecker reports whether the network reachability target answers
type ReachabilityHealthChecker struct {
	reachability ports.NetworkReachability
	target       string
}

func NewReachabilityHealthChecker(reachability ports.NetworkReachability, target string) *ReachabilityHealthChecker {
	return &ReachabilityHealthChecker{reachability: reachability, target: target}
}

func (r *ReachabilityHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "network",
		Details:   map[string]interface{}{"target": r.target},
	}

	connected, err := r.reachability.IsConnected(ctx)
	if err != nil {
		return unhealthy(status, err.Error())
	}

	status.Details["connected"] = connected
	status.Status = statusHealthy
	if !connected {
		status.Status = statusDegraded
	}
	return status
}

// NotifierHealthChecker reports pending local notifications
type NotifierHealthChecker struct {
	notifier ports.LocalNotifier
}

func NewNotifierHealthChecker(notifier ports.LocalNotifier) *NotifierHealthChecker {
	return &NotifierHealthChecker{notifier: notifier}
}

func (n *NotifierHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "notifier",
		Details:   map[string]interface{}{},
	}

	pending, err := n.notifier.PendingNotifications(ctx)
	if err != nil {
		return unhealthy(status, err.Error())
	}

	status.Status = statusHealthy
	status.Details["pending"] = len(pending)
	return status
}

// CacheHealthChecker reports cache statistics and, for remote caches, connectivity
type CacheHealthChecker struct {
	cacheType string
	stats     ports.CacheMetrics
	pinger    interface{ Ping(ctx context.Context) error }
}

// NewCacheHealthChecker builds the checker; pinger is nil for in-process caches
func NewCacheHealthChecker(cacheType string, stats ports.CacheMetrics, pinger interface{ Ping(ctx context.Context) error }) *CacheHealthChecker {
	return &CacheHealthChecker{cacheType: cacheType, stats: stats, pinger: pinger}
}

func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Status:    statusHealthy,
		Details:   map[string]interface{}{"type": c.cacheType},
	}

	if c.stats != nil {
		stats := c.stats.GetStats()
		status.Details["hit_ratio"] = stats.HitRatio
		status.Details["total_ops"] = stats.TotalOps
	}

	if c.pinger != nil {
		if err := c.pinger.Ping(ctx); err != nil {
			status.Status = statusDegraded
			status.Error = err.Error()
		}
	}
	return status
}
