// Package metrics exposes the prometheus collectors of the home screen workflow.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "weatherhome"

// Collector records workflow outcomes into its own registry
type Collector struct {
	registry *prometheus.Registry
	cache    *cacheVectors

	connectivity *prometheus.CounterVec
	permission   *prometheus.CounterVec
	location     *prometheus.CounterVec
	notification *prometheus.CounterVec
	weatherAPI   *prometheus.CounterVec
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		cache:    newCacheVectors(factory),
		connectivity: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connectivity_checks_total",
			Help:      "Connectivity probe conclusions",
		}, []string{"state"}),
		permission: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "permission_resolutions_total",
			Help:      "Location permission resolutions by state",
		}, []string{"state"}),
		location: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "location_requests_total",
			Help:      "Location fetch outcomes",
		}, []string{"outcome"}),
		notification: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification scheduling outcomes",
		}, []string{"outcome"}),
		weatherAPI: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_api_requests_total",
			Help:      "Weather provider requests by result",
		}, []string{"provider", "result"}),
	}
}

func (c *Collector) RecordConnectivity(_ context.Context, state string) {
	c.connectivity.WithLabelValues(state).Inc()
}

func (c *Collector) RecordPermission(_ context.Context, state string) {
	c.permission.WithLabelValues(state).Inc()
}

func (c *Collector) RecordLocation(_ context.Context, outcome string) {
	c.location.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordNotification(_ context.Context, outcome string) {
	c.notification.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordWeatherAPICall(_ context.Context, provider string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	c.weatherAPI.WithLabelValues(provider, result).Inc()
}

// CacheMetrics returns cache metrics labelled with cacheType
func (c *Collector) CacheMetrics(cacheType string) *CacheMetrics {
	return newCacheMetrics(cacheType, c.cache)
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
