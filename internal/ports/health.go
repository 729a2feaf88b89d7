package ports

import "context"

// Component health levels. Degraded components still serve requests.
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusDegraded  = "degraded"
	HealthStatusUnhealthy = "unhealthy"
)

// HealthChecker reports the state of one component
type HealthChecker interface {
	Check(ctx context.Context) HealthStatus
}

type HealthStatus struct {
	Component string                 `json:"component"`
	Status    string                 `json:"status"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// SystemHealthChecker runs every registered checker, keyed by component name
type SystemHealthChecker interface {
	CheckAll(ctx context.Context) map[string]HealthStatus
}
