package infrastructure

import (
	"context"
	"sync"

	"weatherhome.app/internal/ports"
)

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	checkers       map[string]ports.HealthChecker
	configProvider ports.ConfigProvider
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	Checkers       map[string]ports.HealthChecker
	ConfigProvider ports.ConfigProvider
}

func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	checkers := make(map[string]ports.HealthChecker, len(config.Checkers))
	for name, checker := range config.Checkers {
		if checker != nil {
			checkers[name] = checker
		}
	}
	return &SystemHealthChecker{
		checkers:       checkers,
		configProvider: config.ConfigProvider,
	}
}

// CheckAll runs every checker concurrently
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers)+1)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for name, checker := range s.checkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status := checker.Check(ctx)
			mu.Lock()
			results[name] = status
			mu.Unlock()
		}()
	}
	wg.Wait()

	if s.configProvider != nil {
		platform := s.configProvider.GetPlatformConfig()
		notification := s.configProvider.GetNotificationConfig()
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    statusHealthy,
			Details: map[string]interface{}{
				"os":                platform.OS,
				"apiLevel":          platform.APILevel,
				"notificationMode":  notification.Mode,
				"notificationDelay": notification.Delay.String(),
			},
		}
	}

	return results
}

// Healthy reports whether no component is unhealthy
func Healthy(results map[string]ports.HealthStatus) bool {
	for _, status := range results {
		if status.Status == statusUnhealthy {
			return false
		}
	}
	return true
}
