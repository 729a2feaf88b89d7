package permission

import (
	"context"
	"fmt"
	"sync"

	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

type UseCase struct {
	platform    ports.PlatformInfo
	permissions ports.LocationPermissionAPI
	logger      ports.Logger
	metrics     ports.MetricsCollector

	mu       sync.RWMutex
	last     Resolution
	resolved bool
}

type UseCaseDependencies struct {
	Platform    ports.PlatformInfo
	Permissions ports.LocationPermissionAPI
	Logger      ports.Logger
	Metrics     ports.MetricsCollector
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Platform == nil {
		return nil, errors.NewValidationError("platform info is required")
	}
	if deps.Permissions == nil {
		return nil, errors.NewValidationError("permission api is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &UseCase{
		platform:    deps.Platform,
		permissions: deps.Permissions,
		logger:      deps.Logger,
		metrics:     deps.Metrics,
	}, nil
}

// Resolve evaluates the fine-location permission for the current platform.
// Platform failures resolve to StateDenied and are returned as a PermissionDenied error.
func (uc *UseCase) Resolve(ctx context.Context) (Resolution, error) {
	var (
		res Resolution
		err error
	)

	if uc.platform.OS() == ports.OSIOS {
		res, err = uc.resolveIOS(ctx)
	} else {
		res, err = uc.resolveAndroid(ctx)
	}

	if err != nil {
		res.State = StateDenied
		err = errors.NewPermissionDeniedError("location permission query failed", err)
		uc.logger.Warn("Location permission query failed",
			ports.F("os", uc.platform.OS()),
			ports.F("error", err))
	}

	uc.mu.Lock()
	uc.last, uc.resolved = res, true
	uc.mu.Unlock()

	uc.logResolution(res)
	uc.metrics.RecordPermission(ctx, res.State.String())
	return res, err
}

// Last returns the most recent resolution and whether Resolve has run
func (uc *UseCase) Last() (Resolution, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.last, uc.resolved
}

// HasLocationPermission collapses Resolve into a boolean; any failure means no access
func (uc *UseCase) HasLocationPermission(ctx context.Context) bool {
	res, err := uc.Resolve(ctx)
	if err != nil {
		return false
	}
	return res.Granted()
}

func (uc *UseCase) resolveIOS(ctx context.Context) (Resolution, error) {
	result, err := uc.permissions.RequestAuthorization(ctx)
	if err != nil {
		return Resolution{}, fmt.Errorf("request ios authorization: %w", err)
	}

	state := StateDenied
	if result == ports.PermissionResultGranted {
		state = StateGranted
	}
	return Resolution{State: state, Queried: true}, nil
}

func (uc *UseCase) resolveAndroid(ctx context.Context) (Resolution, error) {
	if uc.platform.OS() == ports.OSAndroid && uc.platform.APILevel() < RuntimePermissionMinAPILevel {
		return Resolution{State: StateGranted}, nil
	}

	granted, err := uc.permissions.Check(ctx)
	if err != nil {
		return Resolution{}, fmt.Errorf("check location permission: %w", err)
	}
	if granted {
		return Resolution{State: StateGranted, Queried: true}, nil
	}

	result, err := uc.permissions.Request(ctx)
	if err != nil {
		return Resolution{}, fmt.Errorf("request location permission: %w", err)
	}

	return Resolution{State: StateFromResult(result), Queried: true, Prompted: true}, nil
}

func (uc *UseCase) logResolution(res Resolution) {
	switch res.State {
	case StateGranted:
		uc.logger.Debug("Location permission granted",
			ports.F("prompted", res.Prompted),
			ports.F("queried", res.Queried))
	case StatePermanentlyDenied:
		uc.logger.Warn("Location permission permanently denied",
			ports.F("error", errors.NewPermissionPermanentlyDeniedError("user selected never ask again")))
	default:
		uc.logger.Info("Location permission denied", ports.F("prompted", res.Prompted))
	}
}
