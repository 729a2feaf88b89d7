package location

import (
	"context"
	stderrors "errors"

	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

// PermissionChecker answers whether fine location may be used
type PermissionChecker interface {
	HasLocationPermission(ctx context.Context) bool
}

type UseCase struct {
	permission PermissionChecker
	positions  ports.PositionProvider
	trigger    ports.WeatherTrigger
	platform   ports.PlatformInfo
	logger     ports.Logger
	metrics    ports.MetricsCollector
}

type UseCaseDependencies struct {
	Permission PermissionChecker
	Positions  ports.PositionProvider
	Trigger    ports.WeatherTrigger
	Platform   ports.PlatformInfo
	Logger     ports.Logger
	Metrics    ports.MetricsCollector
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Permission == nil {
		return nil, errors.NewValidationError("permission checker is required")
	}
	if deps.Positions == nil {
		return nil, errors.NewValidationError("position provider is required")
	}
	if deps.Trigger == nil {
		return nil, errors.NewValidationError("weather trigger is required")
	}
	if deps.Platform == nil {
		return nil, errors.NewValidationError("platform info is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &UseCase{
		permission: deps.Permission,
		positions:  deps.Positions,
		trigger:    deps.Trigger,
		platform:   deps.Platform,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
	}, nil
}

// GetLocation requests exactly one position fix and hands its coordinates to the
// current-location weather trigger. Missing permission is a silent skip. Fix
// failures are returned for bookkeeping only and are never retried.
func (uc *UseCase) GetLocation(ctx context.Context, opts Options, onLoading LoadingFunc) (Outcome, error) {
	if onLoading == nil {
		onLoading = func(bool) {}
	}

	if !uc.permission.HasLocationPermission(ctx) {
		uc.logger.Debug("Location permission not granted, skipping position fix")
		uc.metrics.RecordLocation(ctx, StatusSkipped.String())
		return Outcome{Status: StatusSkipped}, nil
	}
	if ctx.Err() != nil {
		return uc.cancelled(ctx), nil
	}

	req := opts.Request(uc.platform.OS())

	onLoading(true)
	fixCtx, cancel := context.WithTimeout(ctx, req.Timeout)
	position, err := uc.positions.CurrentPosition(fixCtx, req)
	cancel()
	onLoading(false)

	if ctx.Err() != nil {
		return uc.cancelled(ctx), nil
	}

	if err != nil {
		classified := classifyFailure(err)
		uc.logger.Warn("Position fix failed",
			ports.F("error", classified),
			ports.F("timeout", req.Timeout))
		uc.metrics.RecordLocation(ctx, StatusFailed.String())
		return Outcome{Status: StatusFailed}, classified
	}

	fix := &PositionFix{
		Latitude:   position.Latitude,
		Longitude:  position.Longitude,
		CapturedAt: position.Timestamp,
	}

	uc.logger.Debug("Position fix acquired",
		ports.F("latitude", fix.Latitude),
		ports.F("longitude", fix.Longitude))
	uc.metrics.RecordLocation(ctx, StatusFetched.String())

	uc.trigger.RefreshCurrentLocationWeather(ctx, fix.Latitude, fix.Longitude)

	return Outcome{Status: StatusFetched, Fix: fix}, nil
}

func (uc *UseCase) cancelled(ctx context.Context) Outcome {
	uc.logger.Debug("Location request cancelled")
	uc.metrics.RecordLocation(ctx, StatusCancelled.String())
	return Outcome{Status: StatusCancelled}
}

func classifyFailure(err error) error {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(err, ports.ErrPositionTimeout):
		return errors.NewLocationTimeoutError("position request timed out", err)
	case stderrors.Is(err, ports.ErrPositionPermissionDenied):
		return errors.NewPermissionDeniedError("location permission revoked during request", err)
	default:
		return errors.NewLocationHardwareError("position unavailable", err)
	}
}
