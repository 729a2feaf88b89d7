package connectivity

import (
	"context"
	"sync"

	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

type UseCase struct {
	reachability ports.NetworkReachability
	logger       ports.Logger
	metrics      ports.MetricsCollector

	mu     sync.RWMutex
	last   State
	probed bool
}

type UseCaseDependencies struct {
	Reachability ports.NetworkReachability
	Logger       ports.Logger
	Metrics      ports.MetricsCollector
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Reachability == nil {
		return nil, errors.NewValidationError("network reachability is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &UseCase{
		reachability: deps.Reachability,
		logger:       deps.Logger,
		metrics:      deps.Metrics,
		last:         StateDisconnected,
	}, nil
}

// Check runs a single reachability query. A failed query is reported as
// StateDisconnected together with a ConnectivityUnavailable error.
func (uc *UseCase) Check(ctx context.Context) (State, error) {
	connected, err := uc.reachability.IsConnected(ctx)

	state := StateDisconnected
	var result error
	switch {
	case err != nil:
		result = errors.NewConnectivityError("reachability query failed", err)
		uc.logger.Warn("Connectivity probe failed", ports.F("error", err))
	case connected:
		state = StateConnected
	default:
		result = errors.NewConnectivityError("network is not reachable", nil)
	}

	uc.mu.Lock()
	uc.last = state
	uc.probed = true
	uc.mu.Unlock()

	uc.metrics.RecordConnectivity(ctx, state.String())
	uc.logger.Debug("Connectivity probe finished", ports.F("state", state.String()))

	return state, result
}

// Last returns the conclusion of the most recent probe and whether one has run
func (uc *UseCase) Last() (State, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.last, uc.probed
}
