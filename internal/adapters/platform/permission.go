package platform

import (
	"context"
	"sync"

	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

// PolicyPermissionAPI answers permission queries from a configured policy.
// The policy plays the part of the user answering the runtime prompt.
type PolicyPermissionAPI struct {
	mu      sync.RWMutex
	policy  ports.PermissionResult
	granted bool
	logger  ports.Logger
}

func NewPolicyPermissionAPI(policy string, logger ports.Logger) (*PolicyPermissionAPI, error) {
	p := &PolicyPermissionAPI{logger: logger}
	if err := p.SetPolicy(policy); err != nil {
		return nil, err
	}
	return p, nil
}

// SetPolicy changes how the next prompt is answered and resets any earlier grant
func (p *PolicyPermissionAPI) SetPolicy(policy string) error {
	result := ports.PermissionResult(policy)
	switch result {
	case ports.PermissionResultGranted, ports.PermissionResultDenied, ports.PermissionResultNeverAskAgain:
	default:
		return errors.NewValidationError("unknown permission policy: " + policy)
	}

	p.mu.Lock()
	p.policy = result
	p.granted = false
	p.mu.Unlock()
	return nil
}

func (p *PolicyPermissionAPI) Policy() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return string(p.policy)
}

// Check reports a grant only after a prompt has been answered with granted
func (p *PolicyPermissionAPI) Check(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.granted, nil
}

func (p *PolicyPermissionAPI) Request(ctx context.Context) (ports.PermissionResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.PermissionResultDenied, err
	}

	p.mu.Lock()
	result := p.policy
	p.granted = result == ports.PermissionResultGranted
	p.mu.Unlock()

	p.logger.Info("Location permission prompt answered", ports.F("result", string(result)))
	return result, nil
}

// RequestAuthorization has no "never ask again" answer on iOS
func (p *PolicyPermissionAPI) RequestAuthorization(ctx context.Context) (ports.PermissionResult, error) {
	result, err := p.Request(ctx)
	if err != nil {
		return result, err
	}
	if result == ports.PermissionResultNeverAskAgain {
		return ports.PermissionResultDenied, nil
	}
	return result, nil
}
