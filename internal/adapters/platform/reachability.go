package platform

import (
	"context"
	"io"
	"net/http"
	"time"

	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

const defaultReachabilityTimeout = 3 * time.Second

// HTTPReachability answers connectivity queries with a single HEAD request
// against a well-known endpoint
type HTTPReachability struct {
	target  string
	timeout time.Duration
	client  *http.Client
	logger  ports.Logger
}

type HTTPReachabilityParams struct {
	Target  string
	Timeout time.Duration
	Client  *http.Client
	Logger  ports.Logger
}

func NewHTTPReachability(params HTTPReachabilityParams) (*HTTPReachability, error) {
	if params.Target == "" {
		return nil, errors.NewConfigurationError("reachability target is required", nil)
	}
	if params.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if params.Timeout <= 0 {
		params.Timeout = defaultReachabilityTimeout
	}
	if params.Client == nil {
		params.Client = &http.Client{}
	}

	return &HTTPReachability{
		target:  params.Target,
		timeout: params.Timeout,
		client:  params.Client,
		logger:  params.Logger,
	}, nil
}

// IsConnected reports false without error when the target cannot be reached.
// An error means the query itself could not be made.
func (r *HTTPReachability) IsConnected(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, r.target, nil)
	if err != nil {
		return false, errors.NewConnectivityError("failed to build reachability request", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Debug("Reachability target not reachable",
			ports.F("target", r.target),
			ports.F("error", err))
		return false, nil
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	connected := resp.StatusCode < http.StatusInternalServerError
	r.logger.Debug("Reachability probe completed",
		ports.F("target", r.target),
		ports.F("status", resp.StatusCode),
		ports.F("connected", connected))
	return connected, nil
}
