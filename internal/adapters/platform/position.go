package platform

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

// fixCache returns a previous fix while it is younger than the request's MaximumAge
type fixCache struct {
	mu   sync.Mutex
	last *ports.Position
}

func (c *fixCache) fresh(req ports.PositionRequest, now time.Time) (ports.Position, bool) {
	if req.ForceRequestLocation || req.MaximumAge <= 0 {
		return ports.Position{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil || now.Sub(c.last.Timestamp) > req.MaximumAge {
		return ports.Position{}, false
	}
	return *c.last, true
}

func (c *fixCache) store(pos ports.Position) {
	c.mu.Lock()
	c.last = &pos
	c.mu.Unlock()
}

// StaticPositionProvider reports configured coordinates
type StaticPositionProvider struct {
	latitude  float64
	longitude float64
	clock     ports.Clock
}

func NewStaticPositionProvider(latitude, longitude float64, clock ports.Clock) *StaticPositionProvider {
	if clock == nil {
		clock = SystemClock{}
	}
	return &StaticPositionProvider{latitude: latitude, longitude: longitude, clock: clock}
}

func (p *StaticPositionProvider) CurrentPosition(ctx context.Context, _ ports.PositionRequest) (ports.Position, error) {
	if err := ctx.Err(); err != nil {
		return ports.Position{}, classifyContextError(err)
	}
	return ports.Position{
		Latitude:  p.latitude,
		Longitude: p.longitude,
		Timestamp: p.clock.Now(),
	}, nil
}

// GeoIPPositionProvider resolves an approximate position from an
// ip-api.com compatible endpoint
type GeoIPPositionProvider struct {
	url    string
	client *http.Client
	clock  ports.Clock
	logger ports.Logger
	cache  fixCache
}

type GeoIPPositionParams struct {
	URL    string
	Client *http.Client
	Clock  ports.Clock
	Logger ports.Logger
}

type geoIPResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
}

func NewGeoIPPositionProvider(params GeoIPPositionParams) (*GeoIPPositionProvider, error) {
	if params.URL == "" {
		return nil, errors.NewConfigurationError("geoip URL is required", nil)
	}
	if params.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if params.Client == nil {
		params.Client = &http.Client{}
	}
	if params.Clock == nil {
		params.Clock = SystemClock{}
	}

	return &GeoIPPositionProvider{
		url:    params.URL,
		client: params.Client,
		clock:  params.Clock,
		logger: params.Logger,
	}, nil
}

func (p *GeoIPPositionProvider) CurrentPosition(ctx context.Context, req ports.PositionRequest) (ports.Position, error) {
	if pos, ok := p.cache.fresh(req, p.clock.Now()); ok {
		p.logger.Debug("Using cached position fix", ports.F("age", p.clock.Now().Sub(pos.Timestamp).String()))
		return pos, nil
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return ports.Position{}, fmt.Errorf("%w: %v", ports.ErrPositionUnavailable, err)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ports.Position{}, classifyContextError(ctxErr)
		}
		return ports.Position{}, fmt.Errorf("%w: %v", ports.ErrPositionUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return ports.Position{}, fmt.Errorf("%w: geoip status %d", ports.ErrPositionUnavailable, resp.StatusCode)
	}

	var body geoIPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.Position{}, fmt.Errorf("%w: decode geoip response: %v", ports.ErrPositionUnavailable, err)
	}
	if body.Status != "" && body.Status != "success" {
		return ports.Position{}, fmt.Errorf("%w: %s", ports.ErrPositionUnavailable, body.Message)
	}

	pos := ports.Position{
		Latitude:  body.Lat,
		Longitude: body.Lon,
		Timestamp: p.clock.Now(),
	}
	p.cache.store(pos)

	p.logger.Debug("Resolved position from geoip",
		ports.F("city", body.City),
		ports.F("latitude", pos.Latitude),
		ports.F("longitude", pos.Longitude))
	return pos, nil
}

func classifyContextError(err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ports.ErrPositionTimeout, err)
	}
	return err
}
