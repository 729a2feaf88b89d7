package platform

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherhome.app/internal/mocks"
	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

func TestDevice(t *testing.T) {
	android := NewDevice("Android", 22)
	assert.Equal(t, ports.OSAndroid, android.OS())
	assert.Equal(t, 22, android.APILevel())

	ios := NewDevice("ios", 30)
	assert.Equal(t, ports.OSIOS, ios.OS())
	assert.Zero(t, ios.APILevel())
}

func TestHTTPReachability(t *testing.T) {
	const target = "https://clients3.google.com/generate_204"

	tests := []struct {
		name      string
		responder httpmock.Responder
		connected bool
	}{
		{"no content", httpmock.NewStringResponder(http.StatusNoContent, ""), true},
		{"redirect page", httpmock.NewStringResponder(http.StatusOK, "<html/>"), true},
		{"server error", httpmock.NewStringResponder(http.StatusBadGateway, ""), false},
		{"network down", httpmock.NewErrorResponder(stderrors.New("dial tcp: no route to host")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupHTTPMock(t)
			httpmock.RegisterResponder(http.MethodHead, target, tt.responder)

			r, err := NewHTTPReachability(HTTPReachabilityParams{
				Target:  target,
				Timeout: time.Second,
				Logger:  mocks.NewLogger(),
			})
			require.NoError(t, err)

			connected, err := r.IsConnected(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.connected, connected)
			assert.Equal(t, 1, httpmock.GetTotalCallCount())
		})
	}
}

func TestHTTPReachability_CancelledContext(t *testing.T) {
	r, err := NewHTTPReachability(HTTPReachabilityParams{Target: "https://example.com", Logger: mocks.NewLogger()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	connected, err := r.IsConnected(ctx)
	assert.False(t, connected)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewHTTPReachability_Validation(t *testing.T) {
	_, err := NewHTTPReachability(HTTPReachabilityParams{Logger: mocks.NewLogger()})
	assert.True(t, errors.IsConfigurationError(err))

	_, err = NewHTTPReachability(HTTPReachabilityParams{Target: "https://example.com"})
	assert.True(t, errors.IsValidationError(err))
}

func TestPolicyPermissionAPI(t *testing.T) {
	ctx := context.Background()

	t.Run("granted sticks after prompt", func(t *testing.T) {
		api, err := NewPolicyPermissionAPI("granted", mocks.NewLogger())
		require.NoError(t, err)

		granted, err := api.Check(ctx)
		require.NoError(t, err)
		assert.False(t, granted)

		result, err := api.Request(ctx)
		require.NoError(t, err)
		assert.Equal(t, ports.PermissionResultGranted, result)

		granted, _ = api.Check(ctx)
		assert.True(t, granted)
	})

	t.Run("never ask again on ios is a denial", func(t *testing.T) {
		api, err := NewPolicyPermissionAPI("never_ask_again", mocks.NewLogger())
		require.NoError(t, err)

		result, err := api.RequestAuthorization(ctx)
		require.NoError(t, err)
		assert.Equal(t, ports.PermissionResultDenied, result)

		result, _ = api.Request(ctx)
		assert.Equal(t, ports.PermissionResultNeverAskAgain, result)
	})

	t.Run("set policy revokes grant", func(t *testing.T) {
		api, err := NewPolicyPermissionAPI("granted", mocks.NewLogger())
		require.NoError(t, err)
		_, _ = api.Request(ctx)

		require.NoError(t, api.SetPolicy("denied"))
		granted, _ := api.Check(ctx)
		assert.False(t, granted)
		assert.Equal(t, "denied", api.Policy())
	})

	t.Run("unknown policy", func(t *testing.T) {
		_, err := NewPolicyPermissionAPI("maybe", mocks.NewLogger())
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestStaticPositionProvider(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	p := NewStaticPositionProvider(12.97, 77.59, mocks.NewClock(now))

	pos, err := p.CurrentPosition(context.Background(), ports.PositionRequest{})

	require.NoError(t, err)
	assert.Equal(t, 12.97, pos.Latitude)
	assert.Equal(t, 77.59, pos.Longitude)
	assert.Equal(t, now, pos.Timestamp)
}

func TestStaticPositionProvider_Deadline(t *testing.T) {
	p := NewStaticPositionProvider(0, 0, nil)
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := p.CurrentPosition(ctx, ports.PositionRequest{})
	assert.ErrorIs(t, err, ports.ErrPositionTimeout)
}

const geoIPURL = "http://ip-api.com/json"

func newGeoIP(t *testing.T, clock ports.Clock) *GeoIPPositionProvider {
	t.Helper()
	p, err := NewGeoIPPositionProvider(GeoIPPositionParams{URL: geoIPURL, Clock: clock, Logger: mocks.NewLogger()})
	require.NoError(t, err)
	return p
}

func TestGeoIPPositionProvider(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet, geoIPURL,
		httpmock.NewStringResponder(http.StatusOK, `{"status":"success","lat":18.52,"lon":73.86,"city":"Pune"}`))

	clock := mocks.NewClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	p := newGeoIP(t, clock)
	req := ports.PositionRequest{Timeout: time.Second, MaximumAge: 10 * time.Second}

	pos, err := p.CurrentPosition(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 18.52, pos.Latitude)
	assert.Equal(t, 73.86, pos.Longitude)

	clock.Advance(5 * time.Second)
	_, err = p.CurrentPosition(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount(), "fix younger than maximum age is reused")

	clock.Advance(6 * time.Second)
	_, err = p.CurrentPosition(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, httpmock.GetTotalCallCount())

	req.ForceRequestLocation = true
	_, err = p.CurrentPosition(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 3, httpmock.GetTotalCallCount())
}

func TestGeoIPPositionProvider_Failures(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
		want      error
	}{
		{"fail status", httpmock.NewStringResponder(http.StatusOK, `{"status":"fail","message":"private range"}`), ports.ErrPositionUnavailable},
		{"http error", httpmock.NewStringResponder(http.StatusServiceUnavailable, ""), ports.ErrPositionUnavailable},
		{"bad json", httpmock.NewStringResponder(http.StatusOK, `{`), ports.ErrPositionUnavailable},
		{"transport", httpmock.NewErrorResponder(stderrors.New("connection reset")), ports.ErrPositionUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupHTTPMock(t)
			httpmock.RegisterResponder(http.MethodGet, geoIPURL, tt.responder)

			_, err := newGeoIP(t, nil).CurrentPosition(context.Background(), ports.PositionRequest{Timeout: time.Second})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGeoIPPositionProvider_Timeout(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet, geoIPURL, func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})

	_, err := newGeoIP(t, nil).CurrentPosition(context.Background(), ports.PositionRequest{Timeout: 20 * time.Millisecond})
	assert.ErrorIs(t, err, ports.ErrPositionTimeout)
}

func TestRecordingNavigator(t *testing.T) {
	n := NewRecordingNavigator(mocks.NewLogger())
	_, ok := n.Last()
	assert.False(t, ok)

	n.Navigate("Details", map[string]interface{}{"weatherDetails": "Pune"})

	last, ok := n.Last()
	require.True(t, ok)
	assert.Equal(t, "Details", last.Screen)
	assert.Equal(t, "Pune", last.Params["weatherDetails"])
	assert.Len(t, n.History(), 1)
}
