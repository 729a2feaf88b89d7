package ports

import (
	"context"
	"errors"
	"time"
)

// Operating systems a screen can run on
const (
	OSAndroid = "android"
	OSIOS     = "ios"
)

// PermissionResult is the raw answer of a platform permission request
type PermissionResult string

const (
	PermissionResultGranted       PermissionResult = "granted"
	PermissionResultDenied        PermissionResult = "denied"
	PermissionResultNeverAskAgain PermissionResult = "never_ask_again"
)

// Sentinel errors a PositionProvider returns so the fetcher can classify failures
var (
	ErrPositionTimeout          = errors.New("position request timed out")
	ErrPositionUnavailable      = errors.New("position unavailable")
	ErrPositionPermissionDenied = errors.New("location permission revoked")
)

// PlatformInfo describes the device the screen runs on
type PlatformInfo interface {
	OS() string
	APILevel() int
}

// NetworkReachability performs a one-shot reachability query
type NetworkReachability interface {
	IsConnected(ctx context.Context) (bool, error)
}

// LocationPermissionAPI is the platform runtime permission service for fine location
type LocationPermissionAPI interface {
	// Check returns the current grant state without prompting (Android)
	Check(ctx context.Context) (bool, error)
	// Request prompts the user (Android)
	Request(ctx context.Context) (PermissionResult, error)
	// RequestAuthorization performs the single iOS authorization query
	RequestAuthorization(ctx context.Context) (PermissionResult, error)
}

// PositionRequest mirrors the options of a single-shot geolocation call
type PositionRequest struct {
	Accuracy             string
	EnableHighAccuracy   bool
	Timeout              time.Duration
	MaximumAge           time.Duration
	DistanceFilter       float64
	ForceRequestLocation bool
	ShowLocationDialog   bool
}

// Position is a raw platform position reading
type Position struct {
	Latitude  float64
	Longitude float64
	Timestamp time.Time
}

// PositionProvider resolves a single current position
type PositionProvider interface {
	CurrentPosition(ctx context.Context, req PositionRequest) (Position, error)
}

// Navigator is the navigation handle of the screen
type Navigator interface {
	Navigate(screen string, params map[string]interface{})
}

// Clock abstracts wall time for scheduling
type Clock interface {
	Now() time.Time
}
