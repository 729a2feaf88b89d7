package location

import (
	"time"

	"weatherhome.app/internal/ports"
)

// Default single-fix request settings
const (
	DefaultTimeout    = 15 * time.Second
	DefaultMaximumAge = 10 * time.Second
)

// PositionFix is a single resolved reading
type PositionFix struct {
	Latitude   float64
	Longitude  float64
	CapturedAt time.Time
}

// Accuracy holds the per-platform accuracy level; both mean "prefer precision"
type Accuracy struct {
	Android string
	IOS     string
}

// Options configures one position request. It is passed explicitly on every call.
type Options struct {
	Accuracy             Accuracy
	EnableHighAccuracy   bool
	Timeout              time.Duration
	MaximumAge           time.Duration
	DistanceFilter       float64
	ForceRequestLocation bool
	ShowLocationDialog   bool
}

// DefaultOptions returns the standard single-fix configuration
func DefaultOptions() Options {
	return Options{
		Accuracy:   Accuracy{Android: "high", IOS: "best"},
		Timeout:    DefaultTimeout,
		MaximumAge: DefaultMaximumAge,
	}
}

// Request builds the platform request for the given OS
func (o Options) Request(os string) ports.PositionRequest {
	accuracy := o.Accuracy.Android
	if os == ports.OSIOS {
		accuracy = o.Accuracy.IOS
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return ports.PositionRequest{
		Accuracy:             accuracy,
		EnableHighAccuracy:   o.EnableHighAccuracy,
		Timeout:              timeout,
		MaximumAge:           o.MaximumAge,
		DistanceFilter:       o.DistanceFilter,
		ForceRequestLocation: o.ForceRequestLocation,
		ShowLocationDialog:   o.ShowLocationDialog,
	}
}

// Status describes how a GetLocation call ended
type Status int

const (
	StatusSkipped Status = iota
	StatusFetched
	StatusFailed
	StatusCancelled
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusFetched:
		return "fetched"
	case StatusFailed:
		return "failed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "skipped"
	}
}

// Outcome is the result of one GetLocation call
type Outcome struct {
	Status Status
	Fix    *PositionFix
}

// LoadingFunc observes the loading flag of a request
type LoadingFunc func(loading bool)
