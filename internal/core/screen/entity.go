package screen

import (
	"weatherhome.app/internal/core/weather"
)

// State is the home screen orchestration state
type State int

const (
	StateInitializing State = iota
	StateConnectedLoading
	StateConnectedLoaded
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnectedLoading:
		return "connected_loading"
	case StateConnectedLoaded:
		return "connected_loaded"
	case StateDisconnected:
		return "disconnected"
	default:
		return "initializing"
	}
}

// Navigation target for a selected list entry
const (
	DetailsScreen = "Details"
	DetailsParam  = "weatherDetails"
)

// No-connection view copy
const (
	NoConnectionTitle   = "Whoops"
	NoConnectionMessage = "Slow or no internet connection please check your internet"
	RetryLabel          = "Retry"
)

// View is a point-in-time snapshot of what the screen displays
type View struct {
	State           string                    `json:"state"`
	Connectivity    string                    `json:"connectivity"`
	Loading         bool                      `json:"loading"`
	Items           []weather.ListItem        `json:"items"`
	Current         []weather.CurrentSnapshot `json:"current"`
	ShowRetry       bool                      `json:"show_retry"`
	RetryLabel      string                    `json:"retry_label,omitempty"`
	Title           string                    `json:"title,omitempty"`
	Message         string                    `json:"message,omitempty"`
	PermissionState string                    `json:"permission_state"`
	SettingsHint    bool                      `json:"settings_hint"`
}
