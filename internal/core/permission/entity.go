package permission

import "weatherhome.app/internal/ports"

// RuntimePermissionMinAPILevel is the first Android API level with runtime permission prompts
const RuntimePermissionMinAPILevel = 23

// State is the resolved fine-location permission state
type State int

const (
	StateUnknown State = iota
	StateGranted
	StateDenied
	StatePermanentlyDenied
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateGranted:
		return "granted"
	case StateDenied:
		return "denied"
	case StatePermanentlyDenied:
		return "permanently_denied"
	default:
		return "unknown"
	}
}

// Resolution is the typed outcome of one gate evaluation
type Resolution struct {
	State State
	// Prompted is true when the user was shown a permission dialog
	Prompted bool
	// Queried is false when the answer was derived without asking the OS
	Queried bool
}

// Granted reports whether location access is allowed
func (r Resolution) Granted() bool {
	return r.State == StateGranted
}

// NeedsSettings reports whether only the system settings screen can grant access
func (r Resolution) NeedsSettings() bool {
	return r.State == StatePermanentlyDenied
}

// StateFromResult classifies a raw platform answer
func StateFromResult(result ports.PermissionResult) State {
	switch result {
	case ports.PermissionResultGranted:
		return StateGranted
	case ports.PermissionResultNeverAskAgain:
		return StatePermanentlyDenied
	default:
		return StateDenied
	}
}
