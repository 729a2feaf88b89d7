package connectivity

// State is the outcome of a reachability probe
type State int

const (
	StateConnected State = iota
	StateDisconnected
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// IsConnected reports whether the network was reachable
func (s State) IsConnected() bool {
	return s == StateConnected
}
