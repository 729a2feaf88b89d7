package platform

import (
	"sync"

	"weatherhome.app/internal/ports"
)

// Navigation is one recorded navigation request
type Navigation struct {
	Screen string                 `json:"screen"`
	Params map[string]interface{} `json:"params"`
}

// RecordingNavigator keeps navigation requests so the API can show where the
// screen went
type RecordingNavigator struct {
	mu      sync.Mutex
	history []Navigation
	logger  ports.Logger
}

func NewRecordingNavigator(logger ports.Logger) *RecordingNavigator {
	return &RecordingNavigator{logger: logger}
}

func (n *RecordingNavigator) Navigate(screen string, params map[string]interface{}) {
	n.mu.Lock()
	n.history = append(n.history, Navigation{Screen: screen, Params: params})
	n.mu.Unlock()

	n.logger.Info("Navigated", ports.F("screen", screen))
}

// Last returns the most recent navigation
func (n *RecordingNavigator) Last() (Navigation, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) == 0 {
		return Navigation{}, false
	}
	return n.history[len(n.history)-1], true
}

func (n *RecordingNavigator) History() []Navigation {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Navigation, len(n.history))
	copy(out, n.history)
	return out
}
