package status

import (
	"sync"

	"github.com/vietddude/ramp/internal/core/domain"
)

// Tracker follows one transfer. Once a terminal state is observed it
// never changes again.
type Tracker struct {
	mu    sync.Mutex
	state domain.OrderState
}

// NewTracker creates a tracker with no observed state.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Observe records s and returns the tracker's state afterwards. Unknown
// states are ignored.
func (t *Tracker) Observe(s domain.OrderState) domain.OrderState {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Terminal() || !s.Known() {
		return t.state
	}
	t.state = s
	return t.state
}

// State returns the current state, empty before the first observation.
func (t *Tracker) State() domain.OrderState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Done reports whether polling should stop.
func (t *Tracker) Done() bool {
	return t.State().Terminal()
}
