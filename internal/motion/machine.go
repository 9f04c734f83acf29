package motion

import (
	"go.uber.org/zap"

	"github.com/Faultbox/motioncore/internal/logger"
)

// StateObserver receives every committed transition.
type StateObserver func(next, prev State)

// Machine owns the single authoritative state of one avatar.
type Machine struct {
	current   State
	previous  State
	observers []StateObserver
}

// NewMachine creates a machine in the given state. Previous starts equal to it.
func NewMachine(initial State) *Machine {
	if !initial.Valid() {
		initial = Idle
	}
	return &Machine{current: initial, previous: initial}
}

// Current returns the active state.
func (m *Machine) Current() State {
	return m.current
}

// Previous returns the state active before the last transition.
func (m *Machine) Previous() State {
	return m.previous
}

// IsInState reports whether s is the active state.
func (m *Machine) IsInState(s State) bool {
	return m.current == s
}

// Subscribe appends an observer. Observers run in registration order.
func (m *Machine) Subscribe(fn StateObserver) {
	if fn == nil {
		return
	}
	m.observers = append(m.observers, fn)
}

// RequestTransition moves to next and notifies observers. Requesting the
// current state is a no-op; invalid states are ignored. The machine never
// vetoes a valid request.
func (m *Machine) RequestTransition(next State) {
	if next == m.current || !next.Valid() {
		return
	}
	prev := m.current
	m.previous = prev
	m.current = next

	logger.For(logger.CategoryState).Debug("state changed",
		zap.Stringer("from", prev),
		zap.Stringer("to", next),
	)

	for _, fn := range m.observers {
		fn(next, prev)
	}
}
