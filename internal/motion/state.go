// Package motion implements the avatar motion core: the discrete action state
// machine, per-tick integration and the controller that drives abilities.
package motion

import "fmt"

// State is the avatar's discrete action state.
type State int

const (
	Idle State = iota
	Running
	Jumping
	Dashing
	Crouching
	Sliding
	LedgeGrabbing
	Attacking

	stateCount
)

var stateNames = [stateCount]string{
	Idle:          "idle",
	Running:       "running",
	Jumping:       "jumping",
	Dashing:       "dashing",
	Crouching:     "crouching",
	Sliding:       "sliding",
	LedgeGrabbing: "ledge_grabbing",
	Attacking:     "attacking",
}

// States lists every state in declaration order.
func States() []State {
	out := make([]State, 0, stateCount)
	for s := Idle; s < stateCount; s++ {
		out = append(out, s)
	}
	return out
}

// Valid reports whether s is one of the declared states.
func (s State) Valid() bool {
	return s >= Idle && s < stateCount
}

func (s State) String() string {
	if !s.Valid() {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid state %d", int(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	v, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseState converts a state name back to a State.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return Idle, fmt.Errorf("unknown state %q", name)
}

// Managed reports whether an ability owns entry and exit of s. Reconciliation
// never touches a managed state.
func (s State) Managed() bool {
	switch s {
	case Dashing, Attacking, LedgeGrabbing, Crouching, Sliding:
		return true
	}
	return false
}

// Grounded reports whether s is only reachable while standing on a floor.
func (s State) Grounded() bool {
	switch s {
	case Idle, Running, Crouching, Sliding:
		return true
	}
	return false
}
