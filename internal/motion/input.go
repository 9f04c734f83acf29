package motion

import (
	"fmt"

	"github.com/Faultbox/motioncore/pkg/math"
)

// Action is a bindable input action.
type Action uint8

const (
	ActionJump Action = iota
	ActionDash
	ActionCrouch
	ActionAttack
	ActionMoveLeft
	ActionMoveRight
	ActionMoveForward
	ActionMoveBackward

	actionCount
)

var actionNames = [actionCount]string{
	ActionJump:         "jump",
	ActionDash:         "dash",
	ActionCrouch:       "crouch",
	ActionAttack:       "attack",
	ActionMoveLeft:     "move_left",
	ActionMoveRight:    "move_right",
	ActionMoveForward:  "move_forward",
	ActionMoveBackward: "move_backward",
}

// Actions lists every action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, actionCount)
	for a := ActionJump; a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

func (a Action) String() string {
	if a >= actionCount {
		return fmt.Sprintf("action(%d)", a)
	}
	return actionNames[a]
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	if a >= actionCount {
		return nil, fmt.Errorf("invalid action %d", a)
	}
	return []byte(actionNames[a]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	for i, n := range actionNames {
		if n == string(text) {
			*a = Action(i)
			return nil
		}
	}
	return fmt.Errorf("unknown action %q", text)
}

// Input is what the controller reads from the input collaborator each tick.
// Press and release are edges: true for exactly one tick per physical press.
type Input interface {
	JustPressed(a Action) bool
	JustReleased(a Action) bool
	Held(a Action) bool
	// Move is the camera-relative horizontal movement vector, normalized or zero.
	Move() math.Vec3
}

type actionSet uint16

func (s actionSet) has(a Action) bool { return s&(1<<a) != 0 }
func (s *actionSet) set(a Action)     { *s |= 1 << a }

// InputFrame is an immutable snapshot of one tick of input.
type InputFrame struct {
	pressed  actionSet
	released actionSet
	held     actionSet
	move     math.Vec3
}

// NewInputFrame builds a frame from a move vector; use the With* methods to
// add edges.
func NewInputFrame(move math.Vec3) InputFrame {
	return InputFrame{move: move.Horizontal().Normalize()}
}

// WithPress returns a copy with a press edge for a (which also marks it held).
func (f InputFrame) WithPress(actions ...Action) InputFrame {
	for _, a := range actions {
		f.pressed.set(a)
		f.held.set(a)
	}
	return f
}

// WithRelease returns a copy with a release edge for a.
func (f InputFrame) WithRelease(actions ...Action) InputFrame {
	for _, a := range actions {
		f.released.set(a)
		f.held &^= 1 << a
	}
	return f
}

// WithHeld returns a copy with a marked as held and no edge.
func (f InputFrame) WithHeld(actions ...Action) InputFrame {
	for _, a := range actions {
		f.held.set(a)
	}
	return f
}

// WithMove returns a copy of f with a different movement vector.
func (f InputFrame) WithMove(move math.Vec3) InputFrame {
	f.move = move.Horizontal().Normalize()
	return f
}

func (f InputFrame) JustPressed(a Action) bool  { return f.pressed.has(a) }
func (f InputFrame) JustReleased(a Action) bool { return f.released.has(a) }
func (f InputFrame) Held(a Action) bool         { return f.held.has(a) }
func (f InputFrame) Move() math.Vec3            { return f.move }

// ActionLatch turns level input (what is held right now) into per-tick
// frames with press and release edges.
type ActionLatch struct {
	prev actionSet
	cur  actionSet
}

// Set records whether a is held for the tick being built.
func (l *ActionLatch) Set(a Action, down bool) {
	if a >= actionCount {
		return
	}
	if down {
		l.cur.set(a)
	} else {
		l.cur &^= 1 << a
	}
}

// Frame emits the frame for this tick and arms edge detection for the next.
func (l *ActionLatch) Frame(move math.Vec3) InputFrame {
	f := NewInputFrame(move)
	f.held = l.cur
	f.pressed = l.cur &^ l.prev
	f.released = l.prev &^ l.cur
	l.prev = l.cur
	return f
}

// RawMove builds a planar input vector from the four movement actions held in
// f: X is right, Y is backward, as a stick would report.
func RawMove(f Input) math.Vec2 {
	var v math.Vec2
	if f.Held(ActionMoveRight) {
		v.X++
	}
	if f.Held(ActionMoveLeft) {
		v.X--
	}
	if f.Held(ActionMoveBackward) {
		v.Y++
	}
	if f.Held(ActionMoveForward) {
		v.Y--
	}
	return v
}
