// Package input turns SDL2 events into avatar input frames.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/motioncore/internal/motion"
	"github.com/Faultbox/motioncore/pkg/math"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	RelX   int
	RelY   int
	Wheel  int
	Button uint8
}

// Bindings maps keys and mouse buttons to avatar actions.
type Bindings struct {
	Keys    map[sdl.Scancode]motion.Action
	Buttons map[uint8]motion.Action
}

// DefaultBindings is WASD movement with space, shift, ctrl and the left
// mouse button.
func DefaultBindings() Bindings {
	return Bindings{
		Keys: map[sdl.Scancode]motion.Action{
			sdl.SCANCODE_W:      motion.ActionMoveForward,
			sdl.SCANCODE_S:      motion.ActionMoveBackward,
			sdl.SCANCODE_A:      motion.ActionMoveLeft,
			sdl.SCANCODE_D:      motion.ActionMoveRight,
			sdl.SCANCODE_SPACE:  motion.ActionJump,
			sdl.SCANCODE_LSHIFT: motion.ActionDash,
			sdl.SCANCODE_LCTRL:  motion.ActionCrouch,
			sdl.SCANCODE_C:      motion.ActionCrouch,
		},
		Buttons: map[uint8]motion.Action{
			sdl.BUTTON_LEFT: motion.ActionAttack,
		},
	}
}

// Input handles all input processing.
type Input struct {
	bindings Bindings
	events   []Event
	keys     map[sdl.Scancode]bool
	buttons  map[uint8]bool
	latch    motion.ActionLatch

	mouseDX, mouseDY int
	wheel            int
}

// New creates a new input handler.
func New(bindings Bindings) *Input {
	return &Input{
		bindings: bindings,
		events:   make([]Event, 0, 16),
		keys:     make(map[sdl.Scancode]bool),
		buttons:  make(map[uint8]bool),
	}
}

// Update polls SDL events and converts them to game events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events
	i.mouseDX, i.mouseDY, i.wheel = 0, 0, 0

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.handle(Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.handle(Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				i.handle(Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
			} else if e.Type == sdl.KEYUP {
				i.handle(Event{Type: EventKeyUp, Key: e.Keysym.Scancode})
			}

		case *sdl.MouseMotionEvent:
			i.handle(Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				RelX:   int(e.XRel),
				RelY:   int(e.YRel),
			})

		case *sdl.MouseButtonEvent:
			typ := EventMouseUp
			if e.Type == sdl.MOUSEBUTTONDOWN {
				typ = EventMouseDown
			}
			i.handle(Event{
				Type:   typ,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			})

		case *sdl.MouseWheelEvent:
			i.handle(Event{Type: EventMouseWheel, Wheel: int(e.Y)})
		}
	}

	return false
}

func (i *Input) handle(e Event) {
	i.events = append(i.events, e)
	switch e.Type {
	case EventKeyDown:
		i.keys[e.Key] = true
	case EventKeyUp:
		delete(i.keys, e.Key)
	case EventMouseDown:
		i.buttons[e.Button] = true
	case EventMouseUp:
		delete(i.buttons, e.Button)
	case EventMouseMove:
		i.mouseDX += e.RelX
		i.mouseDY += e.RelY
	case EventMouseWheel:
		i.wheel += e.Wheel
	}
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// MouseDelta is the relative mouse motion since the last Update.
func (i *Input) MouseDelta() (dx, dy int) { return i.mouseDX, i.mouseDY }

// Wheel is the scroll since the last Update, positive away from the user.
func (i *Input) Wheel() int { return i.wheel }

// Frame builds this tick's avatar input. relative maps the raw movement
// stick into world space, usually the camera's Relative.
func (i *Input) Frame(relative func(math.Vec2) math.Vec3) motion.InputFrame {
	held := make(map[motion.Action]bool)
	for key := range i.keys {
		if a, ok := i.bindings.Keys[key]; ok {
			held[a] = true
		}
	}
	for button := range i.buttons {
		if a, ok := i.bindings.Buttons[button]; ok {
			held[a] = true
		}
	}
	for _, a := range motion.Actions() {
		i.latch.Set(a, held[a])
	}

	f := i.latch.Frame(math.Vec3{})
	if relative != nil {
		f = f.WithMove(relative(motion.RawMove(f)))
	}
	return f
}
