package motion

import "github.com/Faultbox/motioncore/pkg/math"

// Context is the narrow view of the avatar an ability works through. It is
// the only way abilities touch motion state; they never hold each other.
type Context interface {
	Velocity() math.Vec3
	SetVelocity(v math.Vec3)
	// SetHorizontalVelocity replaces X and Z, keeping Y.
	SetHorizontalVelocity(h math.Vec3)
	SetVerticalVelocity(vy float32)

	// Direction is this tick's camera-relative input, zero when idle.
	Direction() math.Vec3
	Yaw() float32
	SetYaw(yaw float32)

	Position() math.Vec3
	SetPosition(p math.Vec3)

	State() State
	IsInState(s State) bool
	RequestTransition(s State)

	OnFloor() bool
	FloorNormal() math.Vec3
	// Gravity is the vertical acceleration for the current vertical velocity.
	Gravity() float32
	// RiseGravity is the acceleration acting on an avatar moving upward.
	RiseGravity() float32
	Facts() Facts

	CastRay(from, to math.Vec3) (RayHit, bool)
	PlayEffect(e Effect)
	ClipLength(s State) (float32, bool)
}

// Ability is one self-contained avatar ability.
type Ability interface {
	Name() string
	// HandleInput reacts to this tick's press/release edges.
	HandleInput(ctx Context, in Input)
	// Update advances timers and suspended continuations.
	Update(ctx Context, dt float32)
	// OnStateChanged observes every committed transition.
	OnStateChanged(ctx Context, next, prev State)
}

// Driver is an ability that owns velocity exclusively while the avatar is in
// one of its states.
type Driver interface {
	Drives(s State) bool
	Drive(ctx Context, dt float32)
}

// PostMover is an ability that must correct the physics result before
// reconciliation.
type PostMover interface {
	AfterMove(ctx Context)
}

// Exclusive reports whether default movement must stay off in s because an
// ability drives velocity there.
func (s State) Exclusive() bool {
	switch s {
	case Dashing, Sliding, LedgeGrabbing:
		return true
	}
	return false
}
