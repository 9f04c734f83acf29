package motion

import "github.com/Faultbox/motioncore/pkg/math"

// Collision is one contact reported by the physics step.
type Collision struct {
	// Normal points from the collider toward the avatar.
	Normal math.Vec3
	// Collider is the object hit. It may implement Pushable.
	Collider any
}

// MoveResult is what the physics step reports after resolving a move.
type MoveResult struct {
	Velocity    math.Vec3
	OnFloor     bool
	FloorNormal math.Vec3
	Collisions  []Collision
}

// RayQuery is a segment intersection query. Exclude is skipped by the solver,
// normally the avatar's own body handle.
type RayQuery struct {
	From    math.Vec3
	To      math.Vec3
	Exclude any
}

// RayHit is the nearest intersection of a RayQuery.
type RayHit struct {
	Position math.Vec3
	Normal   math.Vec3
	Collider any
}

// Physics is the external move/collide solver.
type Physics interface {
	// MoveAndSlide moves the avatar body with the desired velocity over dt and
	// returns the authoritative outcome.
	MoveAndSlide(velocity math.Vec3, dt float32) MoveResult
	Position() math.Vec3
	SetPosition(p math.Vec3)
	IntersectRay(q RayQuery) (RayHit, bool)
	// Self is the avatar's own body handle, used as RayQuery.Exclude.
	Self() any
}

// Pushable is a dynamic body the avatar can shove.
type Pushable interface {
	ApplyCentralImpulse(impulse math.Vec3)
}

// Shape is the avatar's collision capsule.
type Shape interface {
	SetCollisionHeight(height float32)
	CollisionHeight() float32
}

// Mesh is the avatar's visual mesh.
type Mesh interface {
	SetMeshScale(scale math.Vec3)
}

// Snapshot is the per-tick view handed to observers after reconciliation.
type Snapshot struct {
	State     State
	Velocity  math.Vec3
	Direction math.Vec3
	Yaw       float32
	OnFloor   bool
	// Delta is the tick length in seconds; zero outside a tick.
	Delta float32
}

// TickObserver receives one snapshot per tick, after the state is final.
type TickObserver interface {
	ObserveTick(s Snapshot)
}

// TickObserverFunc adapts a function to TickObserver.
type TickObserverFunc func(s Snapshot)

func (f TickObserverFunc) ObserveTick(s Snapshot) { f(s) }

// Effect names a fire-and-forget presentation trigger.
type Effect string

const (
	EffectJump       Effect = "jump"
	EffectCrouchJump Effect = "crouch_jump"
	EffectLand       Effect = "land"
	EffectDash       Effect = "dash"
	EffectAttack     Effect = "attack"
	EffectLedgeGrab  Effect = "ledge_grab"
	EffectClimb      Effect = "climb"
)

// EffectPlayer plays presentation effects.
type EffectPlayer interface {
	PlayEffect(e Effect)
}

// ClipLengths reports animation clip durations in seconds. Abilities whose
// effect lasts as long as a clip ask this first and fall back to config.
type ClipLengths interface {
	ClipLength(s State) (float32, bool)
}

type nopEffects struct{}

func (nopEffects) PlayEffect(Effect) {}
