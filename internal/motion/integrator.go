package motion

import "github.com/Faultbox/motioncore/pkg/math"

// Tuning holds the default ground and air movement parameters.
type Tuning struct {
	MaxSpeed        float32
	Acceleration    float32
	AirAcceleration float32
	AirDrag         float32
	GroundFriction  float32
	GroundTurnRate  float32
	AirTurnRate     float32
	// CrouchSpeedModifier scales MaxSpeed while Crouching.
	CrouchSpeedModifier float32
	PushForce           float32
	// PushMaxNormalY is the largest |normal.Y| a contact may have and still
	// be pushed; anything steeper is something the avatar stands on.
	PushMaxNormalY float32
}

// DefaultTuning mirrors the stock avatar feel.
func DefaultTuning() Tuning {
	return Tuning{
		MaxSpeed:            10,
		Acceleration:        30,
		AirAcceleration:     10,
		AirDrag:             0.5,
		GroundFriction:      200,
		GroundTurnRate:      20,
		AirTurnRate:         10,
		CrouchSpeedModifier: 0.5,
		PushForce:           60,
		PushMaxNormalY:      0.5,
	}
}

// Integrator computes desired velocity and facing for one tick.
type Integrator struct {
	Tuning  Tuning
	Gravity GravityProfile
}

// ApplyGravity integrates vertical velocity for the state. Dashing pins
// vertical velocity to zero; LedgeGrabbing leaves it to the ledge ability.
func (g Integrator) ApplyGravity(v math.Vec3, s State, dt float32) math.Vec3 {
	switch s {
	case Dashing:
		return v.WithY(0)
	case LedgeGrabbing:
		return v
	}
	return v.WithY(v.Y + g.Gravity.At(v.Y)*dt)
}

// GroundMove accelerates toward dir*maxSpeed, or brakes toward zero with no
// input.
func (g Integrator) GroundMove(h, dir math.Vec3, maxSpeed, dt float32) math.Vec3 {
	if dir.IsZero() {
		return h.MoveToward(math.Vec3{}, g.Tuning.GroundFriction*dt)
	}
	return h.MoveToward(dir.Scale(maxSpeed), g.Tuning.Acceleration*dt)
}

// AirMove applies drag, then input acceleration.
func (g Integrator) AirMove(h, dir math.Vec3, dt float32) math.Vec3 {
	h = h.Sub(h.Scale(g.Tuning.AirDrag * dt))
	if !dir.IsZero() {
		h = h.Add(dir.Scale(g.Tuning.AirAcceleration * dt))
	}
	return h
}

// Face turns yaw toward dir at rate per second. A zero dir keeps the yaw.
func (g Integrator) Face(yaw float32, dir math.Vec3, rate, dt float32) float32 {
	if dir.IsZero() {
		return yaw
	}
	return math.LerpAngle(yaw, math.YawFromDirection(dir), rate*dt)
}

// MaxSpeedFor returns the ground speed cap in state s.
func (g Integrator) MaxSpeedFor(s State) float32 {
	if s == Crouching && g.Tuning.CrouchSpeedModifier > 0 {
		return g.Tuning.MaxSpeed * g.Tuning.CrouchSpeedModifier
	}
	return g.Tuning.MaxSpeed
}
