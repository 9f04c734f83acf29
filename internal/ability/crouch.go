package ability

import (
	"go.uber.org/zap"

	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/internal/logger"
	"github.com/Faultbox/motioncore/internal/motion"
	"github.com/Faultbox/motioncore/pkg/math"
)

// Crouch runs the standing, crouching and sliding sub-states. The collision
// height and mesh scale follow the state on every transition, whoever
// causes it.
type Crouch struct {
	cfg   config.CrouchConfig
	shape motion.Shape
	mesh  motion.Mesh

	disabled  bool
	turnLeft  bool
	turnRight bool
}

// NewCrouch creates the crouch ability. Without a shape and mesh it logs the
// problem and stays inert.
func NewCrouch(cfg config.CrouchConfig, shape motion.Shape, mesh motion.Mesh) *Crouch {
	c := &Crouch{cfg: cfg, shape: shape, mesh: mesh}
	if shape == nil || mesh == nil {
		logger.Error("crouch disabled: collision shape or mesh missing",
			zap.Bool("shape", shape != nil),
			zap.Bool("mesh", mesh != nil),
		)
		c.disabled = true
		return c
	}
	c.applyShape(false)
	return c
}

func (c *Crouch) Name() string { return "crouch" }

// Disabled reports whether the ability was built without its collaborators.
func (c *Crouch) Disabled() bool { return c.disabled }

func crouched(s motion.State) bool {
	return s == motion.Crouching || s == motion.Sliding
}

func (c *Crouch) HandleInput(ctx motion.Context, in motion.Input) {
	// Crouch is the release action while hanging.
	if c.disabled || ctx.IsInState(motion.LedgeGrabbing) {
		return
	}

	c.turnLeft = in.Held(motion.ActionMoveLeft)
	c.turnRight = in.Held(motion.ActionMoveRight)

	switch {
	case in.JustPressed(motion.ActionCrouch):
		if !ctx.OnFloor() {
			return
		}
		if ctx.Velocity().Horizontal().Length() > c.cfg.SlideThreshold {
			ctx.RequestTransition(motion.Sliding)
		} else {
			ctx.RequestTransition(motion.Crouching)
		}
	case in.JustReleased(motion.ActionCrouch):
		if crouched(ctx.State()) {
			// Reconciliation promotes to Running if still moving.
			ctx.RequestTransition(motion.Idle)
		}
	}
}

func (c *Crouch) Update(ctx motion.Context, _ float32) {
	if c.disabled {
		return
	}
	state := ctx.State()
	if !crouched(state) {
		return
	}
	if !ctx.OnFloor() {
		// Walked off an edge crouched.
		ctx.RequestTransition(motion.Jumping)
		return
	}

	speed := ctx.Velocity().Horizontal().Length()
	switch {
	case state == motion.Sliding && speed < c.cfg.SlideMinSpeed:
		ctx.RequestTransition(motion.Crouching)
	case state == motion.Crouching && speed > c.cfg.SlideThreshold:
		ctx.RequestTransition(motion.Sliding)
	}
}

func (c *Crouch) OnStateChanged(_ motion.Context, next, prev motion.State) {
	if c.disabled {
		return
	}
	switch {
	case crouched(next):
		c.applyShape(true)
	case crouched(prev):
		c.applyShape(false)
	}
}

func (c *Crouch) applyShape(down bool) {
	height, scaleY := c.cfg.StandingHeight, c.cfg.StandingScaleY
	if down {
		height, scaleY = c.cfg.CrouchHeight, c.cfg.CrouchScaleY
	}
	c.shape.SetCollisionHeight(height)
	c.mesh.SetMeshScale(math.Vec3{X: 1, Y: scaleY, Z: 1})
}

func (c *Crouch) Drives(s motion.State) bool { return s == motion.Sliding && !c.disabled }

// Drive applies slide friction and slope assist, then points the slide along
// the facing, which left and right input nudge.
func (c *Crouch) Drive(ctx motion.Context, dt float32) {
	yaw := ctx.Yaw()
	if c.turnLeft {
		yaw += c.cfg.SlideTurnRate * dt
	}
	if c.turnRight {
		yaw -= c.cfg.SlideTurnRate * dt
	}
	ctx.SetYaw(yaw)

	if !ctx.OnFloor() {
		return
	}

	v := ctx.Velocity()
	v.X *= c.cfg.SlideFriction
	v.Z *= c.cfg.SlideFriction
	v = v.Add(SlopeAssist(ctx.FloorNormal(), ctx.Gravity(), dt, c.cfg.SlopeExponent, c.cfg.SlopeScale))

	speed := v.Horizontal().Length()
	facing := math.Forward(ctx.Yaw())
	ctx.SetVelocity(math.Vec3{X: facing.X * speed, Y: v.Y, Z: facing.Z * speed})
}

// SlopeAssist is the downhill acceleration for one slide tick on a floor
// with the given normal. It is zero on flat ground.
func SlopeAssist(floorNormal math.Vec3, gravity, dt, exponent, scale float32) math.Vec3 {
	n := floorNormal.Normalize()
	steepness := 1 - n.Dot(math.Up)
	if steepness <= math.Epsilon {
		return math.Vec3{}
	}
	downhill := math.Down.Sub(n.Scale(math.Down.Dot(n))).Normalize()
	return downhill.Scale(math.Abs(gravity) * dt * math.Pow(steepness, exponent) * scale)
}
