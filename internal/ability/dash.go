package ability

import (
	"go.uber.org/zap"

	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/internal/logger"
	"github.com/Faultbox/motioncore/internal/motion"
	"github.com/Faultbox/motioncore/pkg/math"
)

// directionDeadZone is the input length below which the dash uses facing.
const directionDeadZone = 0.1

// Dash is a short burst along input or facing. While Dashing it is the only
// writer of horizontal velocity.
type Dash struct {
	cfg config.DashConfig

	available int
	cooldown  countdown
	remaining countdown
	refill    countdown
	direction math.Vec3
}

// NewDash creates a dash ability with a full budget.
func NewDash(cfg config.DashConfig) *Dash {
	return &Dash{cfg: cfg, available: cfg.ExtraDashes}
}

func (d *Dash) Name() string { return "dash" }

// Available returns the remaining dashes.
func (d *Dash) Available() int { return d.available }

// Direction returns the heading of the current or last dash.
func (d *Dash) Direction() math.Vec3 { return d.direction }

func (d *Dash) HandleInput(ctx motion.Context, in motion.Input) {
	if in.JustPressed(motion.ActionDash) {
		d.trigger(ctx)
	}
}

func (d *Dash) canDash(ctx motion.Context) bool {
	if d.available <= 0 || d.cooldown.running() {
		return false
	}
	switch ctx.State() {
	case motion.Crouching, motion.LedgeGrabbing:
		return false
	}
	return true
}

func (d *Dash) trigger(ctx motion.Context) {
	if !d.canDash(ctx) {
		return
	}

	d.available--
	d.cooldown.start(d.cfg.Cooldown)
	d.refill.stop()

	dir := ctx.Direction().Horizontal()
	if dir.Length() > directionDeadZone {
		dir = dir.Normalize()
	} else {
		dir = math.Forward(ctx.Yaw())
	}
	d.direction = dir
	ctx.SetYaw(math.YawFromDirection(dir))

	duration, ok := ctx.ClipLength(motion.Dashing)
	if !ok || duration <= 0 {
		duration = d.cfg.Duration
	}
	d.remaining.start(duration)

	ctx.RequestTransition(motion.Dashing)
	ctx.PlayEffect(motion.EffectDash)

	logger.For(logger.CategoryMovement).Debug("dash",
		zap.Float32("dir_x", dir.X),
		zap.Float32("dir_z", dir.Z),
		zap.Float32("duration", duration),
		zap.Int("available", d.available),
	)
}

func (d *Dash) Update(ctx motion.Context, dt float32) {
	d.cooldown.tick(dt)

	if d.remaining.tick(dt) {
		d.finish(ctx)
	}

	switch d.cfg.Refill {
	case config.DashRefillDelay:
		if d.refill.tick(dt) {
			d.refillAll()
		}
	case config.DashRefillCooldown:
		if ctx.OnFloor() && !d.cooldown.running() && !d.remaining.running() {
			d.refillAll()
		}
	}
}

// finish hands the state back unless something else already took it.
func (d *Dash) finish(ctx motion.Context) {
	if !ctx.IsInState(motion.Dashing) {
		return
	}
	ctx.RequestTransition(motion.SettleState(ctx.Facts()))
}

func (d *Dash) OnStateChanged(ctx motion.Context, next, prev motion.State) {
	if prev == motion.Dashing && next != motion.Dashing {
		// Interrupted dashes stop driving immediately.
		d.remaining.stop()
		if d.cfg.Refill == config.DashRefillDelay {
			d.refill.start(d.cfg.RefillDelay)
		}
	}
	// A landing is Jumping to a grounded state; a ground dash ending is not.
	if d.cfg.Refill == config.DashRefillOnLanding && prev == motion.Jumping && next.Grounded() && ctx.OnFloor() {
		d.refillAll()
	}
}

func (d *Dash) refillAll() {
	d.available = d.cfg.ExtraDashes
}

func (d *Dash) Drives(s motion.State) bool { return s == motion.Dashing }

// Drive pins horizontal velocity to the dash heading. A fast avatar moving
// roughly along the dash keeps its speed; anything else is overwritten with
// the dash vector.
func (d *Dash) Drive(ctx motion.Context, _ float32) {
	ctx.SetHorizontalVelocity(DashVelocity(ctx.Velocity().Horizontal(), d.direction, d.cfg.Speed, d.cfg.MinSpeed, d.cfg.SimilarityThreshold))
}

// DashVelocity resolves the horizontal velocity for one dash tick.
func DashVelocity(current, dir math.Vec3, speed, minSpeed, similarity float32) math.Vec3 {
	dash := dir.Scale(speed)
	currentSpeed := current.Length()
	if currentSpeed < minSpeed || current.Normalize().Dot(dir) < similarity {
		return dash
	}
	if currentSpeed > speed {
		return dir.Scale(currentSpeed)
	}
	return dash
}
