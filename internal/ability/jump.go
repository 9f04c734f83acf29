package ability

import (
	"go.uber.org/zap"

	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/internal/logger"
	"github.com/Faultbox/motioncore/internal/motion"
)

// Jump handles ground, coyote, air and charged jumps, jump cancel and the
// bunny-hop boost.
type Jump struct {
	cfg     config.JumpConfig
	normal  motion.GravityProfile
	charged motion.GravityProfile

	jumpsLeft    int
	coyote       countdown
	sinceLanding float32
	wasOnFloor   bool
	// justJumped keeps Update from re-arming coyote time on the launch tick,
	// before physics has lifted the avatar off the floor.
	justJumped bool
}

// NewJump creates a jump ability with a full extra-jump budget.
func NewJump(cfg config.JumpConfig) *Jump {
	return &Jump{
		cfg:       cfg,
		normal:    motion.NewGravityProfile(cfg.Normal.Height, cfg.Normal.TimeToPeak, cfg.Normal.TimeToDescent),
		charged:   motion.NewGravityProfile(cfg.Charged.Height, cfg.Charged.TimeToPeak, cfg.Charged.TimeToDescent),
		jumpsLeft: cfg.ExtraJumps,
	}
}

func (j *Jump) Name() string { return "jump" }

// Profile is the normal jump arc. The controller integrates gravity with it.
func (j *Jump) Profile() motion.GravityProfile { return j.normal }

// ChargedProfile is the crouch jump arc.
func (j *Jump) ChargedProfile() motion.GravityProfile { return j.charged }

// JumpsLeft returns the remaining extra (air) jumps.
func (j *Jump) JumpsLeft() int { return j.jumpsLeft }

func (j *Jump) HandleInput(ctx motion.Context, in motion.Input) {
	// Jump is the climb action while hanging.
	if ctx.IsInState(motion.LedgeGrabbing) {
		return
	}

	if in.JustPressed(motion.ActionJump) {
		if j.cfg.CrouchJumpEnabled && ctx.IsInState(motion.Crouching) {
			j.chargedJump(ctx)
		} else {
			j.jump(ctx)
		}
	}

	if j.cfg.EnableJumpCancel && in.JustReleased(motion.ActionJump) {
		if v := ctx.Velocity(); v.Y > 0 {
			ctx.SetVerticalVelocity(v.Y * j.cfg.CancelMultiplier)
		}
	}
}

func (j *Jump) Update(ctx motion.Context, dt float32) {
	onFloor := ctx.OnFloor()

	switch {
	case j.justJumped:
		// Launch tick: the floor flag still predates the jump.
	case onFloor:
		j.coyote.start(j.cfg.CoyoteTime)
		j.sinceLanding += dt
	default:
		j.coyote.tick(dt)
		j.sinceLanding = 0
	}
	j.justJumped = false

	if onFloor && !j.wasOnFloor {
		j.sinceLanding = 0
		ctx.PlayEffect(motion.EffectLand)
	}
	j.wasOnFloor = onFloor
}

// OnStateChanged refills extra jumps whenever the avatar settles on the floor.
func (j *Jump) OnStateChanged(ctx motion.Context, next, _ motion.State) {
	if next.Grounded() && ctx.OnFloor() {
		j.jumpsLeft = j.cfg.ExtraJumps
	}
}

func (j *Jump) canGroundJump(ctx motion.Context) bool {
	return ctx.OnFloor() || j.coyote.running()
}

func (j *Jump) jump(ctx motion.Context) {
	switch {
	case j.canGroundJump(ctx):
		j.groundJump(ctx, j.normal.LaunchVelocity, motion.EffectJump, j.shouldBunnyHop(ctx))
	case j.jumpsLeft > 0:
		j.airJump(ctx)
	}
}

func (j *Jump) chargedJump(ctx motion.Context) {
	switch {
	case j.canGroundJump(ctx):
		j.groundJump(ctx, j.charged.LaunchVelocity, motion.EffectCrouchJump, false)
	case j.jumpsLeft > 0 && j.cfg.CrouchJumpAirPolicy != config.AirJumpDeny:
		// Never the charged launch in the air.
		j.airJump(ctx)
	}
}

func (j *Jump) shouldBunnyHop(ctx motion.Context) bool {
	if !j.cfg.EnableBunnyHop {
		return false
	}
	speed := ctx.Velocity().Horizontal().Length()
	return j.sinceLanding <= j.cfg.BunnyHopWindow && speed >= j.cfg.BunnyHopThreshold
}

func (j *Jump) groundJump(ctx motion.Context, launch float32, effect motion.Effect, bunnyHop bool) {
	v := ctx.Velocity()
	ctx.SetVerticalVelocity(v.Y + launch)

	if bunnyHop {
		h := v.Horizontal()
		ctx.SetHorizontalVelocity(h.Normalize().Scale(h.Length() + j.cfg.BunnyHopBoost))
	}

	j.coyote.stop()
	j.justJumped = true
	j.launched(ctx, effect, zap.Bool("bunny_hop", bunnyHop))
}

func (j *Jump) airJump(ctx motion.Context) {
	j.jumpsLeft--
	ctx.SetVerticalVelocity(j.normal.LaunchVelocity)
	j.launched(ctx, motion.EffectJump, zap.Int("jumps_left", j.jumpsLeft))
}

func (j *Jump) launched(ctx motion.Context, effect motion.Effect, field zap.Field) {
	ctx.RequestTransition(motion.Jumping)
	ctx.PlayEffect(effect)
	logger.For(logger.CategoryMovement).Debug("jump",
		zap.String("kind", string(effect)),
		zap.Float32("vy", ctx.Velocity().Y),
		field,
	)
}
