package ability

import (
	"go.uber.org/zap"

	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/internal/logger"
	"github.com/Faultbox/motioncore/internal/motion"
)

// Attack plays one attack from the ground or, optionally, the air, and hands
// the state back when the attack clip ends.
type Attack struct {
	cfg       config.AttackConfig
	cooldown  countdown
	remaining countdown
}

// NewAttack creates the attack ability.
func NewAttack(cfg config.AttackConfig) *Attack {
	return &Attack{cfg: cfg}
}

func (a *Attack) Name() string { return "attack" }

// Attacking reports whether a completion is pending.
func (a *Attack) Attacking() bool { return a.remaining.running() }

func (a *Attack) HandleInput(ctx motion.Context, in motion.Input) {
	if in.JustPressed(motion.ActionAttack) {
		a.trigger(ctx)
	}
}

func (a *Attack) canAttack(ctx motion.Context) bool {
	if a.cooldown.running() {
		return false
	}
	switch ctx.State() {
	case motion.Idle, motion.Running:
		return true
	case motion.Jumping:
		return a.cfg.AllowAir
	}
	return false
}

func (a *Attack) trigger(ctx motion.Context) {
	if !a.canAttack(ctx) {
		return
	}

	duration, ok := ctx.ClipLength(motion.Attacking)
	if !ok || duration <= 0 {
		duration = a.cfg.Duration
	}

	ctx.RequestTransition(motion.Attacking)
	a.cooldown.start(a.cfg.Cooldown)
	a.remaining.start(duration)
	ctx.PlayEffect(motion.EffectAttack)

	logger.For(logger.CategoryMovement).Debug("attack", zap.Float32("duration", duration))
}

func (a *Attack) Update(ctx motion.Context, dt float32) {
	a.cooldown.tick(dt)
	if a.remaining.tick(dt) {
		a.complete(ctx)
	}
}

// complete runs when the clip ends. An attack that was interrupted leaves
// the current state alone.
func (a *Attack) complete(ctx motion.Context) {
	if !ctx.IsInState(motion.Attacking) {
		return
	}
	ctx.RequestTransition(motion.SettleState(ctx.Facts()))
}

func (a *Attack) OnStateChanged(motion.Context, motion.State, motion.State) {}
