package ability

import (
	"go.uber.org/zap"

	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/internal/logger"
	"github.com/Faultbox/motioncore/internal/motion"
	"github.com/Faultbox/motioncore/pkg/math"
)

// Anchor is the ledge a hanging avatar holds. It is captured once per grab.
type Anchor struct {
	// Position is the lip point on top of the ledge.
	Position math.Vec3
	// Normal is the wall's outward normal, flattened to the horizontal plane.
	Normal math.Vec3
}

// LedgeGrab detects ledges while falling and pins the avatar to a hang pose
// until it climbs, lets go or touches the floor.
type LedgeGrab struct {
	cfg config.LedgeGrabConfig

	hanging bool
	anchor  Anchor
	regrab  countdown
}

// NewLedgeGrab creates the ledge grab ability. It starts inactive.
func NewLedgeGrab(cfg config.LedgeGrabConfig) *LedgeGrab {
	return &LedgeGrab{cfg: cfg}
}

func (l *LedgeGrab) Name() string { return "ledge_grab" }

// IsHanging reports whether the avatar is holding a ledge.
func (l *LedgeGrab) IsHanging() bool { return l.hanging }

// Anchor returns the held ledge.
func (l *LedgeGrab) Anchor() (Anchor, bool) { return l.anchor, l.hanging }

// ForceRelease lets go of the ledge, if any.
func (l *LedgeGrab) ForceRelease(ctx motion.Context) {
	if l.hanging {
		l.release(ctx, "forced")
	}
}

func (l *LedgeGrab) HandleInput(ctx motion.Context, in motion.Input) {
	if !l.hanging {
		return
	}
	switch {
	case l.cfg.AllowRelease && in.JustPressed(motion.ActionCrouch):
		l.release(ctx, "let go")
	case in.JustPressed(motion.ActionJump):
		l.climb(ctx)
	}
}

func (l *LedgeGrab) Update(_ motion.Context, dt float32) {
	l.regrab.tick(dt)
}

func (l *LedgeGrab) OnStateChanged(_ motion.Context, next, _ motion.State) {
	if l.hanging && next != motion.LedgeGrabbing {
		// Another ability took over.
		l.hanging = false
	}
}

func (l *LedgeGrab) Drives(s motion.State) bool { return s == motion.LedgeGrabbing }

// Drive keeps the avatar still; the pose itself is reasserted after physics.
func (l *LedgeGrab) Drive(ctx motion.Context, _ float32) {
	ctx.SetVelocity(math.Vec3{})
}

// AfterMove overrides the physics result with the hang pose, or looks for a
// new ledge.
func (l *LedgeGrab) AfterMove(ctx motion.Context) {
	if l.hanging {
		l.pin(ctx)
		if ctx.OnFloor() {
			l.release(ctx, "grounded")
		}
		return
	}
	// Detection only runs while airborne in Jumping; Dashing and Attacking
	// never grab.
	if ctx.IsInState(motion.Jumping) {
		l.detect(ctx)
	}
}

func (l *LedgeGrab) detect(ctx motion.Context) {
	if l.regrab.running() || ctx.OnFloor() || ctx.Velocity().Y > l.cfg.MinimumFallSpeed {
		return
	}

	anchor, ok := l.probe(ctx)
	if !ok {
		return
	}

	l.anchor = anchor
	l.hanging = true
	l.pin(ctx)
	ctx.SetYaw(math.YawFromDirection(anchor.Normal.Neg()))
	ctx.RequestTransition(motion.LedgeGrabbing)
	ctx.PlayEffect(motion.EffectLedgeGrab)

	logger.For(logger.CategoryLedge).Debug("grabbed ledge",
		zap.Any("ledge", anchor.Position),
		zap.Any("normal", anchor.Normal),
	)
}

// probe casts the chest, head and lip rays along the facing.
func (l *LedgeGrab) probe(ctx motion.Context) (Anchor, bool) {
	pos := ctx.Position()
	forward := math.Forward(ctx.Yaw()).Scale(l.cfg.ForwardDistance)

	wallFrom := pos.Add(math.Up.Scale(l.cfg.WallCheckHeight))
	wall, ok := ctx.CastRay(wallFrom, wallFrom.Add(forward))
	if !ok {
		return Anchor{}, false
	}

	ledgeFrom := pos.Add(math.Up.Scale(l.cfg.LedgeCheckHeight))
	ledgeTo := ledgeFrom.Add(forward)
	if _, blocked := ctx.CastRay(ledgeFrom, ledgeTo); blocked {
		return Anchor{}, false
	}

	topFrom := ledgeTo.Add(math.Up.Scale(l.cfg.LedgeThickness))
	top, ok := ctx.CastRay(topFrom, topFrom.Add(math.Down.Scale(2*l.cfg.LedgeThickness)))
	if !ok {
		return Anchor{}, false
	}

	normal := wall.Normal.Horizontal().Normalize()
	if normal.IsZero() {
		return Anchor{}, false
	}
	return Anchor{Position: top.Position, Normal: normal}, true
}

// HangPose is where the avatar's feet go while holding anchor.
func (l *LedgeGrab) HangPose(anchor Anchor) math.Vec3 {
	p := anchor.Position.Add(anchor.Normal.Scale(l.cfg.HangOffset))
	p.Y = anchor.Position.Y - l.cfg.ReachHeight + l.cfg.HangBelowLedge
	return p
}

func (l *LedgeGrab) pin(ctx motion.Context) {
	ctx.SetPosition(l.HangPose(l.anchor))
	ctx.SetVelocity(math.Vec3{})
}

func (l *LedgeGrab) climb(ctx motion.Context) {
	up := math.Sqrt(2 * math.Abs(ctx.RiseGravity()) * l.cfg.ClimbHeight)
	l.hanging = false
	ctx.SetVelocity(math.Vec3{Y: up})
	ctx.RequestTransition(motion.Jumping)
	ctx.PlayEffect(motion.EffectClimb)
	logger.For(logger.CategoryLedge).Debug("climbing up", zap.Float32("vy", up))
}

func (l *LedgeGrab) release(ctx motion.Context, reason string) {
	l.hanging = false
	l.regrab.start(l.cfg.RegrabDelay)
	ctx.RequestTransition(motion.Jumping)
	logger.For(logger.CategoryLedge).Debug("released ledge", zap.String("reason", reason))
}
