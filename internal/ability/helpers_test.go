package ability

import (
	"testing"

	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/internal/motion"
	"github.com/Faultbox/motioncore/pkg/math"
)

const dt = float32(1.0 / 60)

// fakeCtx is a hand-driven motion.Context for unit tests.
type fakeCtx struct {
	m           *motion.Machine
	vel         math.Vec3
	dir         math.Vec3
	pos         math.Vec3
	yaw         float32
	onFloor     bool
	floorNormal math.Vec3
	gravity     float32
	rise        float32
	clips       map[motion.State]float32
	effects     []motion.Effect
	ray         func(from, to math.Vec3) (motion.RayHit, bool)
}

func newFakeCtx(initial motion.State, abilities ...motion.Ability) *fakeCtx {
	c := &fakeCtx{
		m:           motion.NewMachine(initial),
		floorNormal: math.Up,
		gravity:     -128,
		rise:        -32,
	}
	c.m.Subscribe(func(next, prev motion.State) {
		for _, a := range abilities {
			a.OnStateChanged(c, next, prev)
		}
	})
	return c
}

func (c *fakeCtx) Velocity() math.Vec3     { return c.vel }
func (c *fakeCtx) SetVelocity(v math.Vec3) { c.vel = v }
func (c *fakeCtx) SetHorizontalVelocity(h math.Vec3) {
	c.vel = math.Vec3{X: h.X, Y: c.vel.Y, Z: h.Z}
}
func (c *fakeCtx) SetVerticalVelocity(vy float32)   { c.vel.Y = vy }
func (c *fakeCtx) Direction() math.Vec3             { return c.dir }
func (c *fakeCtx) Yaw() float32                     { return c.yaw }
func (c *fakeCtx) SetYaw(yaw float32)               { c.yaw = math.WrapAngle(yaw) }
func (c *fakeCtx) Position() math.Vec3              { return c.pos }
func (c *fakeCtx) SetPosition(p math.Vec3)          { c.pos = p }
func (c *fakeCtx) State() motion.State              { return c.m.Current() }
func (c *fakeCtx) IsInState(s motion.State) bool    { return c.m.IsInState(s) }
func (c *fakeCtx) RequestTransition(s motion.State) { c.m.RequestTransition(s) }
func (c *fakeCtx) OnFloor() bool                    { return c.onFloor }
func (c *fakeCtx) FloorNormal() math.Vec3           { return c.floorNormal }
func (c *fakeCtx) Gravity() float32                 { return c.gravity }
func (c *fakeCtx) RiseGravity() float32             { return c.rise }
func (c *fakeCtx) PlayEffect(e motion.Effect)       { c.effects = append(c.effects, e) }

func (c *fakeCtx) Facts() motion.Facts {
	return motion.Facts{OnFloor: c.onFloor, Velocity: c.vel, Direction: c.dir}
}

func (c *fakeCtx) CastRay(from, to math.Vec3) (motion.RayHit, bool) {
	if c.ray == nil {
		return motion.RayHit{}, false
	}
	return c.ray(from, to)
}

func (c *fakeCtx) ClipLength(s motion.State) (float32, bool) {
	l, ok := c.clips[s]
	return l, ok
}

func press(a motion.Action) motion.InputFrame {
	return motion.NewInputFrame(math.Vec3{}).WithPress(a)
}

func release(a motion.Action) motion.InputFrame {
	return motion.NewInputFrame(math.Vec3{}).WithRelease(a)
}

// world is a stub solver: a floor at floorY plus an optional ledge wall.
type world struct {
	pos    math.Vec3
	floorY float32
	ledge  *ledgeWall
}

func (w *world) MoveAndSlide(v math.Vec3, dt float32) motion.MoveResult {
	w.pos = w.pos.Add(v.Scale(dt))
	onFloor := false
	if w.pos.Y <= w.floorY && v.Y <= 0 {
		w.pos.Y = w.floorY
		v.Y = 0
		onFloor = true
	}
	return motion.MoveResult{Velocity: v, OnFloor: onFloor, FloorNormal: math.Up}
}

func (w *world) Position() math.Vec3     { return w.pos }
func (w *world) SetPosition(p math.Vec3) { w.pos = p }
func (w *world) Self() any               { return w }

func (w *world) IntersectRay(q motion.RayQuery) (motion.RayHit, bool) {
	if w.ledge == nil {
		return motion.RayHit{}, false
	}
	return w.ledge.intersect(q.From, q.To)
}

// ledgeWall fills z <= face and y <= top: a wall facing +Z with a flat top.
// It only answers the horizontal -Z and vertical down probes ledge grab uses.
type ledgeWall struct {
	face float32
	top  float32
}

func (l *ledgeWall) intersect(from, to math.Vec3) (motion.RayHit, bool) {
	switch {
	case from.Y == to.Y:
		if from.Y <= l.top && from.Z > l.face && to.Z <= l.face {
			return motion.RayHit{Position: math.Vec3{X: from.X, Y: from.Y, Z: l.face}, Normal: math.Vec3{Z: 1}}, true
		}
	case from.Z == to.Z:
		if from.Z <= l.face && from.Y >= l.top && to.Y <= l.top {
			return motion.RayHit{Position: math.Vec3{X: from.X, Y: l.top, Z: from.Z}, Normal: math.Up}, true
		}
	}
	return motion.RayHit{}, false
}

type recShape struct{ height float32 }

func (s *recShape) SetCollisionHeight(h float32) { s.height = h }
func (s *recShape) CollisionHeight() float32     { return s.height }

type recMesh struct{ scale math.Vec3 }

func (m *recMesh) SetMeshScale(s math.Vec3) { m.scale = s }

// harness wires every ability to a real controller over the stub world.
type harness struct {
	t      *testing.T
	cfg    *config.Config
	world  *world
	ctl    *motion.Controller
	shape  *recShape
	mesh   *recMesh
	jump   *Jump
	crouch *Crouch
	dash   *Dash
	attack *Attack
	ledge  *LedgeGrab
}

func newHarness(t *testing.T, cfg *config.Config, w *world) *harness {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	h := &harness{t: t, cfg: cfg, world: w, shape: &recShape{}, mesh: &recMesh{}}
	h.jump = NewJump(cfg.Jump)
	h.crouch = NewCrouch(cfg.Crouch, h.shape, h.mesh)
	h.dash = NewDash(cfg.Dash)
	h.attack = NewAttack(cfg.Attack)
	h.ledge = NewLedgeGrab(cfg.LedgeGrab)

	tuning := motion.DefaultTuning()
	ctl, err := motion.NewController(motion.NewMachine(motion.Idle), w, motion.ControllerConfig{
		Tuning:  tuning,
		Gravity: h.jump.Profile(),
	})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	ctl.Register(h.jump, h.crouch, h.dash, h.attack, h.ledge)
	h.ctl = ctl
	return h
}

func (h *harness) tick(in motion.Input) {
	h.ctl.Tick(in, dt)
}

func (h *harness) idle(n int) {
	for i := 0; i < n; i++ {
		h.tick(motion.InputFrame{})
	}
}
