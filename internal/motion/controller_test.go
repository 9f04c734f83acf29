package motion

import (
	"errors"
	"testing"

	"github.com/Faultbox/motioncore/pkg/math"
)

// flatFloor is a stub solver with an infinite floor at y=0.
type flatFloor struct {
	pos        math.Vec3
	collisions []Collision
	moves      []math.Vec3
	rays       []RayQuery
}

func (f *flatFloor) MoveAndSlide(v math.Vec3, dt float32) MoveResult {
	f.moves = append(f.moves, v)
	f.pos = f.pos.Add(v.Scale(dt))
	onFloor := false
	if f.pos.Y <= 0 && v.Y <= 0 {
		f.pos.Y = 0
		v.Y = 0
		onFloor = true
	}
	res := MoveResult{Velocity: v, OnFloor: onFloor, FloorNormal: math.Up, Collisions: f.collisions}
	f.collisions = nil
	return res
}

func (f *flatFloor) Position() math.Vec3     { return f.pos }
func (f *flatFloor) SetPosition(p math.Vec3) { f.pos = p }
func (f *flatFloor) Self() any               { return f }
func (f *flatFloor) IntersectRay(q RayQuery) (RayHit, bool) {
	f.rays = append(f.rays, q)
	return RayHit{}, false
}

type recordingAbility struct {
	name   string
	log    *[]string
	drives State
}

func (r *recordingAbility) Name() string { return r.name }
func (r *recordingAbility) HandleInput(Context, Input) {
	*r.log = append(*r.log, r.name+".input")
}
func (r *recordingAbility) Update(Context, float32) {
	*r.log = append(*r.log, r.name+".update")
}
func (r *recordingAbility) OnStateChanged(_ Context, next, _ State) {
	*r.log = append(*r.log, r.name+".state:"+next.String())
}

type drivingAbility struct {
	recordingAbility
}

func (d *drivingAbility) Drives(s State) bool { return s == d.drives }
func (d *drivingAbility) Drive(ctx Context, _ float32) {
	*d.log = append(*d.log, d.name+".drive")
	ctx.SetHorizontalVelocity(math.Vec3{X: 20})
}
func (d *drivingAbility) AfterMove(Context) {
	*d.log = append(*d.log, d.name+".after")
}

type box struct{ impulses []math.Vec3 }

func (b *box) ApplyCentralImpulse(i math.Vec3) { b.impulses = append(b.impulses, i) }

func newTestController(t *testing.T, initial State) (*Controller, *flatFloor) {
	t.Helper()
	phys := &flatFloor{}
	c, err := NewController(NewMachine(initial), phys, ControllerConfig{
		Tuning:  DefaultTuning(),
		Gravity: NewGravityProfile(4, 0.5, 0.25),
	})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c, phys
}

func TestNewControllerMissingCollaborators(t *testing.T) {
	_, err := NewController(nil, nil, ControllerConfig{})
	if !errors.Is(err, ErrNilMachine) || !errors.Is(err, ErrNilPhysics) {
		t.Fatalf("expected both sentinels, got %v", err)
	}
}

func TestTickOrder(t *testing.T) {
	c, _ := newTestController(t, Dashing)
	var log []string
	a := &recordingAbility{name: "a", log: &log}
	d := &drivingAbility{recordingAbility{name: "d", log: &log, drives: Dashing}}
	c.Register(a, d)
	c.Observe(TickObserverFunc(func(Snapshot) { log = append(log, "observe") }))

	c.Tick(InputFrame{}, 1.0/60)

	want := []string{"a.input", "d.input", "a.update", "d.update", "d.drive", "d.after", "observe"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
}

func TestExclusiveStateSkipsDefaultMovement(t *testing.T) {
	c, phys := newTestController(t, Dashing)
	var log []string
	c.Register(&drivingAbility{recordingAbility{name: "dash", log: &log, drives: Dashing}})

	c.Tick(NewInputFrame(math.Vec3{Z: -1}), 1.0/60)

	got := phys.moves[0]
	if got.X != 20 || got.Z != 0 {
		t.Errorf("driver velocity overwritten by default movement: %+v", got)
	}
	if got.Y != 0 {
		t.Errorf("dashing must pin vertical velocity, got %v", got.Y)
	}
}

func TestDefaultMovementRunsAndReconciles(t *testing.T) {
	c, _ := newTestController(t, Idle)
	var states []State
	c.Observe(TickObserverFunc(func(s Snapshot) { states = append(states, s.State) }))

	in := NewInputFrame(math.Vec3{Z: -1})
	for i := 0; i < 30; i++ {
		c.Tick(in, 1.0/60)
	}

	if c.State() != Running {
		t.Fatalf("state = %v, want running", c.State())
	}
	if v := c.Velocity().Horizontal().Length(); v <= 0 {
		t.Errorf("no horizontal speed after 30 ticks")
	}
	if !approx(c.Yaw(), 0, 1e-3) {
		t.Errorf("yaw = %v, want facing -Z (0)", c.Yaw())
	}
	if len(states) != 30 {
		t.Errorf("observer called %d times", len(states))
	}
}

func TestWalkOffEdgeBecomesJumping(t *testing.T) {
	c, phys := newTestController(t, Running)
	phys.pos = math.Vec3{Y: 5}

	c.Tick(InputFrame{}, 1.0/60)

	if c.State() != Jumping {
		t.Errorf("state = %v, want jumping", c.State())
	}
	if c.OnFloor() {
		t.Error("expected airborne")
	}
}

func TestPushImpulse(t *testing.T) {
	c, phys := newTestController(t, Running)
	wall := &box{}
	floor := &box{}
	phys.collisions = []Collision{
		{Normal: math.Vec3{X: -1}, Collider: wall},
		{Normal: math.Up, Collider: floor},
		{Normal: math.Vec3{X: 1}, Collider: "static"},
	}

	c.Tick(InputFrame{}, 1.0/60)

	if len(wall.impulses) != 1 || wall.impulses[0] != (math.Vec3{X: 60}) {
		t.Errorf("wall impulses = %v, want [{60 0 0}]", wall.impulses)
	}
	if len(floor.impulses) != 0 {
		t.Errorf("floor contact was pushed: %v", floor.impulses)
	}
}

func TestStateChangeReachesAbilities(t *testing.T) {
	c, _ := newTestController(t, Idle)
	var log []string
	c.Register(&recordingAbility{name: "a", log: &log})

	c.RequestTransition(Attacking)

	if len(log) != 1 || log[0] != "a.state:attacking" {
		t.Errorf("log = %v", log)
	}
}

func TestCastRayExcludesSelf(t *testing.T) {
	c, phys := newTestController(t, Idle)
	if _, ok := c.CastRay(math.Vec3{}, math.Vec3{Z: -1}); ok {
		t.Error("unexpected hit")
	}
	if len(phys.rays) != 1 || phys.rays[0].Exclude != any(phys) {
		t.Errorf("ray query = %+v", phys.rays)
	}
}

func TestZeroDtIsIgnored(t *testing.T) {
	c, _ := newTestController(t, Idle)
	c.Tick(InputFrame{}, 0)
	if c.Ticks() != 0 {
		t.Errorf("ticks = %d", c.Ticks())
	}
}
