package motion

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/motioncore/internal/logger"
	"github.com/Faultbox/motioncore/pkg/math"
)

var (
	ErrNilMachine = errors.New("motion: state machine is nil")
	ErrNilPhysics = errors.New("motion: physics collaborator is nil")
)

// ControllerConfig holds the controller's tuning and optional collaborators.
type ControllerConfig struct {
	Tuning  Tuning
	Gravity GravityProfile
	Effects EffectPlayer
	Clips   ClipLengths
	// Yaw is the initial facing.
	Yaw float32
}

// Controller is the per-tick driver of one avatar. It owns velocity, input
// direction and facing, and implements Context for its abilities.
type Controller struct {
	machine    *Machine
	physics    Physics
	integrator Integrator
	effects    EffectPlayer
	clips      ClipLengths

	abilities  []Ability
	drivers    []Driver
	postMovers []PostMover
	observers  []TickObserver

	velocity    math.Vec3
	direction   math.Vec3
	yaw         float32
	onFloor     bool
	floorNormal math.Vec3
	ticks       uint64
}

// NewController creates a controller bound to a machine and physics solver.
func NewController(m *Machine, physics Physics, cfg ControllerConfig) (*Controller, error) {
	var errs []error
	if m == nil {
		errs = append(errs, ErrNilMachine)
	}
	if physics == nil {
		errs = append(errs, ErrNilPhysics)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	c := &Controller{
		machine:     m,
		physics:     physics,
		integrator:  Integrator{Tuning: cfg.Tuning, Gravity: cfg.Gravity},
		effects:     cfg.Effects,
		clips:       cfg.Clips,
		yaw:         cfg.Yaw,
		floorNormal: math.Up,
	}
	if c.effects == nil {
		c.effects = nopEffects{}
	}
	m.Subscribe(c.dispatchStateChange)
	return c, nil
}

// Register adds abilities. Input and updates reach them in registration order.
func (c *Controller) Register(abilities ...Ability) {
	for _, a := range abilities {
		if a == nil {
			continue
		}
		c.abilities = append(c.abilities, a)
		if d, ok := a.(Driver); ok {
			c.drivers = append(c.drivers, d)
		}
		if pm, ok := a.(PostMover); ok {
			c.postMovers = append(c.postMovers, pm)
		}
	}
}

// Observe adds a tick observer, typically the animation rig.
func (c *Controller) Observe(obs TickObserver) {
	if obs != nil {
		c.observers = append(c.observers, obs)
	}
}

// Machine returns the state machine the controller reconciles.
func (c *Controller) Machine() *Machine {
	return c.machine
}

// Integrator returns the integrator in use.
func (c *Controller) Integrator() Integrator {
	return c.integrator
}

// Ticks returns the number of completed ticks.
func (c *Controller) Ticks() uint64 {
	return c.ticks
}

// Tick advances the avatar by dt seconds. The order is fixed: input edges and
// ability timers, gravity, movement, physics, post-move corrections, pushes,
// reconciliation, observers.
func (c *Controller) Tick(in Input, dt float32) {
	if dt <= 0 {
		return
	}
	if in == nil {
		in = InputFrame{}
	}
	c.direction = in.Move().Horizontal()

	for _, a := range c.abilities {
		a.HandleInput(c, in)
	}
	for _, a := range c.abilities {
		a.Update(c, dt)
	}

	state := c.machine.Current()
	c.velocity = c.integrator.ApplyGravity(c.velocity, state, dt)
	if state.Exclusive() {
		if d := c.driverFor(state); d != nil {
			d.Drive(c, dt)
		}
	} else {
		c.defaultMovement(state, dt)
	}

	res := c.physics.MoveAndSlide(c.velocity, dt)
	c.velocity = res.Velocity
	c.onFloor = res.OnFloor
	c.floorNormal = res.FloorNormal
	if c.floorNormal.IsZero() {
		c.floorNormal = math.Up
	}

	for _, pm := range c.postMovers {
		pm.AfterMove(c)
	}

	c.push(res.Collisions)

	Reconcile(c.machine, c.Facts())

	snap := c.Snapshot()
	snap.Delta = dt
	for _, obs := range c.observers {
		obs.ObserveTick(snap)
	}
	c.ticks++
}

func (c *Controller) driverFor(s State) Driver {
	for _, d := range c.drivers {
		if d.Drives(s) {
			return d
		}
	}
	return nil
}

func (c *Controller) defaultMovement(s State, dt float32) {
	h := c.velocity.Horizontal()
	if c.onFloor {
		h = c.integrator.GroundMove(h, c.direction, c.integrator.MaxSpeedFor(s), dt)
		c.yaw = c.integrator.Face(c.yaw, c.direction, c.integrator.Tuning.GroundTurnRate, dt)
	} else {
		h = c.integrator.AirMove(h, c.direction, dt)
		c.yaw = c.integrator.Face(c.yaw, c.direction, c.integrator.Tuning.AirTurnRate, dt)
	}
	c.SetHorizontalVelocity(h)
}

func (c *Controller) dispatchStateChange(next, prev State) {
	for _, a := range c.abilities {
		a.OnStateChanged(c, next, prev)
	}
}

// Snapshot returns the observer view of the current tick.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		State:     c.machine.Current(),
		Velocity:  c.velocity,
		Direction: c.direction,
		Yaw:       c.yaw,
		OnFloor:   c.onFloor,
	}
}

// Teleport moves the avatar and clears its velocity.
func (c *Controller) Teleport(p math.Vec3) {
	c.physics.SetPosition(p)
	c.velocity = math.Vec3{}
	logger.For(logger.CategoryMovement).Debug("teleport", zap.Any("position", p))
}

// Context implementation.

func (c *Controller) Velocity() math.Vec3     { return c.velocity }
func (c *Controller) SetVelocity(v math.Vec3) { c.velocity = v }
func (c *Controller) SetHorizontalVelocity(h math.Vec3) {
	c.velocity = math.Vec3{X: h.X, Y: c.velocity.Y, Z: h.Z}
}
func (c *Controller) SetVerticalVelocity(vy float32) { c.velocity.Y = vy }
func (c *Controller) Direction() math.Vec3           { return c.direction }
func (c *Controller) Yaw() float32                   { return c.yaw }
func (c *Controller) SetYaw(yaw float32)             { c.yaw = math.WrapAngle(yaw) }
func (c *Controller) Position() math.Vec3            { return c.physics.Position() }
func (c *Controller) SetPosition(p math.Vec3)        { c.physics.SetPosition(p) }
func (c *Controller) State() State                   { return c.machine.Current() }
func (c *Controller) IsInState(s State) bool         { return c.machine.IsInState(s) }
func (c *Controller) RequestTransition(s State)      { c.machine.RequestTransition(s) }
func (c *Controller) OnFloor() bool                  { return c.onFloor }
func (c *Controller) FloorNormal() math.Vec3         { return c.floorNormal }
func (c *Controller) PlayEffect(e Effect)            { c.effects.PlayEffect(e) }

func (c *Controller) Gravity() float32 {
	return c.integrator.Gravity.At(c.velocity.Y)
}

func (c *Controller) RiseGravity() float32 {
	return c.integrator.Gravity.RiseGravity
}

func (c *Controller) Facts() Facts {
	return Facts{OnFloor: c.onFloor, Velocity: c.velocity, Direction: c.direction}
}

func (c *Controller) CastRay(from, to math.Vec3) (RayHit, bool) {
	return c.physics.IntersectRay(RayQuery{From: from, To: to, Exclude: c.physics.Self()})
}

func (c *Controller) ClipLength(s State) (float32, bool) {
	if c.clips == nil {
		return 0, false
	}
	return c.clips.ClipLength(s)
}
