// Package avatar assembles a playable avatar: state machine, controller and
// the stock ability set, wired from config and injected collaborators.
package avatar

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/motioncore/internal/ability"
	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/internal/logger"
	"github.com/Faultbox/motioncore/internal/motion"
	"github.com/Faultbox/motioncore/pkg/math"
)

// Errors returned by New when a required collaborator is missing.
var (
	ErrMissingPhysics = errors.New("avatar: physics body is required")
	ErrMissingShape   = errors.New("avatar: collision shape is required")
	ErrMissingMesh    = errors.New("avatar: mesh is required")
	ErrMissingConfig  = errors.New("avatar: config is required")
)

// Deps are the collaborators an avatar is built around.
type Deps struct {
	Physics motion.Physics
	Shape   motion.Shape
	Mesh    motion.Mesh

	// Optional.
	Effects   motion.EffectPlayer
	Clips     motion.ClipLengths
	Observers []motion.TickObserver
	Initial   motion.State
	Yaw       float32
}

// Avatar is one assembled character.
type Avatar struct {
	cfg        *config.Config
	machine    *motion.Machine
	controller *motion.Controller

	jump   *ability.Jump
	crouch *ability.Crouch
	dash   *ability.Dash
	attack *ability.Attack
	ledge  *ability.LedgeGrab
}

// New validates deps and builds the avatar. Every missing collaborator is
// reported, not just the first.
func New(cfg *config.Config, deps Deps) (*Avatar, error) {
	var errs []error
	if cfg == nil {
		errs = append(errs, ErrMissingConfig)
	}
	if deps.Physics == nil {
		errs = append(errs, ErrMissingPhysics)
	}
	if deps.Shape == nil {
		errs = append(errs, ErrMissingShape)
	}
	if deps.Mesh == nil {
		errs = append(errs, ErrMissingMesh)
	}
	if err := errors.Join(errs...); err != nil {
		logger.Error("avatar assembly failed", zap.Error(err))
		return nil, err
	}

	a := &Avatar{
		cfg:     cfg,
		machine: motion.NewMachine(deps.Initial),
		jump:    ability.NewJump(cfg.Jump),
		crouch:  ability.NewCrouch(cfg.Crouch, deps.Shape, deps.Mesh),
		dash:    ability.NewDash(cfg.Dash),
		attack:  ability.NewAttack(cfg.Attack),
		ledge:   ability.NewLedgeGrab(cfg.LedgeGrab),
	}

	ctl, err := motion.NewController(a.machine, deps.Physics, motion.ControllerConfig{
		Tuning:  Tuning(cfg),
		Gravity: a.jump.Profile(),
		Effects: deps.Effects,
		Clips:   deps.Clips,
		Yaw:     deps.Yaw,
	})
	if err != nil {
		return nil, err
	}
	ctl.Register(a.jump, a.crouch, a.dash, a.attack, a.ledge)
	for _, obs := range deps.Observers {
		ctl.Observe(obs)
	}
	a.controller = ctl

	logger.Info("avatar ready",
		zap.Stringer("state", a.machine.Current()),
		zap.Any("position", deps.Physics.Position()),
	)
	return a, nil
}

// Tuning maps config to controller movement tuning.
func Tuning(cfg *config.Config) motion.Tuning {
	return motion.Tuning{
		MaxSpeed:            cfg.Movement.Speed,
		Acceleration:        cfg.Movement.Acceleration,
		AirAcceleration:     cfg.Movement.AirAcceleration,
		AirDrag:             cfg.Movement.AirDrag,
		GroundFriction:      cfg.Movement.GroundFriction,
		GroundTurnRate:      cfg.Movement.GroundTurnRate,
		AirTurnRate:         cfg.Movement.AirTurnRate,
		CrouchSpeedModifier: cfg.Crouch.MovementModifier,
		PushForce:           cfg.Push.Force,
		PushMaxNormalY:      cfg.Push.MaxNormalY,
	}
}

// Tick advances the avatar one fixed step.
func (a *Avatar) Tick(in motion.Input, dt float32) {
	a.controller.Tick(in, dt)
}

// Observe adds a tick observer after assembly.
func (a *Avatar) Observe(obs motion.TickObserver) { a.controller.Observe(obs) }

// OnStateChanged subscribes fn to committed transitions.
func (a *Avatar) OnStateChanged(fn motion.StateObserver) { a.machine.Subscribe(fn) }

func (a *Avatar) Config() *config.Config         { return a.cfg }
func (a *Avatar) Machine() *motion.Machine       { return a.machine }
func (a *Avatar) Controller() *motion.Controller { return a.controller }
func (a *Avatar) State() motion.State            { return a.machine.Current() }
func (a *Avatar) Snapshot() motion.Snapshot      { return a.controller.Snapshot() }
func (a *Avatar) Position() math.Vec3            { return a.controller.Position() }
func (a *Avatar) Teleport(p math.Vec3)           { a.controller.Teleport(p) }
func (a *Avatar) Jump() *ability.Jump            { return a.jump }
func (a *Avatar) Crouch() *ability.Crouch        { return a.crouch }
func (a *Avatar) Dash() *ability.Dash            { return a.dash }
func (a *Avatar) Attack() *ability.Attack        { return a.attack }
func (a *Avatar) LedgeGrab() *ability.LedgeGrab  { return a.ledge }
