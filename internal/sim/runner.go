package sim

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/motioncore/internal/anim"
	"github.com/Faultbox/motioncore/internal/arena"
	"github.com/Faultbox/motioncore/internal/avatar"
	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/internal/engine/camera"
	"github.com/Faultbox/motioncore/internal/logger"
	"github.com/Faultbox/motioncore/internal/motion"
	"github.com/Faultbox/motioncore/pkg/math"
)

// Transition is one state change seen during a run.
type Transition struct {
	Tick uint64
	From motion.State
	To   motion.State
}

// Report summarises a run.
type Report struct {
	Ticks       uint64
	Transitions []Transition
	Final       motion.State
	Position    math.Vec3
	Clips       int
	Broken      []string
}

// Runner owns an avatar in an arena and feeds it scripted input.
type Runner struct {
	avatar *avatar.Avatar
	world  *arena.World
	rig    *anim.Rig
	camera *camera.ThirdPersonCamera
	latch  motion.ActionLatch
	dt     float32

	transitions []Transition
}

// NewRunner builds the avatar for world.
func NewRunner(cfg *config.Config, world *arena.World) (*Runner, error) {
	rig := anim.NewRig(cfg.Animation)
	av, err := avatar.New(cfg, avatar.Deps{
		Physics:   world,
		Shape:     world.Body(),
		Mesh:      world.Body(),
		Effects:   rig,
		Clips:     rig,
		Observers: []motion.TickObserver{rig},
		Yaw:       world.SpawnYaw(),
	})
	if err != nil {
		return nil, err
	}

	r := &Runner{
		avatar: av,
		world:  world,
		rig:    rig,
		camera: camera.NewThirdPersonCamera(cfg.Camera),
		dt:     cfg.Sim.TickDuration(),
	}
	av.OnStateChanged(func(next, prev motion.State) {
		r.transitions = append(r.transitions, Transition{
			Tick: av.Controller().Ticks(),
			From: prev,
			To:   next,
		})
	})
	return r, nil
}

// Avatar is the avatar being driven.
func (r *Runner) Avatar() *avatar.Avatar { return r.avatar }

// Rig is the animation rig observing the avatar.
func (r *Runner) Rig() *anim.Rig { return r.rig }

// Run plays every step of s and reports what happened.
func (r *Runner) Run(s *Script) Report {
	r.camera.Yaw = math.WrapAngle(s.CameraYaw * gomath.Pi / 180)

	for i, st := range s.Steps {
		if st.Note != "" {
			logger.Debug("script step", zap.Int("step", i), zap.String("note", st.Note))
		}
		hold := make(map[motion.Action]bool, len(st.Hold))
		for _, a := range st.Hold {
			hold[a] = true
		}
		for n := 0; n < st.Ticks; n++ {
			r.tick(hold)
		}
	}
	return r.report()
}

func (r *Runner) tick(hold map[motion.Action]bool) {
	for _, a := range motion.Actions() {
		r.latch.Set(a, hold[a])
	}
	f := r.latch.Frame(math.Vec3{})
	f = f.WithMove(r.camera.Relative(motion.RawMove(f)))

	r.avatar.Tick(f, r.dt)
	r.world.Step(r.dt)
}

func (r *Runner) report() Report {
	rep := Report{
		Ticks:       r.avatar.Controller().Ticks(),
		Transitions: append([]Transition(nil), r.transitions...),
		Final:       r.avatar.State(),
		Position:    r.avatar.Position(),
		Clips:       r.rig.Travels(),
	}
	for _, d := range r.world.Destructibles() {
		if d.Broken() {
			rep.Broken = append(rep.Broken, d.Name())
		}
	}
	return rep
}
