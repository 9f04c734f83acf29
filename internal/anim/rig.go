// Package anim drives the avatar's animation rig from motion snapshots.
package anim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/internal/logger"
	"github.com/Faultbox/motioncore/internal/motion"
	"github.com/Faultbox/motioncore/pkg/math"
)

// Clip is an animation state machine node.
type Clip string

const (
	ClipMove      Clip = "move"
	ClipJump      Clip = "jump"
	ClipDash      Clip = "dash"
	ClipCrouch    Clip = "crouch"
	ClipSlide     Clip = "slide"
	ClipLedgeGrab Clip = "ledge_grab"
	ClipAttack    Clip = "attack"
)

// ClipFor maps a motion state to the clip that presents it. Idle and Running
// share the move blend space.
func ClipFor(s motion.State) Clip {
	switch s {
	case motion.Jumping:
		return ClipJump
	case motion.Dashing:
		return ClipDash
	case motion.Crouching:
		return ClipCrouch
	case motion.Sliding:
		return ClipSlide
	case motion.LedgeGrabbing:
		return ClipLedgeGrab
	case motion.Attacking:
		return ClipAttack
	default:
		return ClipMove
	}
}

// Rig follows the motion state: it travels between clips, blends the run
// weight toward -1 (idle) or 1 (run), and plays effects. It is a
// motion.TickObserver, a motion.EffectPlayer and a motion.ClipLengths.
type Rig struct {
	blendSpeed float32
	clipLength map[motion.State]float32

	state     motion.State
	clip      Clip
	runWeight float32
	runTarget float32
	travels   int
	effects   []motion.Effect

	onTravel []func(from, to Clip)
	onEffect []func(e motion.Effect)
}

// NewRig creates a rig resting in the idle pose. Clip lengths are keyed by
// state name in config; unknown names are logged and skipped.
func NewRig(cfg config.AnimationConfig) *Rig {
	r := &Rig{
		blendSpeed: cfg.BlendSpeed,
		clipLength: make(map[motion.State]float32, len(cfg.Clips)),
		clip:       ClipMove,
		runWeight:  -1,
		runTarget:  -1,
	}
	for name, length := range cfg.Clips {
		s, err := motion.ParseState(name)
		if err != nil {
			logger.Warn("ignoring clip length", zap.String("clip", name), zap.Error(err))
			continue
		}
		r.clipLength[s] = length
	}
	return r
}

// OnTravel registers fn to run when the rig changes clip.
func (r *Rig) OnTravel(fn func(from, to Clip)) { r.onTravel = append(r.onTravel, fn) }

// OnEffect registers fn to run for every effect played.
func (r *Rig) OnEffect(fn func(e motion.Effect)) { r.onEffect = append(r.onEffect, fn) }

// ObserveTick updates the rig from the final state of a tick.
func (r *Rig) ObserveTick(s motion.Snapshot) {
	r.state = s.State

	if s.Direction.IsZeroApprox() {
		r.runTarget = -1
	} else {
		r.runTarget = 1
	}
	r.runWeight = math.Approach(r.runWeight, r.runTarget, s.Delta*r.blendSpeed)

	if target := ClipFor(s.State); target != r.clip {
		r.travel(target)
	}
}

func (r *Rig) travel(to Clip) {
	from := r.clip
	r.clip = to
	r.travels++
	logger.For(logger.CategoryRig).Debug("travel",
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.Stringer("state", r.state),
	)
	for _, fn := range r.onTravel {
		fn(from, to)
	}
}

// effectHistory is how many recent effects Effects keeps.
const effectHistory = 32

// PlayEffect records and forwards a presentation effect.
func (r *Rig) PlayEffect(e motion.Effect) {
	if len(r.effects) == effectHistory {
		r.effects = append(r.effects[:0], r.effects[1:]...)
	}
	r.effects = append(r.effects, e)
	logger.For(logger.CategoryRig).Debug("effect", zap.String("effect", string(e)))
	for _, fn := range r.onEffect {
		fn(e)
	}
}

// ClipLength reports the configured clip length for s.
func (r *Rig) ClipLength(s motion.State) (float32, bool) {
	l, ok := r.clipLength[s]
	return l, ok && l > 0
}

func (r *Rig) Clip() Clip               { return r.clip }
func (r *Rig) RunWeight() float32       { return r.runWeight }
func (r *Rig) Travels() int             { return r.travels }
func (r *Rig) Effects() []motion.Effect { return r.effects }

// Label is the debug overlay text.
func (r *Rig) Label() string {
	return fmt.Sprintf("Game: %s\nAnim: %s", r.state, r.clip)
}
