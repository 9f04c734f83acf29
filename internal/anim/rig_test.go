package anim

import (
	"testing"

	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/internal/motion"
	"github.com/Faultbox/motioncore/pkg/math"
)

func TestClipFor(t *testing.T) {
	want := map[motion.State]Clip{
		motion.Idle:          ClipMove,
		motion.Running:       ClipMove,
		motion.Jumping:       ClipJump,
		motion.Dashing:       ClipDash,
		motion.Crouching:     ClipCrouch,
		motion.Sliding:       ClipSlide,
		motion.LedgeGrabbing: ClipLedgeGrab,
		motion.Attacking:     ClipAttack,
	}
	for _, s := range motion.States() {
		if got := ClipFor(s); got != want[s] {
			t.Errorf("ClipFor(%v) = %q, want %q", s, got, want[s])
		}
	}
}

func TestRunBlend(t *testing.T) {
	r := NewRig(config.AnimationConfig{BlendSpeed: 10})
	moving := motion.Snapshot{State: motion.Running, Direction: math.Vec3{X: 1}, Delta: 0.05}
	still := motion.Snapshot{State: motion.Idle, Delta: 0.05}

	steps := []struct {
		snap motion.Snapshot
		want float32
	}{
		{moving, -0.5},
		{moving, 0},
		{moving, 0.5},
		{moving, 1},
		{moving, 1},
		{still, 0.5},
		{still, 0},
	}
	for i, st := range steps {
		r.ObserveTick(st.snap)
		if got := r.RunWeight(); got != st.want {
			t.Errorf("step %d: run weight = %v, want %v", i, got, st.want)
		}
	}
	if r.Travels() != 0 {
		t.Errorf("idle/run traveled %d times, want 0", r.Travels())
	}
}

func TestTravel(t *testing.T) {
	r := NewRig(config.Default().Animation)
	var got []Clip
	r.OnTravel(func(_, to Clip) { got = append(got, to) })

	for _, s := range []motion.State{motion.Idle, motion.Jumping, motion.Jumping, motion.LedgeGrabbing, motion.Jumping, motion.Running} {
		r.ObserveTick(motion.Snapshot{State: s, Delta: 1.0 / 60})
	}

	want := []Clip{ClipJump, ClipLedgeGrab, ClipJump, ClipMove}
	if len(got) != len(want) {
		t.Fatalf("travels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("travel %d = %q, want %q", i, got[i], want[i])
		}
	}
	if r.Clip() != ClipMove {
		t.Errorf("clip = %q", r.Clip())
	}
	if l := r.Label(); l != "Game: running\nAnim: move" {
		t.Errorf("label = %q", l)
	}
}

func TestClipLengthAndEffects(t *testing.T) {
	r := NewRig(config.AnimationConfig{
		BlendSpeed: 10,
		Clips:      map[string]float32{"attacking": 0.8, "dashing": 0, "flying": 2},
	})

	if l, ok := r.ClipLength(motion.Attacking); !ok || l != 0.8 {
		t.Errorf("attacking clip = %v %v", l, ok)
	}
	if _, ok := r.ClipLength(motion.Dashing); ok {
		t.Error("zero-length clip reported")
	}
	if _, ok := r.ClipLength(motion.Idle); ok {
		t.Error("unconfigured clip reported")
	}

	var forwarded []motion.Effect
	r.OnEffect(func(e motion.Effect) { forwarded = append(forwarded, e) })
	r.PlayEffect(motion.EffectJump)
	r.PlayEffect(motion.EffectLand)
	if len(r.Effects()) != 2 || len(forwarded) != 2 || forwarded[1] != motion.EffectLand {
		t.Errorf("effects = %v, forwarded = %v", r.Effects(), forwarded)
	}
}
