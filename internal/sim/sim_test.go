package sim

import (
	"errors"
	"strings"
	"testing"

	"github.com/Faultbox/motioncore/internal/arena"
	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/internal/motion"
)

const walkJump = `
name: walk-jump
steps:
  - ticks: 30
    hold: [move_forward]
    note: run north
  - ticks: 1
    hold: [move_forward, jump]
  - ticks: 120
`

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(walkJump))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if s.Name != "walk-jump" || len(s.Steps) != 3 {
		t.Fatalf("script = %+v", s)
	}
	if got := s.Steps[1].Hold; len(got) != 2 || got[0] != motion.ActionMoveForward || got[1] != motion.ActionJump {
		t.Errorf("hold = %v", got)
	}
	if s.TotalTicks() != 151 {
		t.Errorf("TotalTicks = %d, want 151", s.TotalTicks())
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"no steps", "name: empty\n", "no steps"},
		{"negative ticks", "steps:\n  - ticks: -1\n", "negative"},
		{"unknown action", "steps:\n  - ticks: 1\n    hold: [fly]\n", "fly"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.src))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}

	if _, err := ParseScript([]byte("name: empty\n")); !errors.Is(err, ErrNoSteps) {
		t.Errorf("err = %v, want ErrNoSteps", err)
	}
}

func flatWorld(cfg *config.Config) *arena.World {
	return arena.NewWorld(&arena.LevelSpec{
		Name: "flat",
		Solids: []arena.SolidSpec{
			{Name: "ground", Min: arena.Vec3Spec{-40, -1, -40}, Max: arena.Vec3Spec{40, 0, 40}},
		},
	}, cfg.Prop)
}

func TestRunWalkJumpLand(t *testing.T) {
	cfg := config.Default()
	s, err := ParseScript([]byte(walkJump))
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRunner(cfg, flatWorld(cfg))
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	rep := r.Run(s)
	if rep.Ticks != 151 {
		t.Errorf("ticks = %d, want 151", rep.Ticks)
	}
	if rep.Final != motion.Idle {
		t.Errorf("final state = %v, want idle", rep.Final)
	}
	if rep.Position.Z >= 0 {
		t.Errorf("avatar did not move north: %+v", rep.Position)
	}
	if rep.Position.Y != 0 {
		t.Errorf("avatar not back on the ground: y = %v", rep.Position.Y)
	}

	var seq []motion.State
	for _, tr := range rep.Transitions {
		seq = append(seq, tr.To)
	}
	want := []motion.State{motion.Running, motion.Jumping}
	i := 0
	for _, s := range seq {
		if i < len(want) && s == want[i] {
			i++
		}
	}
	if i != len(want) {
		t.Errorf("transitions %v do not contain %v in order", seq, want)
	}
	for _, tr := range rep.Transitions {
		if tr.To == motion.Jumping && (tr.Tick < 30 || tr.Tick > 31) {
			t.Errorf("jumped at tick %d, want 30", tr.Tick)
		}
	}
	if rep.Clips == 0 {
		t.Error("rig never changed clip")
	}
}

func TestRunCameraYawTurnsMovement(t *testing.T) {
	cfg := config.Default()
	r, err := NewRunner(cfg, flatWorld(cfg))
	if err != nil {
		t.Fatal(err)
	}
	rep := r.Run(&Script{
		CameraYaw: 90,
		Steps:     []Step{{Ticks: 30, Hold: []motion.Action{motion.ActionMoveForward}}},
	})
	p := rep.Position
	if p.X >= -0.5 || p.Z < -0.01 || p.Z > 0.01 {
		t.Errorf("forward with camera at 90 degrees moved to %+v, want west", p)
	}
}
