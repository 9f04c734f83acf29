package motion

import (
	"testing"

	"github.com/Faultbox/motioncore/pkg/math"
)

func TestActionLatchEdges(t *testing.T) {
	var l ActionLatch

	l.Set(ActionJump, true)
	f := l.Frame(math.Vec3{})
	if !f.JustPressed(ActionJump) || !f.Held(ActionJump) {
		t.Fatal("first frame should press and hold jump")
	}

	l.Set(ActionJump, true)
	f = l.Frame(math.Vec3{})
	if f.JustPressed(ActionJump) || !f.Held(ActionJump) {
		t.Fatal("second frame should hold without a new edge")
	}

	l.Set(ActionJump, false)
	f = l.Frame(math.Vec3{})
	if !f.JustReleased(ActionJump) || f.Held(ActionJump) {
		t.Fatal("third frame should release jump")
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame(math.Vec3{X: 3, Y: 7, Z: 4}).WithPress(ActionDash).WithRelease(ActionJump)

	if !approx(f.Move().Length(), 1, 1e-5) || f.Move().Y != 0 {
		t.Errorf("move not flattened and normalized: %+v", f.Move())
	}
	if !f.JustPressed(ActionDash) || !f.Held(ActionDash) {
		t.Error("dash press missing")
	}
	if !f.JustReleased(ActionJump) || f.Held(ActionJump) {
		t.Error("jump release missing")
	}
	if f.JustPressed(ActionAttack) {
		t.Error("attack should be untouched")
	}
}

func TestActionText(t *testing.T) {
	var a Action
	if err := a.UnmarshalText([]byte("move_left")); err != nil || a != ActionMoveLeft {
		t.Errorf("got %v, %v", a, err)
	}
	if err := a.UnmarshalText([]byte("fly")); err == nil {
		t.Error("expected error")
	}
}

func TestWithMoveKeepsEdges(t *testing.T) {
	var l ActionLatch
	l.Set(ActionMoveForward, true)
	l.Set(ActionJump, true)
	f := l.Frame(math.Vec3{})

	raw := RawMove(f)
	if raw.X != 0 || raw.Y != -1 {
		t.Fatalf("RawMove = %+v, want forward", raw)
	}
	f = f.WithMove(math.Vec3{X: 2, Y: 1})
	if f.Move() != (math.Vec3{X: 1}) {
		t.Errorf("move = %+v, want flattened unit X", f.Move())
	}
	if !f.JustPressed(ActionJump) || !f.Held(ActionMoveForward) {
		t.Error("WithMove dropped the action edges")
	}
}

func TestActions(t *testing.T) {
	all := Actions()
	if len(all) != int(actionCount) || all[0] != ActionJump || all[len(all)-1] != ActionMoveBackward {
		t.Errorf("Actions = %v", all)
	}
}
