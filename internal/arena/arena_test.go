package arena

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/internal/motion"
	"github.com/Faultbox/motioncore/pkg/math"
)

func newTestWorld(spawn math.Vec3, solids []SolidSpec, props ...PropSpec) *World {
	level := &LevelSpec{
		Name:   "test",
		Spawn:  Vec3Spec{spawn.X, spawn.Y, spawn.Z},
		Solids: append([]SolidSpec{{Name: "ground", Min: Vec3Spec{-20, -1, -20}, Max: Vec3Spec{20, 0, 20}}}, solids...),
		Props:  props,
	}
	return NewWorld(level, config.Default().Prop)
}

func TestBoxOverlaps(t *testing.T) {
	a := NewBox(math.Vec3{X: 1, Y: 1, Z: 1}, math.Vec3{})
	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"overlapping", NewBox(math.Vec3{X: 0.5}, math.Vec3{X: 2, Y: 2, Z: 2}), true},
		{"touching face", NewBox(math.Vec3{X: 1}, math.Vec3{X: 2, Y: 1, Z: 1}), false},
		{"apart", NewBox(math.Vec3{X: 3}, math.Vec3{X: 4, Y: 1, Z: 1}), false},
		{"inside", NewBox(math.Vec3{X: 0.2, Y: 0.2, Z: 0.2}, math.Vec3{X: 0.8, Y: 0.8, Z: 0.8}), true},
	}
	for _, tt := range tests {
		if got := a.Overlaps(tt.b); got != tt.want {
			t.Errorf("%s: Overlaps = %v, want %v", tt.name, got, tt.want)
		}
	}
	if a.Min != (math.Vec3{}) || a.Max != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("NewBox did not order corners: %+v", a)
	}
}

func TestRayIntersectBox(t *testing.T) {
	box := NewBox(math.Vec3{X: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1})
	tests := []struct {
		name   string
		ray    Ray
		hit    bool
		t      float32
		normal math.Vec3
	}{
		{"front face", Ray{math.Vec3{Y: 0.5, Z: -5}, math.Vec3{Z: 1}}, true, 4, math.Vec3{Z: -1}},
		{"top face", Ray{math.Vec3{Y: 5}, math.Vec3{Y: -1}}, true, 4, math.Vec3{Y: 1}},
		{"side face", Ray{math.Vec3{X: 6, Y: 0.5}, math.Vec3{X: -1}}, true, 5, math.Vec3{X: 1}},
		{"miss", Ray{math.Vec3{X: 5, Y: 0.5, Z: -5}, math.Vec3{Z: 1}}, false, 0, math.Vec3{}},
		{"behind", Ray{math.Vec3{Y: 0.5, Z: 5}, math.Vec3{Z: 1}}, false, 0, math.Vec3{}},
		{"inside", Ray{math.Vec3{Y: 0.5}, math.Vec3{X: 1}}, true, 0, math.Vec3{X: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, n, hit := tt.ray.IntersectBox(box)
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if !hit {
				return
			}
			if d != tt.t || n != tt.normal {
				t.Errorf("t = %v n = %+v, want %v %+v", d, n, tt.t, tt.normal)
			}
		})
	}
}

func TestMoveAndSlideLandsOnFloor(t *testing.T) {
	w := newTestWorld(math.Vec3{Y: 1}, nil)

	res := w.MoveAndSlide(math.Vec3{Y: -10}, 0.2)
	if !res.OnFloor || res.Velocity.Y != 0 || w.Position().Y != 0 {
		t.Fatalf("landing: %+v at %+v", res, w.Position())
	}
	if len(res.Collisions) != 1 || res.Collisions[0].Normal != math.Up {
		t.Errorf("collisions = %+v", res.Collisions)
	}

	res = w.MoveAndSlide(math.Vec3{}, 0.2)
	if !res.OnFloor {
		t.Error("standing still is not on floor")
	}

	w.SetPosition(math.Vec3{Y: 3})
	if res := w.MoveAndSlide(math.Vec3{}, 0.2); res.OnFloor {
		t.Error("floating body reported on floor")
	}
}

func TestMoveAndSlideStopsAtWall(t *testing.T) {
	w := newTestWorld(math.Vec3{}, []SolidSpec{{Name: "wall", Min: Vec3Spec{2, 0, -5}, Max: Vec3Spec{3, 3, 5}}})

	res := w.MoveAndSlide(math.Vec3{X: 20, Z: 1}, 0.1)
	if got := w.Position().X; got != 2-BodyRadius {
		t.Errorf("x = %v, want %v", got, 2-BodyRadius)
	}
	if res.Velocity.X != 0 || res.Velocity.Z != 1 {
		t.Errorf("velocity = %+v, want the wall axis cleared only", res.Velocity)
	}
	if len(res.Collisions) != 1 {
		t.Fatalf("collisions = %+v", res.Collisions)
	}
	c := res.Collisions[0]
	if c.Normal != (math.Vec3{X: -1}) {
		t.Errorf("normal = %+v", c.Normal)
	}
	if s, ok := c.Collider.(*Solid); !ok || s.Name != "wall" {
		t.Errorf("collider = %#v", c.Collider)
	}
	if !res.OnFloor {
		t.Error("lost the floor against a wall")
	}
}

func TestMoveAndSlideIgnoresStartingOverlap(t *testing.T) {
	w := newTestWorld(math.Vec3{X: 2.2, Y: 1}, []SolidSpec{{Name: "wall", Min: Vec3Spec{2, 0, -5}, Max: Vec3Spec{3, 3, 5}}})

	res := w.MoveAndSlide(math.Vec3{Y: 5}, 0.1)
	if w.Position().Y <= 1 || len(res.Collisions) != 0 {
		t.Errorf("body inside a wall was ejected: %+v %+v", w.Position(), res.Collisions)
	}
	if res.OnFloor {
		t.Error("wall the body is inside counted as floor")
	}
}

func TestPropContactAndPushable(t *testing.T) {
	crate := PropSpec{Name: "crate", Center: Vec3Spec{2, 0.5, 0}, Size: Vec3Spec{1, 1, 1}, Mass: 2}
	w := newTestWorld(math.Vec3{X: 1}, nil, crate)
	p := w.Props()[0]

	contacts := 0
	p.OnContact(func(other any) {
		if other != w.Self() {
			t.Errorf("contact from %#v", other)
		}
		contacts++
	})

	res := w.MoveAndSlide(math.Vec3{X: 2}, 0.1)
	if len(res.Collisions) == 0 {
		t.Fatal("no collision with crate")
	}
	if _, ok := res.Collisions[0].Collider.(motion.Pushable); !ok {
		t.Errorf("crate is not pushable: %#v", res.Collisions[0].Collider)
	}

	// Pressing against it is the same contact.
	w.MoveAndSlide(math.Vec3{X: 2}, 0.1)
	if contacts != 1 {
		t.Fatalf("contacts = %d, want 1", contacts)
	}

	w.MoveAndSlide(math.Vec3{X: -3}, 0.1)
	w.MoveAndSlide(math.Vec3{X: 5}, 0.1)
	if contacts != 2 {
		t.Errorf("contacts = %d after touching again, want 2", contacts)
	}
}

func TestIntersectRay(t *testing.T) {
	w := newTestWorld(math.Vec3{}, []SolidSpec{
		{Name: "near", Min: Vec3Spec{-1, 0, -4}, Max: Vec3Spec{1, 2, -3}},
		{Name: "far", Min: Vec3Spec{-1, 0, -8}, Max: Vec3Spec{1, 2, -7}},
	})
	from, to := math.Vec3{Y: 1}, math.Vec3{Y: 1, Z: -10}

	hit, ok := w.IntersectRay(motion.RayQuery{From: from, To: to, Exclude: w.Self()})
	if !ok || hit.Collider.(*Solid).Name != "near" {
		t.Fatalf("hit = %+v %v, want near", hit, ok)
	}
	if hit.Position != (math.Vec3{Y: 1, Z: -3}) || hit.Normal != (math.Vec3{Z: 1}) {
		t.Errorf("hit = %+v", hit)
	}

	near := w.Solids()[1]
	hit, ok = w.IntersectRay(motion.RayQuery{From: from, To: to, Exclude: near})
	if !ok || hit.Collider.(*Solid).Name != "far" {
		t.Errorf("excluded hit = %+v %v, want far", hit, ok)
	}

	if _, ok := w.IntersectRay(motion.RayQuery{From: from, To: math.Vec3{Y: 1, Z: -2}}); ok {
		t.Error("hit beyond the segment end")
	}
}

func TestStepPropSlidesAndStops(t *testing.T) {
	crate := PropSpec{Name: "crate", Center: Vec3Spec{0, 0.5, 5}, Size: Vec3Spec{1, 1, 1}, Mass: 2}
	w := newTestWorld(math.Vec3{}, nil, crate)
	p := w.Props()[0]

	p.ApplyCentralImpulse(math.Vec3{X: 4})
	if p.Velocity().X != 2 {
		t.Fatalf("velocity = %+v, want impulse/mass", p.Velocity())
	}
	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60)
	}

	if !p.Velocity().Horizontal().IsZero() {
		t.Errorf("still sliding: %+v", p.Velocity())
	}
	if x := p.Position().X; x <= 0 || x >= 1 {
		t.Errorf("x = %v, want a short slide", x)
	}
	if y := p.Position().Y; y != 0.5 {
		t.Errorf("y = %v, want resting on the ground", y)
	}
}

func TestDestructibleCrateBreaks(t *testing.T) {
	crate := PropSpec{Name: "crate", Center: Vec3Spec{2, 0.5, 0}, Size: Vec3Spec{1, 1, 1}, Mass: 2, Destructible: true}
	w := newTestWorld(math.Vec3{X: 1.1}, nil, crate)
	cfg := config.Default().Prop
	d := w.Destructibles()[0]

	hits := int(cfg.MaxHealth / cfg.DamagePerContact)
	for i := 0; i < hits; i++ {
		w.MoveAndSlide(math.Vec3{X: -3}, 0.1)
		w.MoveAndSlide(math.Vec3{X: 5}, 0.1)
	}
	if !d.Broken() {
		t.Fatalf("crate survived %d contacts: health %v", hits, d.Health().Current())
	}

	w.Step(1.0 / 60)
	if w.RemovedCount() != 1 {
		t.Errorf("removed = %d, want 1", w.RemovedCount())
	}
	if len(w.Props()) != cfg.DebrisCount {
		t.Fatalf("props = %d, want %d debris", len(w.Props()), cfg.DebrisCount)
	}
	for _, p := range w.Props() {
		if !p.Debris() || p.Velocity().Y <= 0 {
			t.Errorf("debris %+v not thrown upward", p)
		}
	}

	// Debris does not block the avatar.
	res := w.MoveAndSlide(math.Vec3{X: 10}, 0.1)
	if len(res.Collisions) != 0 {
		t.Errorf("collisions after break = %+v", res.Collisions)
	}
}

func TestLoadLevel(t *testing.T) {
	spec, err := LoadLevel("")
	if err != nil {
		t.Fatalf("LoadLevel(default): %v", err)
	}
	if spec.Name != DefaultLevel || len(spec.Solids) == 0 || len(spec.Props) == 0 {
		t.Errorf("built-in level = %+v", spec)
	}

	path := filepath.Join(t.TempDir(), "tiny.yaml")
	data := []byte("name: tiny\nspawn: [1, 2, 3]\nsolids:\n  - name: ground\n    min: [-1, -1, -1]\n    max: [1, 0, 1]\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	spec, err = LoadLevel(path)
	if err != nil {
		t.Fatalf("LoadLevel(file): %v", err)
	}
	if spec.Name != "tiny" || spec.Spawn.Vec3() != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("file level = %+v", spec)
	}

	if _, err := ParseLevel([]byte("name: void\n")); !errors.Is(err, ErrEmptyLevel) {
		t.Errorf("empty level err = %v, want ErrEmptyLevel", err)
	}
	if _, err := ParseLevel([]byte("solids: {")); err == nil {
		t.Error("malformed level parsed")
	}
	if _, err := LoadLevel("no_such_level"); err == nil {
		t.Error("missing level loaded")
	}
}
