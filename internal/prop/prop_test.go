package prop

import (
	"testing"

	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/pkg/math"
)

func TestHealthDamageAndHeal(t *testing.T) {
	h := NewHealth(config.Default().Prop)

	var changes []float32
	empties := 0
	h.OnChanged(func(current, _ float32) { changes = append(changes, current) })
	h.OnEmpty(func() { empties++ })

	h.TakeDamage(30)
	h.Heal(10)
	h.Heal(500)
	h.TakeDamage(0)
	h.TakeDamage(-5)

	want := []float32{70, 80, 100}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d = %v, want %v", i, changes[i], want[i])
		}
	}

	h.TakeDamage(250)
	h.TakeDamage(10)
	if h.Current() != 0 || !h.Empty() {
		t.Errorf("current = %v, want 0", h.Current())
	}
	if empties != 1 {
		t.Errorf("empty fired %d times, want 1", empties)
	}

	h.Heal(50)
	if h.Current() != 0 {
		t.Errorf("empty pool healed to %v", h.Current())
	}
}

func TestHealthDisabled(t *testing.T) {
	h := NewHealth(config.Default().Prop)
	h.Enabled = false

	h.TakeDamage(40)
	if h.Current() != h.Max() {
		t.Errorf("disabled health took damage: %v", h.Current())
	}
}

func TestHealthRegen(t *testing.T) {
	cfg := config.Default().Prop
	cfg.RegenEnabled = true
	cfg.RegenRate = 1
	cfg.RegenPotency = 5

	tests := []struct {
		name    string
		damage  float32
		elapsed float32
		want    float32
	}{
		{"under one period", 20, 0.5, 80},
		{"one period", 20, 1.0, 85},
		{"several periods", 20, 3.5, 95},
		{"capped at max", 20, 10, 100},
		{"empty stays empty", 100, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealth(cfg)
			h.TakeDamage(tt.damage)
			for e := float32(0); e < tt.elapsed-1e-3; e += 0.25 {
				h.Update(0.25)
			}
			if h.Current() != tt.want {
				t.Errorf("current = %v, want %v", h.Current(), tt.want)
			}
		})
	}
}

type fakeBody struct {
	pos     math.Vec3
	removed int
}

func (b *fakeBody) Position() math.Vec3 { return b.pos }
func (b *fakeBody) Remove()             { b.removed++ }

type fakeDebris struct {
	at      math.Vec3
	impulse math.Vec3
	torque  math.Vec3
}

func (d *fakeDebris) ApplyCentralImpulse(i math.Vec3) { d.impulse = d.impulse.Add(i) }
func (d *fakeDebris) ApplyTorqueImpulse(t math.Vec3)  { d.torque = d.torque.Add(t) }

type fakeSpawner struct{ spawned []*fakeDebris }

func (s *fakeSpawner) SpawnDebris(at math.Vec3) Debris {
	d := &fakeDebris{at: at}
	s.spawned = append(s.spawned, d)
	return d
}

func TestDestructibleBreaks(t *testing.T) {
	cfg := config.Default().Prop
	body := &fakeBody{pos: math.Vec3{X: 3, Y: 1, Z: -2}}
	spawner := &fakeSpawner{}
	d := NewDestructible("crate", cfg, body, spawner)

	contacts := int(cfg.MaxHealth / cfg.DamagePerContact)
	for i := 0; i < contacts-1; i++ {
		d.OnContact(nil)
	}
	if d.Broken() || body.removed != 0 {
		t.Fatalf("broke after %d contacts", contacts-1)
	}

	d.OnContact(nil)
	if !d.Broken() || body.removed != 1 {
		t.Fatalf("broken = %v, removed = %d", d.Broken(), body.removed)
	}
	if len(spawner.spawned) != cfg.DebrisCount {
		t.Fatalf("debris = %d, want %d", len(spawner.spawned), cfg.DebrisCount)
	}
	for i, db := range spawner.spawned {
		if db.at != body.pos {
			t.Errorf("debris %d spawned at %+v", i, db.at)
		}
		imp := db.impulse.Scale(1 / cfg.DebrisImpulse)
		if imp.Y < 15 || imp.Y > 25 || math.Abs(imp.X) > 1 || math.Abs(imp.Z) > 1 {
			t.Errorf("debris %d impulse %+v out of range", i, db.impulse)
		}
		if math.Abs(db.torque.X) > 2 || math.Abs(db.torque.Y) > 2 || math.Abs(db.torque.Z) > 2 {
			t.Errorf("debris %d torque %+v out of range", i, db.torque)
		}
	}

	d.OnContact(nil)
	if body.removed != 1 || len(spawner.spawned) != cfg.DebrisCount {
		t.Error("broken prop reacted to another contact")
	}
}

func TestDestructibleSeeded(t *testing.T) {
	cfg := config.Default().Prop
	cfg.Seed = 42

	run := func() []math.Vec3 {
		s := &fakeSpawner{}
		d := NewDestructible("crate", cfg, &fakeBody{}, s)
		d.Health().TakeDamage(cfg.MaxHealth)
		out := make([]math.Vec3, 0, len(s.spawned))
		for _, db := range s.spawned {
			out = append(out, db.impulse)
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("debris %d differs across runs with the same seed: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestDestructibleWithoutSpawner(t *testing.T) {
	body := &fakeBody{}
	d := NewDestructible("barrel", config.Default().Prop, body, nil)
	d.Health().TakeDamage(1000)
	if body.removed != 1 {
		t.Errorf("removed = %d, want 1", body.removed)
	}
}
