package prop

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/internal/logger"
	"github.com/Faultbox/motioncore/pkg/math"
)

// Body is the physics body a destructible lives in.
type Body interface {
	Position() math.Vec3
	Remove()
}

// Debris is a spawned fragment.
type Debris interface {
	ApplyCentralImpulse(impulse math.Vec3)
	ApplyTorqueImpulse(torque math.Vec3)
}

// Spawner creates debris fragments in the world.
type Spawner interface {
	SpawnDebris(at math.Vec3) Debris
}

// Destructible takes damage on contact and breaks into debris when empty.
type Destructible struct {
	cfg     config.PropConfig
	name    string
	body    Body
	spawner Spawner
	health  *Health
	rng     *rand.Rand
	broken  bool
}

// NewDestructible wires a health pool to body. spawner may be nil, in which
// case the prop just disappears.
func NewDestructible(name string, cfg config.PropConfig, body Body, spawner Spawner) *Destructible {
	d := &Destructible{
		cfg:     cfg,
		name:    name,
		body:    body,
		spawner: spawner,
		health:  NewHealth(cfg),
		rng:     rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
	d.health.OnChanged(func(current, max float32) {
		logger.For(logger.CategoryProp).Debug("prop damaged",
			zap.String("prop", d.name),
			zap.Float32("health", current),
			zap.Float32("max", max),
		)
	})
	d.health.OnEmpty(d.destroy)
	return d
}

func (d *Destructible) Name() string    { return d.name }
func (d *Destructible) Health() *Health { return d.health }
func (d *Destructible) Broken() bool    { return d.broken }

// OnContact applies contact damage. other is whatever touched the prop.
func (d *Destructible) OnContact(other any) {
	if d.broken {
		return
	}
	d.health.TakeDamage(d.cfg.DamagePerContact)
}

// Update advances regeneration.
func (d *Destructible) Update(dt float32) {
	if !d.broken {
		d.health.Update(dt)
	}
}

func (d *Destructible) destroy() {
	d.broken = true
	at := d.body.Position()
	if d.spawner != nil {
		for i := 0; i < d.cfg.DebrisCount; i++ {
			debris := d.spawner.SpawnDebris(at)
			if debris == nil {
				continue
			}
			debris.ApplyCentralImpulse(d.debrisImpulse())
			debris.ApplyTorqueImpulse(d.debrisTorque())
		}
	}
	d.body.Remove()

	logger.For(logger.CategoryProp).Debug("prop destroyed",
		zap.String("prop", d.name),
		zap.Int("debris", d.cfg.DebrisCount),
	)
}

// debrisImpulse throws a fragment mostly upward with a little horizontal
// scatter.
func (d *Destructible) debrisImpulse() math.Vec3 {
	return math.Vec3{
		X: d.between(-1, 1),
		Y: d.between(15, 25),
		Z: d.between(-1, 1),
	}.Scale(d.cfg.DebrisImpulse)
}

func (d *Destructible) debrisTorque() math.Vec3 {
	return math.Vec3{X: d.between(-2, 2), Y: d.between(-2, 2), Z: d.between(-2, 2)}
}

func (d *Destructible) between(lo, hi float32) float32 {
	return lo + d.rng.Float32()*(hi-lo)
}
