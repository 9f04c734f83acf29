// Package arena is a small kinematic physics world: static boxes, pushable
// dynamic props and one avatar body. It implements the motion collaborators
// the simulator and the sandbox run the avatar against.
package arena

import (
	"go.uber.org/zap"

	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/internal/logger"
	"github.com/Faultbox/motioncore/internal/motion"
	"github.com/Faultbox/motioncore/internal/prop"
	"github.com/Faultbox/motioncore/pkg/math"
)

const (
	// BodyRadius and BodyHeight size the avatar body.
	BodyRadius = 0.4
	BodyHeight = 2.0

	propGravity  = -20
	propFriction = 8
	spinDamping  = 2
	floorProbe   = 0.05
	debrisSize   = 0.3
	debrisMass   = 0.5
)

// Solid is a static box.
type Solid struct {
	Name string
	Box  Box
}

// World holds the level geometry, props and the avatar body.
type World struct {
	name   string
	spawn  math.Vec3
	yaw    float32
	body   *Body
	solids []*Solid
	props  []*Prop

	destructibles []*prop.Destructible
	propCfg       config.PropConfig

	touching map[*Prop]bool
	removed  int
}

// NewWorld builds a world from a level. Props marked destructible get a
// health pool from propCfg.
func NewWorld(level *LevelSpec, propCfg config.PropConfig) *World {
	w := &World{
		name:     level.Name,
		spawn:    level.Spawn.Vec3(),
		yaw:      level.Yaw,
		body:     NewBody(level.Spawn.Vec3(), BodyRadius, BodyHeight),
		propCfg:  propCfg,
		touching: make(map[*Prop]bool),
	}
	for _, s := range level.Solids {
		w.solids = append(w.solids, &Solid{Name: s.Name, Box: NewBox(s.Min.Vec3(), s.Max.Vec3())})
	}
	for _, ps := range level.Props {
		p := w.AddProp(ps.Name, ps.Center.Vec3(), ps.Size.Vec3(), ps.Mass)
		if ps.Destructible {
			d := prop.NewDestructible(ps.Name, propCfg, p, w)
			p.OnContact(d.OnContact)
			w.destructibles = append(w.destructibles, d)
		}
	}

	logger.Info("arena loaded",
		zap.String("level", w.name),
		zap.Int("solids", len(w.solids)),
		zap.Int("props", len(w.props)),
	)
	return w
}

func (w *World) Name() string                        { return w.name }
func (w *World) Spawn() math.Vec3                    { return w.spawn }
func (w *World) SpawnYaw() float32                   { return w.yaw }
func (w *World) Body() *Body                         { return w.body }
func (w *World) Solids() []*Solid                    { return w.solids }
func (w *World) Props() []*Prop                      { return w.props }
func (w *World) Destructibles() []*prop.Destructible { return w.destructibles }

// AddProp places a dynamic box in the world.
func (w *World) AddProp(name string, center, size math.Vec3, mass float32) *Prop {
	p := newProp(name, center, size, mass)
	w.props = append(w.props, p)
	return p
}

// SpawnDebris drops a small fragment at the given point.
func (w *World) SpawnDebris(at math.Vec3) prop.Debris {
	p := w.AddProp("debris", at, math.Vec3{X: debrisSize, Y: debrisSize, Z: debrisSize}, debrisMass)
	p.debris = true
	return p
}

// Physics implementation.

func (w *World) Position() math.Vec3     { return w.body.pos }
func (w *World) SetPosition(p math.Vec3) { w.body.pos = p }
func (w *World) Self() any               { return w.body }

// MoveAndSlide moves the body one axis at a time, stopping each axis at the
// first box it would enter. Horizontal axes resolve before the vertical one.
func (w *World) MoveAndSlide(v math.Vec3, dt float32) motion.MoveResult {
	res := motion.MoveResult{FloorNormal: math.Up}
	touched := make(map[*Prop]bool)

	collide := func(n math.Vec3, collider any) {
		res.Collisions = append(res.Collisions, motion.Collision{Normal: n, Collider: collider})
		if p, ok := collider.(*Prop); ok {
			touched[p] = true
		}
	}

	before := w.body.Box()
	w.body.pos.X += v.X * dt
	if n, c, ok := w.resolve(0, v.X, before); ok {
		v.X = 0
		collide(n, c)
	}

	before = w.body.Box()
	w.body.pos.Z += v.Z * dt
	if n, c, ok := w.resolve(2, v.Z, before); ok {
		v.Z = 0
		collide(n, c)
	}

	before = w.body.Box()
	w.body.pos.Y += v.Y * dt
	if n, c, ok := w.resolve(1, v.Y, before); ok {
		v.Y = 0
		collide(n, c)
		if n.Y > 0 {
			res.OnFloor = true
		}
	}
	if !res.OnFloor && v.Y <= 0 {
		res.OnFloor = w.grounded()
	}

	for p := range touched {
		if !w.touching[p] {
			p.touched(w.body)
		}
	}
	w.touching = touched

	res.Velocity = v
	return res
}

// resolve pushes the body out of the first blocker it entered along axis and
// reports the contact normal. Blockers the body already overlapped before
// the move are ignored.
func (w *World) resolve(axis int, vel float32, before Box) (math.Vec3, any, bool) {
	if vel == 0 {
		return math.Vec3{}, nil, false
	}
	box := w.body.Box()
	for _, c := range w.blockers() {
		other := c.box()
		if !box.Overlaps(other) || before.Overlaps(other) {
			continue
		}
		var n math.Vec3
		switch axis {
		case 0:
			if vel > 0 {
				w.body.pos.X = other.Min.X - w.body.radius
				n.X = -1
			} else {
				w.body.pos.X = other.Max.X + w.body.radius
				n.X = 1
			}
		case 1:
			if vel > 0 {
				w.body.pos.Y = other.Min.Y - w.body.height
				n.Y = -1
			} else {
				w.body.pos.Y = other.Max.Y
				n.Y = 1
			}
		case 2:
			if vel > 0 {
				w.body.pos.Z = other.Min.Z - w.body.radius
				n.Z = -1
			} else {
				w.body.pos.Z = other.Max.Z + w.body.radius
				n.Z = 1
			}
		}
		return n, c.handle, true
	}
	return math.Vec3{}, nil, false
}

// grounded probes just below the feet, ignoring anything the body is
// already inside.
func (w *World) grounded() bool {
	box := w.body.Box()
	probe := box
	probe.Max.Y = probe.Min.Y
	probe.Min.Y -= floorProbe
	for _, c := range w.blockers() {
		other := c.box()
		if probe.Overlaps(other) && !box.Overlaps(other) {
			return true
		}
	}
	return false
}

type blocker struct {
	box    func() Box
	handle any
}

func (w *World) blockers() []blocker {
	out := make([]blocker, 0, len(w.solids)+len(w.props))
	for _, s := range w.solids {
		out = append(out, blocker{box: func() Box { return s.Box }, handle: s})
	}
	for _, p := range w.props {
		if p.debris || p.removed {
			continue
		}
		out = append(out, blocker{box: p.Box, handle: p})
	}
	return out
}

// IntersectRay returns the nearest solid or prop hit along the segment.
func (w *World) IntersectRay(q motion.RayQuery) (motion.RayHit, bool) {
	d := q.To.Sub(q.From)
	length := d.Length()
	if length < math.Epsilon {
		return motion.RayHit{}, false
	}
	ray := Ray{Origin: q.From, Direction: d.Scale(1 / length)}

	var best motion.RayHit
	nearest := length
	found := false
	for _, c := range w.blockers() {
		if q.Exclude != nil && c.handle == q.Exclude {
			continue
		}
		t, n, ok := ray.IntersectBox(c.box())
		if !ok || t > nearest {
			continue
		}
		nearest = t
		best = motion.RayHit{Position: ray.At(t), Normal: n, Collider: c.handle}
		found = true
	}
	return best, found
}

// Step advances props and destructibles by dt and drops removed props.
func (w *World) Step(dt float32) {
	for _, d := range w.destructibles {
		d.Update(dt)
	}

	live := w.props[:0]
	for _, p := range w.props {
		if p.removed {
			delete(w.touching, p)
			w.removed++
			logger.For(logger.CategoryProp).Debug("prop removed", zap.String("prop", p.Name))
			continue
		}
		w.stepProp(p, dt)
		live = append(live, p)
	}
	for i := len(live); i < len(w.props); i++ {
		w.props[i] = nil
	}
	w.props = live
}

// RemovedCount is the number of props taken out of the world so far.
func (w *World) RemovedCount() int { return w.removed }

func (w *World) stepProp(p *Prop, dt float32) {
	p.vel.Y += propGravity * dt
	if p.grounded {
		h := p.vel.Horizontal().MoveToward(math.Vec3{}, propFriction*dt)
		p.vel = math.Vec3{X: h.X, Y: p.vel.Y, Z: h.Z}
	}
	p.rot = p.rot.Add(p.spin.Scale(dt))
	p.spin = p.spin.MoveToward(math.Vec3{}, spinDamping*dt)

	p.pos.X += p.vel.X * dt
	if s := w.solidHit(p); s != nil {
		p.pos.X -= p.vel.X * dt
		p.vel.X = 0
	}
	p.pos.Z += p.vel.Z * dt
	if s := w.solidHit(p); s != nil {
		p.pos.Z -= p.vel.Z * dt
		p.vel.Z = 0
	}

	p.grounded = false
	p.pos.Y += p.vel.Y * dt
	if s := w.solidHit(p); s != nil {
		if p.vel.Y < 0 {
			p.pos.Y = s.Box.Max.Y + p.half.Y
			p.grounded = true
		} else {
			p.pos.Y = s.Box.Min.Y - p.half.Y
		}
		p.vel.Y = 0
	}
}

func (w *World) solidHit(p *Prop) *Solid {
	box := p.Box()
	for _, s := range w.solids {
		if box.Overlaps(s.Box) {
			return s
		}
	}
	return nil
}
