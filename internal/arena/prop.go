package arena

import "github.com/Faultbox/motioncore/pkg/math"

// Prop is a dynamic box the avatar can push. Debris props are small fragments
// that neither block the avatar nor answer ray queries.
type Prop struct {
	Name string

	pos     math.Vec3
	half    math.Vec3
	vel     math.Vec3
	spin    math.Vec3
	rot     math.Vec3
	mass    float32
	debris  bool
	removed bool

	grounded  bool
	onContact []func(other any)
}

func newProp(name string, center, size math.Vec3, mass float32) *Prop {
	if mass <= 0 {
		mass = 1
	}
	return &Prop{Name: name, pos: center, half: size.Scale(0.5), mass: mass}
}

// Box returns the prop's world bounds.
func (p *Prop) Box() Box { return BoxAround(p.pos, p.half) }

func (p *Prop) Position() math.Vec3 { return p.pos }
func (p *Prop) Velocity() math.Vec3 { return p.vel }
func (p *Prop) Spin() math.Vec3     { return p.spin }

// Rotation is the accumulated Euler rotation in radians.
func (p *Prop) Rotation() math.Vec3 { return p.rot }

func (p *Prop) Debris() bool  { return p.debris }
func (p *Prop) Removed() bool { return p.removed }

// ApplyCentralImpulse changes velocity by impulse/mass.
func (p *Prop) ApplyCentralImpulse(impulse math.Vec3) {
	p.vel = p.vel.Add(impulse.Scale(1 / p.mass))
}

// ApplyTorqueImpulse changes angular velocity by torque/mass.
func (p *Prop) ApplyTorqueImpulse(torque math.Vec3) {
	p.spin = p.spin.Add(torque.Scale(1 / p.mass))
}

// OnContact registers fn to run when the avatar first touches the prop.
func (p *Prop) OnContact(fn func(other any)) {
	p.onContact = append(p.onContact, fn)
}

// Remove takes the prop out of the world at the end of the next step.
func (p *Prop) Remove() { p.removed = true }

func (p *Prop) touched(other any) {
	for _, fn := range p.onContact {
		fn(other)
	}
}
