package arena

import "github.com/Faultbox/motioncore/pkg/math"

// Body is the avatar's kinematic capsule, approximated by an upright box
// whose base sits at the feet position. It is also the avatar's Shape and
// Mesh collaborator.
type Body struct {
	pos    math.Vec3
	radius float32
	height float32
	scale  math.Vec3
}

// NewBody creates a body standing at feet.
func NewBody(feet math.Vec3, radius, height float32) *Body {
	return &Body{
		pos:    feet,
		radius: radius,
		height: height,
		scale:  math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// Box returns the body's world bounds.
func (b *Body) Box() Box {
	return Box{
		Min: math.Vec3{X: b.pos.X - b.radius, Y: b.pos.Y, Z: b.pos.Z - b.radius},
		Max: math.Vec3{X: b.pos.X + b.radius, Y: b.pos.Y + b.height, Z: b.pos.Z + b.radius},
	}
}

func (b *Body) Position() math.Vec3 { return b.pos }
func (b *Body) Radius() float32     { return b.radius }

func (b *Body) SetCollisionHeight(h float32) { b.height = h }
func (b *Body) CollisionHeight() float32     { return b.height }

func (b *Body) SetMeshScale(s math.Vec3) { b.scale = s }
func (b *Body) MeshScale() math.Vec3     { return b.scale }
