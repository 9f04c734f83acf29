package arena

import (
	gomath "math"

	"github.com/Faultbox/motioncore/pkg/math"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Min math.Vec3
	Max math.Vec3
}

// NewBox creates a box from two corners in any order.
func NewBox(a, b math.Vec3) Box {
	box := Box{Min: a, Max: b}
	if box.Min.X > box.Max.X {
		box.Min.X, box.Max.X = box.Max.X, box.Min.X
	}
	if box.Min.Y > box.Max.Y {
		box.Min.Y, box.Max.Y = box.Max.Y, box.Min.Y
	}
	if box.Min.Z > box.Max.Z {
		box.Min.Z, box.Max.Z = box.Max.Z, box.Min.Z
	}
	return box
}

// BoxAround creates a box from its center and half extents.
func BoxAround(center, half math.Vec3) Box {
	return NewBox(center.Sub(half), center.Add(half))
}

// Center returns the midpoint of the box.
func (b Box) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents.
func (b Box) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Translate returns the box moved by d.
func (b Box) Translate(d math.Vec3) Box {
	return Box{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Overlaps reports whether the interiors of two boxes intersect. Touching
// faces do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.Min.X < o.Max.X && b.Max.X > o.Min.X &&
		b.Min.Y < o.Max.Y && b.Max.Y > o.Min.Y &&
		b.Min.Z < o.Max.Z && b.Max.Z > o.Min.Z
}

// Contains reports whether p is inside or on the box.
func (b Box) Contains(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Ray is a half-line with a normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectBox runs the slab test against box. It returns the entry distance
// and the normal of the face entered. A ray starting inside the box hits it
// at distance zero, facing back along the ray.
func (r Ray) IntersectBox(box Box) (t float32, normal math.Vec3, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)
	entry := -1

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, math.Vec3{}, false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			entry = i
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, math.Vec3{}, false
	}
	if tmin < 0 || entry < 0 {
		return 0, r.Direction.Neg(), true
	}

	var n [3]float32
	if dir[entry] > 0 {
		n[entry] = -1
	} else {
		n[entry] = 1
	}
	return tmin, math.Vec3{X: n[0], Y: n[1], Z: n[2]}, true
}
