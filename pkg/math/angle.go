package math

import "math"

// Epsilon is the tolerance used by approximate comparisons.
const Epsilon = 1e-5

// Abs returns |x|.
func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Approach moves from toward to by at most delta.
func Approach(from, to, delta float32) float32 {
	if Abs(to-from) <= delta {
		return to
	}
	if to > from {
		return from + delta
	}
	return from - delta
}

// Pow returns x**y.
func Pow(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}

// Sqrt returns the square root of x.
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// WrapAngle wraps an angle to (-π, π].
func WrapAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// LerpAngle interpolates between two angles along the shortest arc.
// weight is clamped to [0, 1].
func LerpAngle(from, to, weight float32) float32 {
	weight = Clamp(weight, 0, 1)
	return WrapAngle(from + WrapAngle(to-from)*weight)
}

// YawFromDirection returns the yaw that makes Forward point along dir.
// Forward at yaw 0 is -Z.
func YawFromDirection(dir Vec3) float32 {
	return float32(math.Atan2(float64(-dir.X), float64(-dir.Z)))
}

// Forward returns the horizontal unit facing vector for a yaw.
func Forward(yaw float32) Vec3 {
	s, c := math.Sincos(float64(yaw))
	return Vec3{X: float32(-s), Y: 0, Z: float32(-c)}
}
