// Package camera provides the third-person follow camera and the
// camera-relative movement mapping the avatar is steered with.
package camera

import (
	gomath "math"

	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/pkg/math"
)

// ThirdPersonCamera orbits a target on a horizontal and a vertical pivot
// with a zoomable arm.
type ThirdPersonCamera struct {
	// Camera orientation
	Yaw   float32 // Horizontal pivot rotation (radians)
	Pitch float32 // Vertical pivot rotation (radians)

	// Arm length
	Distance    float32
	MinDistance float32
	MaxDistance float32

	// Pitch limits (radians)
	MinPitch float32
	MaxPitch float32

	// Sensitivity
	MouseSensitivity float32
	ZoomStep         float32
}

// NewThirdPersonCamera creates a camera from config. Pitch limits are given
// in degrees.
func NewThirdPersonCamera(cfg config.CameraConfig) *ThirdPersonCamera {
	c := &ThirdPersonCamera{
		Distance:         cfg.Distance,
		MinDistance:      cfg.MinDistance,
		MaxDistance:      cfg.MaxDistance,
		MinPitch:         degToRad(cfg.MinPitch),
		MaxPitch:         degToRad(cfg.MaxPitch),
		MouseSensitivity: cfg.MouseSensitivity,
		ZoomStep:         cfg.ZoomStep,
	}
	c.Distance = math.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
	return c
}

// HandleMouse turns the pivots by a relative mouse motion in pixels.
func (c *ThirdPersonCamera) HandleMouse(deltaX, deltaY float32) {
	c.Yaw = math.WrapAngle(c.Yaw - deltaX*c.MouseSensitivity)
	c.Pitch = math.Clamp(c.Pitch-deltaY*c.MouseSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom moves the arm in by steps wheel notches (negative zooms out).
func (c *ThirdPersonCamera) HandleZoom(steps float32) {
	c.Distance = math.Clamp(c.Distance-steps*c.ZoomStep, c.MinDistance, c.MaxDistance)
}

// Relative maps a raw stick vector (X right, Y backward) into world space
// around the horizontal pivot. The result is normalized, or zero.
func (c *ThirdPersonCamera) Relative(raw math.Vec2) math.Vec3 {
	if raw.X == 0 && raw.Y == 0 {
		return math.Vec3{}
	}
	v := math.QuatFromAxisAngle(math.Up, c.Yaw).Rotate(math.Vec3{X: raw.X, Z: raw.Y})
	return v.Horizontal().Normalize()
}

// Position calculates the camera position for a target.
func (c *ThirdPersonCamera) Position(target math.Vec3) math.Vec3 {
	// Behind the target is +Z at yaw 0; looking up tilts the arm down.
	horizDist := c.Distance * float32(gomath.Cos(float64(c.Pitch)))
	offsetY := -c.Distance * float32(gomath.Sin(float64(c.Pitch)))
	offsetX := horizDist * float32(gomath.Sin(float64(c.Yaw)))
	offsetZ := horizDist * float32(gomath.Cos(float64(c.Yaw)))

	return math.Vec3{
		X: target.X + offsetX,
		Y: target.Y + offsetY,
		Z: target.Z + offsetZ,
	}
}

// ForwardDirection returns the camera's forward direction on the XZ plane.
func (c *ThirdPersonCamera) ForwardDirection() math.Vec3 {
	return math.Forward(c.Yaw)
}

func degToRad(deg float32) float32 {
	return deg * gomath.Pi / 180
}
