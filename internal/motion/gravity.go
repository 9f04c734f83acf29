package motion

// GravityProfile is a jump arc expressed as launch velocity and the
// accelerations that produce it. Designers tune height and times; the
// accelerations follow.
type GravityProfile struct {
	LaunchVelocity float32
	RiseGravity    float32
	FallGravity    float32
}

// NewGravityProfile derives a profile that peaks at height after timeToPeak
// seconds and falls back down in timeToDescent seconds. Gravities are
// negative (downward).
func NewGravityProfile(height, timeToPeak, timeToDescent float32) GravityProfile {
	if timeToPeak <= 0 || timeToDescent <= 0 {
		return GravityProfile{}
	}
	return GravityProfile{
		LaunchVelocity: 2 * height / timeToPeak,
		RiseGravity:    -2 * height / (timeToPeak * timeToPeak),
		FallGravity:    -2 * height / (timeToDescent * timeToDescent),
	}
}

// At returns the gravity for the current vertical velocity: rise gravity
// while moving up, the steeper fall gravity otherwise.
func (p GravityProfile) At(verticalVelocity float32) float32 {
	if verticalVelocity > 0 {
		return p.RiseGravity
	}
	return p.FallGravity
}
