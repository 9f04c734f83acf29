package motion

import "github.com/Faultbox/motioncore/pkg/math"

// push shoves dynamic bodies the avatar ran into. Contacts whose normal is
// mostly vertical are floors or ceilings and are left alone.
func (c *Controller) push(collisions []Collision) {
	force := c.integrator.Tuning.PushForce
	if force <= 0 {
		return
	}
	for _, col := range collisions {
		body, ok := col.Collider.(Pushable)
		if !ok {
			continue
		}
		if math.Abs(col.Normal.Y) >= c.integrator.Tuning.PushMaxNormalY {
			continue
		}
		body.ApplyCentralImpulse(col.Normal.Neg().Scale(force))
	}
}
