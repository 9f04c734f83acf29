// Package ability implements the avatar's abilities: jump, dash, crouch and
// slide, ledge grab and attack. Each ability owns its resources and timers
// and touches the avatar only through motion.Context.
package ability

// countdown is a suspended continuation: a remaining time checked every tick.
type countdown float32

func (c *countdown) start(seconds float32) { *c = countdown(seconds) }
func (c *countdown) stop()                 { *c = 0 }
func (c countdown) running() bool          { return c > 0 }

// tick advances the countdown and reports whether it expired on this call.
func (c *countdown) tick(dt float32) bool {
	if *c <= 0 {
		return false
	}
	*c -= countdown(dt)
	if *c <= 0 {
		*c = 0
		return true
	}
	return false
}
