package motion

import "github.com/Faultbox/motioncore/pkg/math"

// DeadZone is the speed below which the avatar counts as standing still.
const DeadZone = 0.1

// Facts are the physical results reconciliation infers state from.
type Facts struct {
	OnFloor   bool
	Velocity  math.Vec3
	Direction math.Vec3
}

// Moving reports whether horizontal speed or input exceeds the dead-zone.
func (f Facts) Moving() bool {
	return f.Velocity.Horizontal().Length() > DeadZone || f.Direction.Length() > DeadZone
}

// Reconcile infers Idle, Running or Jumping from the facts. Managed states
// are left alone: the owning ability enters and exits them itself.
func Reconcile(m *Machine, f Facts) {
	cur := m.Current()
	if cur.Managed() {
		return
	}
	if !f.OnFloor {
		// Also covers walking off an edge without a jump.
		m.RequestTransition(Jumping)
		return
	}
	m.RequestTransition(GroundState(f))
}

// GroundState picks Running or Idle for a grounded avatar.
func GroundState(f Facts) State {
	if f.Moving() {
		return Running
	}
	return Idle
}

// SettleState picks the state an ability hands back to when it finishes:
// Running or Idle on the floor, Jumping in the air.
func SettleState(f Facts) State {
	if !f.OnFloor {
		return Jumping
	}
	return GroundState(f)
}
