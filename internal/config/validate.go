package config

import (
	"errors"
	"fmt"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate reports every out-of-range setting at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(field, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s: %s", ErrInvalid, field, fmt.Sprintf(format, args...)))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		bad("logging.level", "unknown level %q", c.Logging.Level)
	}

	if c.Movement.Speed <= 0 {
		bad("movement.speed", "must be positive, got %v", c.Movement.Speed)
	}
	if c.Movement.Acceleration <= 0 {
		bad("movement.acceleration", "must be positive, got %v", c.Movement.Acceleration)
	}
	if c.Movement.AirDrag < 0 {
		bad("movement.air_drag", "must not be negative, got %v", c.Movement.AirDrag)
	}

	for name, p := range map[string]JumpProfile{"jump.normal": c.Jump.Normal, "jump.charged": c.Jump.Charged} {
		if p.Height <= 0 || p.TimeToPeak <= 0 || p.TimeToDescent <= 0 {
			bad(name, "height and times must be positive")
		}
	}
	if c.Jump.ExtraJumps < 0 {
		bad("jump.extra_jumps", "must not be negative, got %d", c.Jump.ExtraJumps)
	}
	if c.Jump.CancelMultiplier < 0 || c.Jump.CancelMultiplier > 1 {
		bad("jump.cancel_multiplier", "must be within [0, 1], got %v", c.Jump.CancelMultiplier)
	}
	switch c.Jump.CrouchJumpAirPolicy {
	case AirJumpDowngrade, AirJumpDeny:
	default:
		bad("jump.crouch_jump_air_policy", "unknown policy %q", c.Jump.CrouchJumpAirPolicy)
	}

	if c.Dash.Speed <= 0 {
		bad("dash.speed", "must be positive, got %v", c.Dash.Speed)
	}
	if c.Dash.Duration <= 0 {
		bad("dash.duration", "must be positive, got %v", c.Dash.Duration)
	}
	if c.Dash.ExtraDashes < 0 {
		bad("dash.extra_dashes", "must not be negative, got %d", c.Dash.ExtraDashes)
	}
	if c.Dash.SimilarityThreshold < -1 || c.Dash.SimilarityThreshold > 1 {
		bad("dash.similarity_threshold", "must be within [-1, 1], got %v", c.Dash.SimilarityThreshold)
	}
	switch c.Dash.Refill {
	case DashRefillOnLanding, DashRefillCooldown:
	case DashRefillDelay:
		if c.Dash.RefillDelay <= 0 {
			bad("dash.refill_delay", "must be positive with refill %q", c.Dash.Refill)
		}
	default:
		bad("dash.refill", "unknown policy %q", c.Dash.Refill)
	}

	if c.Crouch.CrouchHeight <= 0 || c.Crouch.StandingHeight <= c.Crouch.CrouchHeight {
		bad("crouch", "heights must satisfy 0 < crouch_height < standing_height")
	}
	if c.Crouch.SlideFriction <= 0 || c.Crouch.SlideFriction >= 1 {
		bad("crouch.slide_friction", "must be within (0, 1), got %v", c.Crouch.SlideFriction)
	}
	if c.Crouch.SlideMinSpeed >= c.Crouch.SlideThreshold {
		bad("crouch.slide_min_speed", "must be below slide_threshold")
	}

	if c.LedgeGrab.ForwardDistance <= 0 {
		bad("ledge_grab.forward_distance", "must be positive, got %v", c.LedgeGrab.ForwardDistance)
	}
	if c.LedgeGrab.LedgeCheckHeight <= c.LedgeGrab.WallCheckHeight {
		bad("ledge_grab.ledge_check_height", "must be above wall_check_height")
	}

	if c.Attack.Duration <= 0 {
		bad("attack.duration", "must be positive, got %v", c.Attack.Duration)
	}
	if c.Push.MaxNormalY < 0 || c.Push.MaxNormalY > 1 {
		bad("push.max_normal_y", "must be within [0, 1], got %v", c.Push.MaxNormalY)
	}
	if c.Prop.MaxHealth <= 0 {
		bad("prop.max_health", "must be positive, got %v", c.Prop.MaxHealth)
	}
	if c.Prop.DebrisCount < 0 {
		bad("prop.debris_count", "must not be negative, got %d", c.Prop.DebrisCount)
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MaxDistance < c.Camera.MinDistance {
		bad("camera", "distances must satisfy 0 < min_distance <= max_distance")
	}
	for name, v := range map[string]float64{"audio.master_volume": c.Audio.MasterVolume, "audio.sfx_volume": c.Audio.SFXVolume} {
		if v < 0 || v > 1 {
			bad(name, "must be within [0, 1], got %v", v)
		}
	}

	if c.Sim.TickRate <= 0 {
		bad("sim.tick_rate", "must be positive, got %d", c.Sim.TickRate)
	}

	return errors.Join(errs...)
}
