// Package prop implements destructible props: a health pool that can
// regenerate, and a destructible body that breaks into debris when it runs
// out of health.
package prop

import (
	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/pkg/math"
)

// Health is a damageable pool of hit points.
type Health struct {
	Enabled bool

	max     float32
	current float32

	regen        bool
	regenRate    float32
	regenPotency float32
	regenTimer   float32

	onChanged []func(current, max float32)
	onEmpty   []func()
}

// NewHealth creates a full health pool from prop config.
func NewHealth(cfg config.PropConfig) *Health {
	return &Health{
		Enabled:      true,
		max:          cfg.MaxHealth,
		current:      cfg.MaxHealth,
		regen:        cfg.RegenEnabled,
		regenRate:    cfg.RegenRate,
		regenPotency: cfg.RegenPotency,
	}
}

func (h *Health) Current() float32 { return h.current }
func (h *Health) Max() float32     { return h.max }
func (h *Health) Empty() bool      { return h.current <= 0 }

// OnChanged registers fn to run after every damage or heal.
func (h *Health) OnChanged(fn func(current, max float32)) {
	h.onChanged = append(h.onChanged, fn)
}

// OnEmpty registers fn to run when health reaches zero.
func (h *Health) OnEmpty(fn func()) {
	h.onEmpty = append(h.onEmpty, fn)
}

// TakeDamage subtracts amount, clamped at zero. Empty observers run once, on
// the hit that drains the pool.
func (h *Health) TakeDamage(amount float32) {
	if !h.Enabled || amount <= 0 || h.Empty() {
		return
	}
	h.current = math.Clamp(h.current-amount, 0, h.max)
	h.changed()
	if h.Empty() {
		for _, fn := range h.onEmpty {
			fn()
		}
	}
}

// Heal adds amount, clamped at max. An empty pool stays empty.
func (h *Health) Heal(amount float32) {
	if !h.Enabled || amount <= 0 || h.Empty() {
		return
	}
	h.current = math.Clamp(h.current+amount, 0, h.max)
	h.changed()
}

// Update runs regeneration: RegenPotency points every RegenRate seconds.
func (h *Health) Update(dt float32) {
	if !h.Enabled || !h.regen || h.regenRate <= 0 || h.Empty() {
		return
	}
	if h.current >= h.max {
		h.regenTimer = 0
		return
	}
	h.regenTimer += dt
	for h.regenTimer >= h.regenRate {
		h.regenTimer -= h.regenRate
		h.Heal(h.regenPotency)
	}
}

func (h *Health) changed() {
	for _, fn := range h.onChanged {
		fn(h.current, h.max)
	}
}
