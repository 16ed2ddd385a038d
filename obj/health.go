package obj

// MaxHealth is the health every controllable starts a life with.
const MaxHealth = 100

// Health is an entity's hit points within the current life.
type Health struct {
	Max     int
	Current int

	OnDamage func(h *Health, amount int)
	OnDeath  func(h *Health)
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = MaxHealth
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the entity has health left.
func (h *Health) IsAlive() bool {
	return h != nil && h.Current > 0
}

// ApplyDamage lowers health, never below zero. Returns true if damage was
// applied.
func (h *Health) ApplyDamage(amount int) bool {
	if h == nil || h.Current <= 0 || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.OnDamage != nil {
		h.OnDamage(h, amount)
	}
	if h.Current == 0 && h.OnDeath != nil {
		h.OnDeath(h)
	}
	return true
}

// Heal restores health up to Max.
func (h *Health) Heal(amount int) {
	if h == nil || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// SetMax changes Max. Raising it heals by the difference; lowering it caps
// Current. A dead entity stays dead.
func (h *Health) SetMax(max int) {
	if h == nil || max <= 0 {
		return
	}
	gain := max - h.Max
	h.Max = max
	if gain > 0 && h.Current > 0 {
		h.Heal(gain)
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// Restore refills health to Max.
func (h *Health) Restore() {
	if h == nil {
		return
	}
	h.Current = h.Max
}

// Fraction returns Current/Max in [0, 1].
func (h *Health) Fraction() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}
