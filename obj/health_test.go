package obj

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthDamageAndHeal(t *testing.T) {
	h := NewHealth(100)

	var damaged, died int
	h.OnDamage = func(_ *Health, amount int) { damaged += amount }
	h.OnDeath = func(_ *Health) { died++ }

	assert.True(t, h.ApplyDamage(30))
	assert.Equal(t, 70, h.Current)
	assert.False(t, h.ApplyDamage(0))

	h.Heal(50)
	assert.Equal(t, 100, h.Current)

	assert.True(t, h.ApplyDamage(250))
	assert.Equal(t, 0, h.Current)
	assert.False(t, h.IsAlive())
	assert.False(t, h.ApplyDamage(10), "no damage once dead")

	assert.Equal(t, 280, damaged)
	assert.Equal(t, 1, died)
}

func TestHealthSetMax(t *testing.T) {
	cases := []struct {
		name        string
		current     int
		max         int
		wantMax     int
		wantCurrent int
	}{
		{"raise_heals_difference", 70, 150, 150, 120},
		{"lower_caps_current", 90, 60, 60, 60},
		{"lower_keeps_damage", 40, 60, 60, 40},
		{"zero_ignored", 70, 0, 100, 70},
		{"dead_stays_dead", 0, 150, 150, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := NewHealth(100)
			h.Current = c.current
			h.SetMax(c.max)
			assert.Equal(t, c.wantMax, h.Max)
			assert.Equal(t, c.wantCurrent, h.Current)
		})
	}
}

func TestHealthFraction(t *testing.T) {
	h := NewHealth(0)
	assert.Equal(t, MaxHealth, h.Max)
	h.ApplyDamage(25)
	assert.Equal(t, 0.75, h.Fraction())

	var nilHealth *Health
	assert.Equal(t, 0.0, nilHealth.Fraction())
}
