package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectIntersects(t *testing.T) {
	base := NewRect(0, 0, 10, 10)

	cases := []struct {
		name  string
		other *Rect
		want  bool
	}{
		{"nil", nil, false},
		{"overlap", NewRect(5, 5, 10, 10), true},
		{"contained", NewRect(2, 2, 2, 2), true},
		{"touching_edge", NewRect(10, 0, 5, 5), false},
		{"apart", NewRect(20, 20, 5, 5), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, base.Intersects(c.other))
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 5)
	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(29.9, 14.9))
	assert.False(t, r.Contains(30, 12))
	assert.False(t, r.Contains(15, 15))

	var nilRect *Rect
	assert.False(t, nilRect.Contains(0, 0))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-3))
	assert.Equal(t, 1.0, Clamp01(1.5))
	assert.Equal(t, 0.25, Clamp01(0.25))
}

