package obj

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEntity(x, y float64) *Controllable {
	return NewControllable(cp.Vector{X: x, Y: y}, true, 3, DefaultConfig())
}

func TestNewControllableDefaults(t *testing.T) {
	c := newTestEntity(10, 20)

	assert.Equal(t, 128.0, c.Width)
	assert.Equal(t, 72.0, c.Height)
	assert.Equal(t, 2.0, c.MaxSpeed)
	assert.Equal(t, 0.05, c.Acceleration)
	assert.Equal(t, 0.02, c.Friction)
	assert.Equal(t, 100, c.Health.Current)

	comps := c.Components()
	require.Len(t, comps, 2)
	assert.Equal(t, KindAimIndicator, comps[0].Kind())
	assert.Equal(t, KindHealthBar, comps[1].Kind())
}

func TestFrictionNeverCrossesZero(t *testing.T) {
	cases := []struct {
		name     string
		v        float64
		friction float64
		want     float64
	}{
		{"positive", 1.0, 0.02, 0.98},
		{"positive_below_friction", 0.01, 0.02, 0},
		{"negative", -1.0, 0.3, -0.7},
		{"negative_below_friction", -0.1, 0.3, 0},
		{"zero", 0, 0.5, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := newTestEntity(0, 0)
			e.Friction = c.friction
			e.Velocity = cp.Vector{X: c.v, Y: c.v}
			e.Update(nil)
			assert.InDelta(t, c.want, e.Velocity.X, 1e-12)
			assert.InDelta(t, c.want, e.Velocity.Y, 1e-12)
		})
	}
}

func TestMoveThenCoastConvergesToZero(t *testing.T) {
	e := newTestEntity(0, 0)
	// binary-exact tuning so the frame bound holds without rounding slack
	e.Acceleration = 0.25
	e.Friction = 0.125
	for i := 0; i < 4; i++ {
		e.Move(1, 0)
	}
	v := e.Velocity.X
	require.Greater(t, v, 0.0)
	assert.Zero(t, e.Velocity.Y)

	frames := int(math.Ceil(math.Abs(v) / e.Friction))
	for i := 0; i < frames; i++ {
		before := e.Velocity.X
		e.Update(nil)
		assert.LessOrEqual(t, e.Velocity.X, before)
		assert.GreaterOrEqual(t, e.Velocity.X, 0.0)
	}
	assert.Zero(t, e.Velocity.X)
}

func TestMoveClampsToMaxSpeed(t *testing.T) {
	e := newTestEntity(0, 0)
	for i := 0; i < 500; i++ {
		e.Move(-1, 1)
	}
	assert.Equal(t, -e.MaxSpeed, e.Velocity.X)
	assert.Equal(t, e.MaxSpeed, e.Velocity.Y)
}

func TestMoveZeroAxisUntouched(t *testing.T) {
	e := newTestEntity(0, 0)
	e.Velocity = cp.Vector{X: 1.5, Y: -0.5}
	e.Move(0, 1)
	assert.Equal(t, 1.5, e.Velocity.X)
	assert.InDelta(t, -0.45, e.Velocity.Y, 1e-12)
}

func TestUpdateIntegratesPosition(t *testing.T) {
	e := newTestEntity(100, 100)
	e.Velocity = cp.Vector{X: 1, Y: -1}
	e.Update(nil)
	assert.InDelta(t, 100.98, e.Position.X, 1e-12)
	assert.InDelta(t, 99.02, e.Position.Y, 1e-12)
}

func TestCheckEdges(t *testing.T) {
	const width, height = 1280.0, 720.0

	cases := []struct {
		name  string
		start cp.Vector
		want  cp.Vector
	}{
		{"far_right_bottom", cp.Vector{X: width + 1000, Y: height + 1000}, cp.Vector{X: width - 64 - 50, Y: height - 36 - 30}},
		{"far_left_top", cp.Vector{X: -1000, Y: -1000}, cp.Vector{X: -64 + 50, Y: -36 + 30}},
		{"inside", cp.Vector{X: 400, Y: 300}, cp.Vector{X: 400, Y: 300}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := newTestEntity(c.start.X, c.start.Y)
			e.CheckEdges(width, height)
			assert.Equal(t, c.want, e.Position)
		})
	}
}

func TestCheckOtherPlayerEdgesSeparatesExactly(t *testing.T) {
	a := newTestEntity(100, 100)
	b := newTestEntity(130, 140)

	minDistance := a.Radius() + b.Radius()
	before := a.Center().Distance(b.Center())
	require.Less(t, before, minDistance)

	aStart, bStart := a.Position, b.Position
	a.CheckOtherPlayerEdges(b)

	after := a.Center().Distance(b.Center())
	assert.InDelta(t, minDistance, after, 1e-9)

	correction := minDistance - before
	assert.InDelta(t, correction/2, a.Position.Distance(aStart), 1e-9)
	assert.InDelta(t, correction/2, b.Position.Distance(bStart), 1e-9)
}

func TestCheckOtherPlayerEdgesCoincidentCenters(t *testing.T) {
	a := newTestEntity(200, 200)
	b := newTestEntity(200, 200)

	a.CheckOtherPlayerEdges(b)

	overlap := a.Radius() + b.Radius()
	assert.InDelta(t, 200+overlap/2, a.Position.X, 1e-9)
	assert.InDelta(t, 200-overlap/2, b.Position.X, 1e-9)
	assert.Equal(t, 200.0, a.Position.Y)
	assert.Equal(t, 200.0, b.Position.Y)
}

func TestCheckOtherPlayerEdgesApartIsNoop(t *testing.T) {
	a := newTestEntity(0, 0)
	b := newTestEntity(500, 500)
	a.CheckOtherPlayerEdges(b)
	assert.Equal(t, cp.Vector{}, a.Position)
	assert.Equal(t, cp.Vector{X: 500, Y: 500}, b.Position)
}

func TestCheckIntersectionUsesCentralHalf(t *testing.T) {
	e := newTestEntity(0, 0) // hitbox: x 32..96, y 18..54

	assert.False(t, e.CheckIntersection(nil))
	assert.True(t, e.CheckIntersection(common.NewRect(90, 50, 10, 10)))
	assert.False(t, e.CheckIntersection(common.NewRect(0, 0, 20, 10)), "inside sprite box but outside hitbox")

	e.Position = cp.Vector{X: 100, Y: 0}
	assert.False(t, e.CheckIntersection(common.NewRect(90, 50, 10, 10)), "hitbox follows position")
}

func TestLoseLife(t *testing.T) {
	e := NewControllable(cp.Vector{}, true, 2, DefaultConfig())
	e.Health.ApplyDamage(60)

	assert.True(t, e.LoseLife())
	assert.Equal(t, 1, e.LivesLeft)
	assert.Equal(t, 100, e.Health.Current)

	assert.False(t, e.LoseLife())
	assert.Equal(t, 0, e.LivesLeft)
	assert.False(t, e.LoseLife())
}

func TestApplyConfigKeepsDefaultsForZeroFields(t *testing.T) {
	e := newTestEntity(0, 0)
	e.ApplyConfig(Config{MaxSpeed: 4, Width: 64})
	assert.Equal(t, 4.0, e.MaxSpeed)
	assert.Equal(t, 64.0, e.Width)
	assert.Equal(t, 72.0, e.Height)
	assert.Equal(t, 0.02, e.Friction)
}
