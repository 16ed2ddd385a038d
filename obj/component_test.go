package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	kind  Kind
	name  string
	log   *[]string
	owner *Controllable
}

func (r *recorder) Kind() Kind { return r.kind }
func (r *recorder) Load(owner *Controllable) {
	r.owner = owner
	*r.log = append(*r.log, r.name+":load")
}
func (r *recorder) Update(_ *Frame, _ *Controllable) { *r.log = append(*r.log, r.name+":update") }
func (r *recorder) Render(_ *Frame, _ *Controllable) { *r.log = append(*r.log, r.name+":render") }

const (
	kindTestA Kind = 200
	kindTestB Kind = 201
)

func bareEntity() *Controllable {
	c := &Controllable{}
	c.ApplyConfig(DefaultConfig())
	c.Health = NewHealth(MaxHealth)
	return c
}

func TestAddComponentLoadsAndOrders(t *testing.T) {
	var log []string
	c := bareEntity()

	a := &recorder{kind: kindTestA, name: "a", log: &log}
	b := &recorder{kind: kindTestB, name: "b", log: &log}
	c.AddComponent(a)
	c.AddComponent(b)
	assert.Same(t, c, a.owner)

	c.Update(&Frame{})
	c.Render(&Frame{})

	assert.Equal(t, []string{"a:load", "b:load", "a:update", "b:update", "a:render", "b:render"}, log)
}

func TestAddComponentUniquePerKind(t *testing.T) {
	var log []string
	c := bareEntity()

	first := &recorder{kind: kindTestA, name: "first", log: &log}
	second := &recorder{kind: kindTestA, name: "second", log: &log}

	assert.Same(t, first, c.AddComponent(first))
	assert.Same(t, first, c.AddComponent(second))
	assert.Len(t, c.Components(), 1)
	assert.Equal(t, []string{"first:load"}, log)
}

func TestGetAndRemoveComponent(t *testing.T) {
	c := NewControllable(cp.Vector{}, true, 1, DefaultConfig())

	aim, ok := ComponentOf[*AimIndicator](c, KindAimIndicator)
	require.True(t, ok)
	assert.NotNil(t, aim)

	_, ok = ComponentOf[*HealthBar](c, KindAimIndicator)
	assert.False(t, ok, "kind and type must agree")

	assert.True(t, c.RemoveComponent(KindAimIndicator))
	assert.False(t, c.RemoveComponent(KindAimIndicator))
	_, ok = c.GetComponent(KindAimIndicator)
	assert.False(t, ok)

	_, ok = c.GetComponent(KindHealthBar)
	assert.True(t, ok)
}

func TestAimIndicatorRelativeAndAbsolute(t *testing.T) {
	c := NewControllable(cp.Vector{}, true, 1, DefaultConfig())
	aim, _ := ComponentOf[*AimIndicator](c, KindAimIndicator)

	c.Steer(5, false)
	c.Update(nil)
	c.Update(nil)
	assert.InDelta(t, 10, aim.Angle, 1e-9)

	c.Steer(-90, true)
	c.Update(nil)
	assert.InDelta(t, -90, aim.Angle, 1e-9)

	// an absolute zero is a real heading
	c.Steer(0, true)
	c.Update(nil)
	assert.InDelta(t, 0, aim.Angle, 1e-9)

	c.Steer(0, false)
	c.Update(nil)
	assert.InDelta(t, 0, aim.Angle, 1e-9)

	c.Steer(-90, true)
	c.Update(nil)

	c.Steer(-5, false)
	for i := 0; i < 20; i++ {
		c.Update(nil)
	}
	assert.InDelta(t, 170, aim.Angle, 1e-9, "wraps into (-180, 180]")
}

func TestHealthBarEasesTowardHealth(t *testing.T) {
	c := NewControllable(cp.Vector{}, true, 1, DefaultConfig())
	bar, _ := ComponentOf[*HealthBar](c, KindHealthBar)
	require.Equal(t, 1.0, bar.Shown)

	c.Health.ApplyDamage(50)
	c.Update(nil)
	assert.InDelta(t, 0.9, bar.Shown, 1e-9)

	for i := 0; i < 200; i++ {
		c.Update(nil)
	}
	assert.InDelta(t, 0.5, bar.Shown, 1e-6)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "aim_indicator", KindAimIndicator.String())
	assert.Equal(t, "health_bar", KindHealthBar.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}

func TestFrameOpponent(t *testing.T) {
	a, b := bareEntity(), bareEntity()
	f := &Frame{PlayerOne: a, PlayerTwo: b}
	assert.Same(t, b, f.Opponent(a))
	assert.Same(t, a, f.Opponent(b))
	assert.Nil(t, f.Opponent(bareEntity()))
}
