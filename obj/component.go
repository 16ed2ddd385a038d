package obj

import "fmt"

// Kind tags a component capability. An entity holds at most one component
// per Kind.
type Kind uint8

const (
	KindAimIndicator Kind = iota + 1
	KindHealthBar
)

func (k Kind) String() string {
	switch k {
	case KindAimIndicator:
		return "aim_indicator"
	case KindHealthBar:
		return "health_bar"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Component is a behavior attached to a Controllable. Hooks run in
// attachment order.
type Component interface {
	Kind() Kind
	Load(owner *Controllable)
	Update(f *Frame, owner *Controllable)
	Render(f *Frame, owner *Controllable)
}

// AddComponent attaches comp and runs its Load hook. When a component of the
// same Kind is already attached, that one is returned and comp is dropped.
func (c *Controllable) AddComponent(comp Component) Component {
	if c == nil || comp == nil {
		return nil
	}
	if existing, ok := c.GetComponent(comp.Kind()); ok {
		return existing
	}
	comp.Load(c)
	c.components = append(c.components, comp)
	return comp
}

// GetComponent returns the attached component of the given kind.
func (c *Controllable) GetComponent(kind Kind) (Component, bool) {
	if c == nil {
		return nil, false
	}
	for _, comp := range c.components {
		if comp.Kind() == kind {
			return comp, true
		}
	}
	return nil, false
}

// RemoveComponent detaches the component of the given kind and reports
// whether one was attached.
func (c *Controllable) RemoveComponent(kind Kind) bool {
	if c == nil {
		return false
	}
	for i, comp := range c.components {
		if comp.Kind() == kind {
			c.components = append(c.components[:i], c.components[i+1:]...)
			return true
		}
	}
	return false
}

// Components returns the attached components in attachment order.
func (c *Controllable) Components() []Component {
	if c == nil {
		return nil
	}
	out := make([]Component, len(c.components))
	copy(out, c.components)
	return out
}

// ComponentOf returns the component of the given kind as its concrete type.
func ComponentOf[T Component](c *Controllable, kind Kind) (T, bool) {
	var zero T
	comp, ok := c.GetComponent(kind)
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}
