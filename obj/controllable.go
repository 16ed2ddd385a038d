package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/common"
)

// Playfield margins. The arena art is not rectangular, so entities are kept
// this far inside the window on each axis.
const (
	EdgeMarginX = 50.0
	EdgeMarginY = 30.0
)

// Config holds the movement tuning of a controllable entity.
type Config struct {
	Width        float64
	Height       float64
	Speed        float64
	MaxSpeed     float64
	Acceleration float64
	Friction     float64
	Health       int
}

func DefaultConfig() Config {
	return Config{
		Width:        128,
		Height:       72,
		Speed:        0.2,
		MaxSpeed:     2,
		Acceleration: 0.05,
		Friction:     0.02,
		Health:       MaxHealth,
	}
}

// Controllable is a player-driven arena entity. Position is the top-left
// corner of its Width x Height box.
type Controllable struct {
	Position cp.Vector
	Velocity cp.Vector
	Width    float64
	Height   float64

	Speed        float64
	MaxSpeed     float64
	Acceleration float64
	Friction     float64

	Health    *Health
	LivesLeft int
	IsPlayer  bool

	aimSignal   float64
	aimAbsolute bool

	components []Component
}

// NewControllable builds an entity with an aim indicator and a health bar
// attached.
func NewControllable(position cp.Vector, isPlayer bool, livesLeft int, cfg Config) *Controllable {
	c := &Controllable{
		Position:  position,
		IsPlayer:  isPlayer,
		LivesLeft: livesLeft,
		Health:    NewHealth(cfg.Health),
	}
	c.ApplyConfig(cfg)

	c.AddComponent(NewAimIndicator())
	c.AddComponent(NewHealthBar())
	return c
}

// ApplyConfig replaces size and movement tuning. Zero fields keep the
// defaults.
func (c *Controllable) ApplyConfig(cfg Config) {
	if c == nil {
		return
	}
	def := DefaultConfig()
	c.Width = orDefault(cfg.Width, def.Width)
	c.Height = orDefault(cfg.Height, def.Height)
	c.Speed = orDefault(cfg.Speed, def.Speed)
	c.MaxSpeed = orDefault(cfg.MaxSpeed, def.MaxSpeed)
	c.Acceleration = orDefault(cfg.Acceleration, def.Acceleration)
	c.Friction = orDefault(cfg.Friction, def.Friction)
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}

// Center returns the center of the entity's box.
func (c *Controllable) Center() cp.Vector {
	return cp.Vector{X: c.Position.X + c.Width/2, Y: c.Position.Y + c.Height/2}
}

// Hitbox is the entity box shrunk to its central half.
func (c *Controllable) Hitbox() common.Rect {
	return common.Rect{
		X:      c.Position.X + c.Width/4,
		Y:      c.Position.Y + c.Height/4,
		Width:  c.Width / 2,
		Height: c.Height / 2,
	}
}

// Steer stores this frame's aim signal. Absolute signals are headings in
// degrees; relative ones are per-frame increments.
func (c *Controllable) Steer(aim float64, absolute bool) {
	if c == nil {
		return
	}
	c.aimSignal = aim
	c.aimAbsolute = absolute
}

// AimSignal returns the value last passed to Steer.
func (c *Controllable) AimSignal() (float64, bool) {
	return c.aimSignal, c.aimAbsolute
}

// Update runs component hooks, applies friction and integrates position.
func (c *Controllable) Update(f *Frame) {
	if c == nil {
		return
	}
	for _, comp := range c.components {
		comp.Update(f, c)
	}

	c.Velocity.X = decay(c.Velocity.X, c.Friction)
	c.Velocity.Y = decay(c.Velocity.Y, c.Friction)

	c.Position = c.Position.Add(c.Velocity)
}

// decay moves v toward zero by friction without crossing it.
func decay(v, friction float64) float64 {
	switch {
	case v > 0:
		return math.Max(0, v-friction)
	case v < 0:
		return math.Min(0, v+friction)
	}
	return v
}

// Render runs component render hooks in attachment order.
func (c *Controllable) Render(f *Frame) {
	if c == nil {
		return
	}
	for _, comp := range c.components {
		comp.Render(f, c)
	}
}

// Move accelerates along the non-zero axes of (dx, dy) and caps each axis at
// MaxSpeed. A zero axis is left untouched.
func (c *Controllable) Move(dx, dy float64) {
	if c == nil {
		return
	}
	if dx != 0 {
		c.Velocity.X = common.Clamp(c.Velocity.X+dx*c.Acceleration, -c.MaxSpeed, c.MaxSpeed)
	}
	if dy != 0 {
		c.Velocity.Y = common.Clamp(c.Velocity.Y+dy*c.Acceleration, -c.MaxSpeed, c.MaxSpeed)
	}
}

// CheckEdges keeps the entity's center inside the playfield margins of a
// width x height window.
func (c *Controllable) CheckEdges(width, height float64) {
	if c == nil {
		return
	}
	halfW, halfH := c.Width/2, c.Height/2

	if c.Position.X+halfW+EdgeMarginX > width {
		c.Position.X = width - halfW - EdgeMarginX
	} else if c.Position.X+halfW-EdgeMarginX < 0 {
		c.Position.X = -halfW + EdgeMarginX
	}

	if c.Position.Y+halfH+EdgeMarginY > height {
		c.Position.Y = height - halfH - EdgeMarginY
	} else if c.Position.Y+halfH-EdgeMarginY < 0 {
		c.Position.Y = -halfH + EdgeMarginY
	}
}

// Radius is half the smaller side of the entity box.
func (c *Controllable) Radius() float64 {
	return math.Min(c.Width, c.Height) / 2
}

// CheckOtherPlayerEdges pushes two overlapping entities apart along the line
// between their centers, each by half the overlap.
func (c *Controllable) CheckOtherPlayerEdges(other *Controllable) {
	if c == nil || other == nil || c == other {
		return
	}
	selfCenter := c.Center()
	otherCenter := other.Center()

	distance := selfCenter.Distance(otherCenter)
	minDistance := c.Radius() + other.Radius()
	if distance >= minDistance {
		return
	}

	overlap := minDistance - distance
	direction := cp.Vector{X: 1, Y: 0}
	if distance != 0 {
		direction = selfCenter.Sub(otherCenter).Mult(1 / distance)
	}

	push := direction.Mult(overlap / 2)
	c.Position = c.Position.Add(push)
	other.Position = other.Position.Sub(push)
}

// CheckIntersection reports whether rect overlaps the entity's hitbox.
func (c *Controllable) CheckIntersection(rect *common.Rect) bool {
	if c == nil || rect == nil {
		return false
	}
	hitbox := c.Hitbox()
	return hitbox.Intersects(rect)
}

// LoseLife spends one life and refills health. It reports whether any
// lives remain.
func (c *Controllable) LoseLife() bool {
	if c == nil || c.LivesLeft <= 0 {
		return false
	}
	c.LivesLeft--
	if c.LivesLeft > 0 {
		c.Health.Restore()
	}
	return c.LivesLeft > 0
}
