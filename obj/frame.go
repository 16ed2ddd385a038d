package obj

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Frame is the per-frame context handed to entities and their components.
type Frame struct {
	PreviousTime time.Duration
	CurrentTime  time.Duration
	DeltaTime    time.Duration

	PlayerOne *Controllable
	PlayerTwo *Controllable

	// Screen is nil during Update and set for Render.
	Screen *ebiten.Image
	Width  float64
	Height float64

	Tutorial bool
}

func NewFrame(width, height float64) *Frame {
	return &Frame{Width: width, Height: height}
}

// Reset stores the timing of the frame about to run.
func (f *Frame) Reset(previous, current, delta time.Duration) {
	if f == nil {
		return
	}
	f.PreviousTime = previous
	f.CurrentTime = current
	f.DeltaTime = delta
}

// Opponent returns the other player, or nil when c is not one of the two.
func (f *Frame) Opponent(c *Controllable) *Controllable {
	if f == nil || c == nil {
		return nil
	}
	switch c {
	case f.PlayerOne:
		return f.PlayerTwo
	case f.PlayerTwo:
		return f.PlayerOne
	}
	return nil
}
