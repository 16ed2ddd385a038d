package obj

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

const aimIndicatorReach = 24.0

// AimIndicator tracks the heading an entity aims at and draws it as a line
// from the entity's center.
type AimIndicator struct {
	// Angle is the heading in degrees, clockwise from +X in screen space,
	// kept in (-180, 180].
	Angle float64
	Color color.Color
}

func NewAimIndicator() *AimIndicator {
	return &AimIndicator{Color: colornames.Gold}
}

func (a *AimIndicator) Kind() Kind { return KindAimIndicator }

func (a *AimIndicator) Load(owner *Controllable) {
	a.Angle = 0
}

// Update applies the owner's aim signal. A relative signal rotates the
// heading; an absolute one replaces it.
func (a *AimIndicator) Update(_ *Frame, owner *Controllable) {
	signal, absolute := owner.AimSignal()
	if absolute {
		a.Angle = signal
	} else {
		a.Angle += signal
	}
	a.Angle = normalizeDegrees(a.Angle)
}

// Direction returns the unit vector of the current heading.
func (a *AimIndicator) Direction() (float64, float64) {
	rad := a.Angle * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}

func (a *AimIndicator) Render(f *Frame, owner *Controllable) {
	if f == nil || f.Screen == nil {
		return
	}
	center := owner.Center()
	dx, dy := a.Direction()
	reach := math.Max(owner.Width, owner.Height)/2 + aimIndicatorReach
	vector.StrokeLine(f.Screen,
		float32(center.X), float32(center.Y),
		float32(center.X+dx*reach), float32(center.Y+dy*reach),
		3, a.Color, true)
}

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}
	return deg
}
