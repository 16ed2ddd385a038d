package obj

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/arena/common"
	"golang.org/x/image/colornames"
)

const (
	healthBarHeight = 6.0
	healthBarGap    = 10.0
	// healthBarEase is how far the drawn fill moves toward the real value
	// each frame.
	healthBarEase = 0.2
)

// HealthBar draws the owner's health above its box. The fill eases toward
// the current value so hits read as a drain instead of a jump.
type HealthBar struct {
	Shown float64

	Back color.Color
	Full color.Color
	Low  color.Color
}

func NewHealthBar() *HealthBar {
	return &HealthBar{
		Back: colornames.Darkslategray,
		Full: colornames.Limegreen,
		Low:  colornames.Crimson,
	}
}

func (h *HealthBar) Kind() Kind { return KindHealthBar }

func (h *HealthBar) Load(owner *Controllable) {
	h.Shown = owner.Health.Fraction()
}

func (h *HealthBar) Update(_ *Frame, owner *Controllable) {
	h.Shown = common.Lerp(h.Shown, owner.Health.Fraction(), healthBarEase)
}

func (h *HealthBar) Render(f *Frame, owner *Controllable) {
	if f == nil || f.Screen == nil {
		return
	}
	x := float32(owner.Position.X)
	y := float32(owner.Position.Y - healthBarGap - healthBarHeight)
	w := float32(owner.Width)

	fill := h.Full
	if h.Shown < 0.3 {
		fill = h.Low
	}
	vector.DrawFilledRect(f.Screen, x, y, w, healthBarHeight, h.Back, false)
	vector.DrawFilledRect(f.Screen, x, y, w*float32(common.Clamp01(h.Shown)), healthBarHeight, fill, false)
}
