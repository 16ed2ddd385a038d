package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/arena/common"
	"golang.org/x/image/font/basicfont"
)

// HoverSound is the clip played when the cursor enters a button.
const HoverSound = "Button hover"

const strokeWidth = 2

// SoundPlayer plays a named clip. *sound.Engine satisfies it.
type SoundPlayer interface {
	Play(name string, loops int)
}

// MouseReader is the slice of the input state a button reads for clicks.
type MouseReader interface {
	IsMouseButtonPressed(button ebiten.MouseButton) bool
}

// Button is a labelled rectangle with hover feedback.
type Button struct {
	Rect  common.Rect
	Label string

	Face        text.Face
	TextColor   color.Color
	FillColor   color.Color
	StrokeColor color.Color
	HoverColor  color.Color

	Sounds SoundPlayer

	hovered    bool
	wasHovered bool

	// glyphs caches the rendered label.
	glyphs *ebiten.Image
}

func NewButton(x, y, width, height float64, label string, sounds SoundPlayer) *Button {
	return &Button{
		Rect:        common.Rect{X: x, Y: y, Width: width, Height: height},
		Label:       label,
		Face:        text.NewGoXFace(basicfont.Face7x13),
		TextColor:   color.Black,
		FillColor:   color.RGBA{R: 209, G: 179, B: 128, A: 255},
		StrokeColor: color.RGBA{R: 97, G: 78, B: 6, A: 255},
		HoverColor:  color.RGBA{R: 94, G: 209, B: 255, A: 255},
		Sounds:      sounds,
	}
}

// Update records whether the cursor at (mx, my) is over the button.
func (b *Button) Update(mx, my float64) {
	b.hovered = b.Rect.Contains(mx, my)
}

func (b *Button) Hovered() bool {
	return b.hovered
}

// SetLabel changes the label and drops the glyph cache.
func (b *Button) SetLabel(label string) {
	if label == b.Label {
		return
	}
	b.Label = label
	if b.glyphs != nil {
		b.glyphs.Deallocate()
		b.glyphs = nil
	}
}

// Draw plays the hover sound when the cursor has just entered and then
// draws the button. A nil screen only runs the hover edge.
func (b *Button) Draw(screen *ebiten.Image) {
	if b.hovered != b.wasHovered {
		if b.hovered && b.Sounds != nil {
			b.Sounds.Play(HoverSound, 0)
		}
		b.wasHovered = b.hovered
	}
	if screen == nil {
		return
	}

	r := b.Rect
	vector.DrawFilledRect(screen,
		float32(r.X-strokeWidth), float32(r.Y-strokeWidth),
		float32(r.Width+2*strokeWidth), float32(r.Height+2*strokeWidth),
		b.StrokeColor, false)

	fill := b.FillColor
	if b.hovered {
		fill = b.HoverColor
	}
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), fill, false)

	glyphs := b.labelImage()
	if glyphs == nil {
		return
	}
	cx, cy := r.Center()
	size := glyphs.Bounds().Size()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(math.Round(cx-float64(size.X)/2), math.Round(cy-float64(size.Y)/2))
	screen.DrawImage(glyphs, op)
}

func (b *Button) labelImage() *ebiten.Image {
	if b.glyphs != nil || b.Label == "" || b.Face == nil {
		return b.glyphs
	}
	w, h := text.Measure(b.Label, b.Face, 0)
	if w <= 0 || h <= 0 {
		return nil
	}
	img := ebiten.NewImage(int(math.Ceil(w)), int(math.Ceil(h)))
	op := &text.DrawOptions{}
	op.ColorScale.ScaleWithColor(b.TextColor)
	text.Draw(img, b.Label, b.Face, op)
	b.glyphs = img
	return img
}

// IsClicked reports whether the primary mouse button went down this frame
// while the cursor is over the button.
func (b *Button) IsClicked(in MouseReader) bool {
	if in == nil {
		return false
	}
	return b.hovered && in.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}
