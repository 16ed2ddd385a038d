package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/sound"
	"golang.org/x/image/font/basicfont"
)

const volumeStep = 0.1

// volumeLabels shows the current bus volumes inside the pause menu.
type volumeLabels struct {
	sfx   *widget.Text
	music *widget.Text
}

func (v *volumeLabels) refresh(sounds *sound.Engine) {
	if v == nil {
		return
	}
	v.sfx.Label = fmt.Sprintf("SFX %3.0f%%", sounds.SFXVolume()*100)
	v.music.Label = fmt.Sprintf("Music %3.0f%%", sounds.MusicVolume()*100)
}

// NewPauseUI builds the centered pause menu: resume, volume controls,
// restart and quit. Buttons use colored nine-slices and the built-in basic
// font, so no theme assets are needed.
func NewPauseUI(g *Game) (*ebitenui.UI, *volumeLabels) {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	newButton := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}
	newLabel := func(label string) *widget.Text {
		return widget.NewText(
			widget.TextOpts.Text(label, &face, white),
			widget.TextOpts.WidgetOpts(centered),
		)
	}
	newRow := func(children ...widget.PreferredSizeLocateableWidget) *widget.Container {
		row := widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			)),
			widget.ContainerOpts.WidgetOpts(centered),
		)
		for _, child := range children {
			row.AddChild(child)
		}
		return row
	}

	labels := &volumeLabels{sfx: newLabel(""), music: newLabel("")}
	labels.refresh(g.session.Sounds)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(newLabel("Paused"))
	panel.AddChild(newButton("Resume", func() { g.setPaused(false) }))
	panel.AddChild(newRow(
		newButton("-", func() { g.changeVolume(false, -volumeStep) }),
		labels.sfx,
		newButton("+", func() { g.changeVolume(false, volumeStep) }),
	))
	panel.AddChild(newRow(
		newButton("-", func() { g.changeVolume(true, -volumeStep) }),
		labels.music,
		newButton("+", func() { g.changeVolume(true, volumeStep) }),
	))
	panel.AddChild(newButton("Restart", func() { g.restart() }))
	panel.AddChild(newButton("Quit", func() { g.quit = true }))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}, labels
}
