package input

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// Source is the raw device layer polled once per frame.
type Source interface {
	IsKeyPressed(key ebiten.Key) bool
	IsMouseButtonPressed(button ebiten.MouseButton) bool
	CursorPosition() (int, int)

	AppendGamepadIDs(ids []ebiten.GamepadID) []ebiten.GamepadID
	GamepadButtonCount(id ebiten.GamepadID) int
	IsGamepadButtonPressed(id ebiten.GamepadID, button ebiten.GamepadButton) bool
	GamepadAxisCount(id ebiten.GamepadID) int
	GamepadAxisValue(id ebiten.GamepadID, axis int) float64
}

// EbitenSource reads devices through ebiten. It must only be polled from
// inside the ebiten update loop.
type EbitenSource struct{}

func NewEbitenSource() *EbitenSource {
	return &EbitenSource{}
}

func (EbitenSource) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

func (EbitenSource) IsMouseButtonPressed(button ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(button)
}

func (EbitenSource) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

// AppendGamepadIDs appends connected gamepads in ascending id order so
// device indices are stable for a given set of controllers.
func (EbitenSource) AppendGamepadIDs(ids []ebiten.GamepadID) []ebiten.GamepadID {
	start := len(ids)
	ids = ebiten.AppendGamepadIDs(ids)
	slices.Sort(ids[start:])
	return ids
}

func (EbitenSource) GamepadButtonCount(id ebiten.GamepadID) int {
	return ebiten.GamepadButtonCount(id)
}

func (EbitenSource) IsGamepadButtonPressed(id ebiten.GamepadID, button ebiten.GamepadButton) bool {
	return ebiten.IsGamepadButtonPressed(id, button)
}

func (EbitenSource) GamepadAxisCount(id ebiten.GamepadID) int {
	return ebiten.GamepadAxisCount(id)
}

func (EbitenSource) GamepadAxisValue(id ebiten.GamepadID, axis int) float64 {
	return ebiten.GamepadAxisValue(id, axis)
}
