package control

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Binding indexes a logical action inside a keyboard scheme.
type Binding int

const (
	BindUp Binding = iota
	BindLeft
	BindDown
	BindRight
	BindAimNegative
	BindAimPositive
	BindFire
	BindSkip

	bindingCount
)

// Scheme is a keyboard layout: one key per Binding, in Binding order.
type Scheme struct {
	Name string
	Keys [bindingCount]ebiten.Key
}

func (s *Scheme) Key(b Binding) ebiten.Key {
	return s.Keys[b]
}

// JoystickLayout says which axes and buttons of a joystick drive a player.
type JoystickLayout struct {
	MoveXAxis int
	MoveYAxis int
	AimXAxis  int
	AimYAxis  int
	Fire      []int
	Skip      int
}

var (
	KeyboardPlayerOne = Scheme{
		Name: "keyboard1",
		Keys: [bindingCount]ebiten.Key{
			ebiten.KeyW, ebiten.KeyA, ebiten.KeyS, ebiten.KeyD,
			ebiten.KeyG, ebiten.KeyH,
			ebiten.KeySpace,
			ebiten.KeyT,
		},
	}

	KeyboardPlayerTwo = Scheme{
		Name: "keyboard2",
		Keys: [bindingCount]ebiten.Key{
			ebiten.KeyArrowUp, ebiten.KeyArrowLeft, ebiten.KeyArrowDown, ebiten.KeyArrowRight,
			ebiten.KeyNumpad1, ebiten.KeyNumpad2,
			ebiten.KeyControlRight,
			ebiten.KeyNumpad3,
		},
	}

	JoystickPlayer = JoystickLayout{
		MoveXAxis: 0,
		MoveYAxis: 1,
		AimXAxis:  2,
		AimYAxis:  3,
		Fire:      []int{5, 10},
		Skip:      1,
	}
)

// SchemeByName resolves a layout name from configuration or flags.
func SchemeByName(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", KeyboardPlayerOne.Name:
		return KeyboardPlayerOne, nil
	case KeyboardPlayerTwo.Name:
		return KeyboardPlayerTwo, nil
	default:
		return Scheme{}, fmt.Errorf("control: unknown scheme %q", name)
	}
}
