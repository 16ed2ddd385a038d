package input

import (
	"github.com/hajimehoshi/ebiten/v2"
)

const keyCount = int(ebiten.KeyMax) + 1

const mouseButtonCount = int(ebiten.MouseButtonMax) + 1

// joystick holds the snapshot of one gamepad enumerated at Init.
type joystick struct {
	id       ebiten.GamepadID
	current  []bool
	previous []bool
	axes     []float64
}

// State is a per-frame snapshot of keyboard, mouse and joystick devices.
//
// Update must run exactly once per frame before any query. Queries compare
// the last two snapshots, so a key is "pressed" only on the first frame it
// is held.
type State struct {
	src Source

	currentKeys  [keyCount]bool
	previousKeys [keyCount]bool

	currentMouse  [mouseButtonCount]bool
	previousMouse [mouseButtonCount]bool
	cursorX       int
	cursorY       int

	joysticks []joystick
}

func NewState(src Source) *State {
	return &State{src: src}
}

// Init enumerates joysticks. Devices plugged in later are ignored.
func (s *State) Init() {
	if s == nil || s.src == nil {
		return
	}

	s.Reset()
	s.joysticks = s.joysticks[:0]
	for _, id := range s.src.AppendGamepadIDs(nil) {
		buttons := s.src.GamepadButtonCount(id)
		if buttons < 0 {
			buttons = 0
		}
		axes := s.src.GamepadAxisCount(id)
		if axes < 0 {
			axes = 0
		}
		s.joysticks = append(s.joysticks, joystick{
			id:       id,
			current:  make([]bool, buttons),
			previous: make([]bool, buttons),
			axes:     make([]float64, axes),
		})
	}
}

// Reset clears both snapshots, keeping the enumerated devices.
func (s *State) Reset() {
	if s == nil {
		return
	}
	s.currentKeys = [keyCount]bool{}
	s.previousKeys = [keyCount]bool{}
	s.currentMouse = [mouseButtonCount]bool{}
	s.previousMouse = [mouseButtonCount]bool{}
	for i := range s.joysticks {
		clear(s.joysticks[i].current)
		clear(s.joysticks[i].previous)
		clear(s.joysticks[i].axes)
	}
}

// Update snapshots every device for the current frame.
func (s *State) Update() {
	if s == nil || s.src == nil {
		return
	}

	s.previousKeys = s.currentKeys
	for k := range s.currentKeys {
		s.currentKeys[k] = s.src.IsKeyPressed(ebiten.Key(k))
	}

	s.previousMouse = s.currentMouse
	for b := range s.currentMouse {
		s.currentMouse[b] = s.src.IsMouseButtonPressed(ebiten.MouseButton(b))
	}
	s.cursorX, s.cursorY = s.src.CursorPosition()

	for i := range s.joysticks {
		js := &s.joysticks[i]
		copy(js.previous, js.current)
		for b := range js.current {
			js.current[b] = s.src.IsGamepadButtonPressed(js.id, ebiten.GamepadButton(b))
		}
		for a := range js.axes {
			js.axes[a] = s.src.GamepadAxisValue(js.id, a)
		}
	}
}

func validKey(key ebiten.Key) bool {
	return key >= 0 && int(key) < keyCount
}

// IsKeyPressed reports a rising edge: held now, not held last frame.
func (s *State) IsKeyPressed(key ebiten.Key) bool {
	if s == nil || !validKey(key) {
		return false
	}
	return s.currentKeys[key] && !s.previousKeys[key]
}

// IsKeyReleased reports a falling edge.
func (s *State) IsKeyReleased(key ebiten.Key) bool {
	if s == nil || !validKey(key) {
		return false
	}
	return !s.currentKeys[key] && s.previousKeys[key]
}

// IsKeyHold reports whether the key is held this frame.
func (s *State) IsKeyHold(key ebiten.Key) bool {
	if s == nil || !validKey(key) {
		return false
	}
	return s.currentKeys[key]
}

func validMouseButton(b ebiten.MouseButton) bool {
	return b >= 0 && int(b) < mouseButtonCount
}

func (s *State) IsMouseButtonPressed(b ebiten.MouseButton) bool {
	if s == nil || !validMouseButton(b) {
		return false
	}
	return s.currentMouse[b] && !s.previousMouse[b]
}

func (s *State) IsMouseButtonReleased(b ebiten.MouseButton) bool {
	if s == nil || !validMouseButton(b) {
		return false
	}
	return !s.currentMouse[b] && s.previousMouse[b]
}

func (s *State) IsMouseButtonHold(b ebiten.MouseButton) bool {
	if s == nil || !validMouseButton(b) {
		return false
	}
	return s.currentMouse[b]
}

// CursorPosition returns the cursor position captured by the last Update.
func (s *State) CursorPosition() (int, int) {
	if s == nil {
		return 0, 0
	}
	return s.cursorX, s.cursorY
}

// JoystickCount returns the number of joysticks enumerated at Init.
func (s *State) JoystickCount() int {
	if s == nil {
		return 0
	}
	return len(s.joysticks)
}

func (s *State) IsJoystickConnected(index int) bool {
	return s != nil && index >= 0 && index < len(s.joysticks)
}

func (s *State) joystickButton(index, button int) (cur, prev bool, ok bool) {
	if !s.IsJoystickConnected(index) {
		return false, false, false
	}
	js := &s.joysticks[index]
	if button < 0 || button >= len(js.current) {
		return false, false, false
	}
	return js.current[button], js.previous[button], true
}

func (s *State) IsJoystickButtonPressed(index, button int) bool {
	cur, prev, ok := s.joystickButton(index, button)
	return ok && cur && !prev
}

func (s *State) IsJoystickButtonReleased(index, button int) bool {
	cur, prev, ok := s.joystickButton(index, button)
	return ok && !cur && prev
}

func (s *State) IsJoystickButtonHold(index, button int) bool {
	cur, _, ok := s.joystickButton(index, button)
	return ok && cur
}

// JoystickAxis returns the raw axis value in [-1, 1], or 0 for an unknown
// device or axis. No dead zone is applied.
func (s *State) JoystickAxis(index, axis int) float64 {
	if !s.IsJoystickConnected(index) {
		return 0
	}
	axes := s.joysticks[index].axes
	if axis < 0 || axis >= len(axes) {
		return 0
	}
	return axes[axis]
}
