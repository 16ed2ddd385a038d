package control

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// Tuned gameplay constants; keep as is.
const (
	// LeftMoveWeight makes keyboard strafing left slower than right.
	LeftMoveWeight = 0.7
	// KeyboardAimStep is the aim change in degrees per frame of a held aim key.
	KeyboardAimStep = 5.0
	// AimDeadZone is the stick magnitude, per axis, below which aim is ignored.
	AimDeadZone = 0.2
)

// Reader is the part of the input state the mapper consults.
type Reader interface {
	IsKeyHold(key ebiten.Key) bool
	IsKeyPressed(key ebiten.Key) bool
	IsJoystickConnected(index int) bool
	IsJoystickButtonPressed(index, button int) bool
	JoystickAxis(index, axis int) float64
}

// Mapper turns a scheme plus the current input snapshot into control
// intent for one player.
type Mapper struct {
	in  Reader
	pad JoystickLayout
}

func NewMapper(in Reader) *Mapper {
	return &Mapper{in: in, pad: JoystickPlayer}
}

// UsesJoystick reports whether Velocity reads the joystick at index. When
// true the aim value is an absolute heading to set; otherwise it is a
// per-frame increment.
func (m *Mapper) UsesJoystick(joystick int) bool {
	return m != nil && m.in != nil && m.in.IsJoystickConnected(joystick)
}

// Velocity returns the movement vector and the aim signal for this frame.
func (m *Mapper) Velocity(scheme *Scheme, joystick int) (cp.Vector, float64) {
	if m == nil || m.in == nil {
		return cp.Vector{}, 0
	}
	if m.UsesJoystick(joystick) {
		return m.joystickVelocity(joystick)
	}
	if scheme == nil {
		return cp.Vector{}, 0
	}
	return m.keyboardVelocity(scheme)
}

func (m *Mapper) keyboardVelocity(scheme *Scheme) (cp.Vector, float64) {
	var move cp.Vector
	if m.in.IsKeyHold(scheme.Key(BindUp)) {
		move.Y -= 1
	}
	if m.in.IsKeyHold(scheme.Key(BindLeft)) {
		move.X -= LeftMoveWeight
	}
	if m.in.IsKeyHold(scheme.Key(BindDown)) {
		move.Y += 1
	}
	if m.in.IsKeyHold(scheme.Key(BindRight)) {
		move.X += 1
	}

	aim := 0.0
	if m.in.IsKeyHold(scheme.Key(BindAimNegative)) {
		aim = -KeyboardAimStep
	}
	// positive wins when both are held
	if m.in.IsKeyHold(scheme.Key(BindAimPositive)) {
		aim = KeyboardAimStep
	}
	return move, aim
}

func (m *Mapper) joystickVelocity(joystick int) (cp.Vector, float64) {
	move := cp.Vector{
		X: m.in.JoystickAxis(joystick, m.pad.MoveXAxis),
		Y: m.in.JoystickAxis(joystick, m.pad.MoveYAxis),
	}

	x, y := m.aimStick(joystick)
	aim := 0.0
	if outsideDeadZone(x, y) {
		angle := math.Atan2(-y, x) * 180 / math.Pi
		aim = -angle
	}
	return move, aim
}

// Aiming reports whether the aim stick of a connected joystick is outside
// the dead zone. A heading of 0 from Velocity is only meaningful when it
// is.
func (m *Mapper) Aiming(joystick int) bool {
	if !m.UsesJoystick(joystick) {
		return false
	}
	return outsideDeadZone(m.aimStick(joystick))
}

func (m *Mapper) aimStick(joystick int) (float64, float64) {
	return m.in.JoystickAxis(joystick, m.pad.AimXAxis), m.in.JoystickAxis(joystick, m.pad.AimYAxis)
}

func outsideDeadZone(x, y float64) bool {
	return x > AimDeadZone || x < -AimDeadZone || y > AimDeadZone || y < -AimDeadZone
}

// Fire reports a rising edge on any fire binding.
func (m *Mapper) Fire(scheme *Scheme, joystick int) bool {
	if m == nil || m.in == nil {
		return false
	}
	if m.UsesJoystick(joystick) {
		for _, b := range m.pad.Fire {
			if m.in.IsJoystickButtonPressed(joystick, b) {
				return true
			}
		}
		return false
	}
	return scheme != nil && m.in.IsKeyPressed(scheme.Key(BindFire))
}

// Skip reports a rising edge on the skip binding.
func (m *Mapper) Skip(scheme *Scheme, joystick int) bool {
	if m == nil || m.in == nil {
		return false
	}
	if m.UsesJoystick(joystick) {
		return m.in.IsJoystickButtonPressed(joystick, m.pad.Skip)
	}
	return scheme != nil && m.in.IsKeyPressed(scheme.Key(BindSkip))
}
