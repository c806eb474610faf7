package input

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Source reports raw device state.
type Source interface {
	KeyPressed(key ebiten.Key) bool
	GamepadButtonPressed(button ebiten.StandardGamepadButton) bool
	GamepadAxis(axis ebiten.StandardGamepadAxis) float64
}

// EbitenSource reads the keyboard and the first connected standard gamepad.
type EbitenSource struct {
	gamepad   ebiten.GamepadID
	connected bool
}

func NewEbitenSource() *EbitenSource {
	return &EbitenSource{}
}

// Poll picks up connected gamepads. Call once per tick before reading.
func (s *EbitenSource) Poll() {
	s.connected = false
	for _, id := range ebiten.GamepadIDs() {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			s.gamepad = id
			s.connected = true
			return
		}
	}
}

func (s *EbitenSource) KeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

func (s *EbitenSource) GamepadButtonPressed(button ebiten.StandardGamepadButton) bool {
	if !s.connected {
		return false
	}
	return ebiten.IsStandardGamepadButtonPressed(s.gamepad, button)
}

func (s *EbitenSource) GamepadAxis(axis ebiten.StandardGamepadAxis) float64 {
	if !s.connected {
		return 0
	}
	return ebiten.StandardGamepadAxisValue(s.gamepad, axis)
}
