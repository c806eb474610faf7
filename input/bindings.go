package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownKey    = errors.New("input: unknown key")
	ErrUnknownAction = errors.New("input: unknown action")
)

const defaultDeadzone = 0.2

// ButtonBinding maps keyboard keys and gamepad buttons to one button action.
type ButtonBinding struct {
	Keys    []string `yaml:"keys"`
	Buttons []string `yaml:"buttons"`
}

// AxisBinding maps key pairs and a gamepad axis to a one dimensional action.
type AxisBinding struct {
	Negative []string `yaml:"negative"`
	Positive []string `yaml:"positive"`
	Axis     string   `yaml:"axis"`
}

// Axis2DBinding maps four key groups and two gamepad axes to a direction action.
type Axis2DBinding struct {
	Left  []string `yaml:"left"`
	Right []string `yaml:"right"`
	Down  []string `yaml:"down"`
	Up    []string `yaml:"up"`
	AxisX string   `yaml:"axis_x"`
	AxisY string   `yaml:"axis_y"`
}

// Bindings is the input.yaml layout. Keys use ebiten key names such as "Space" or
// "ArrowLeft", gamepad names follow the standard layout without the prefix.
type Bindings struct {
	Deadzone float64                  `yaml:"deadzone"`
	Buttons  map[string]ButtonBinding `yaml:"buttons"`
	Axes     map[string]AxisBinding   `yaml:"axes"`
	Axes2D   map[string]Axis2DBinding `yaml:"axes_2d"`
}

// ParseBindings decodes an input.yaml document.
func ParseBindings(data []byte) (Bindings, error) {
	var b Bindings
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Bindings{}, fmt.Errorf("input: unmarshal bindings: %w", err)
	}
	return b, nil
}

// DefaultBindings is the layout used when no input.yaml is available.
func DefaultBindings() Bindings {
	return Bindings{
		Deadzone: defaultDeadzone,
		Buttons: map[string]ButtonBinding{
			ActionJump:     {Keys: []string{"Space", "W", "ArrowUp"}, Buttons: []string{"RightBottom"}},
			ActionInteract: {Keys: []string{"E", "ShiftLeft"}, Buttons: []string{"RightLeft"}},
			ActionPause:    {Keys: []string{"Escape", "P"}, Buttons: []string{"CenterRight"}},
			ActionSelect:   {Keys: []string{"Enter", "Space"}, Buttons: []string{"RightBottom"}},
			ActionBack:     {Keys: []string{"Escape", "Backspace"}, Buttons: []string{"RightRight"}},
		},
		Axes: map[string]AxisBinding{
			ActionMoveHorizontal: {Negative: []string{"A", "ArrowLeft"}, Positive: []string{"D", "ArrowRight"}, Axis: "LeftStickHorizontal"},
		},
		Axes2D: map[string]Axis2DBinding{
			ActionNavigate: {
				Left:  []string{"A", "ArrowLeft"},
				Right: []string{"D", "ArrowRight"},
				Down:  []string{"S", "ArrowDown"},
				Up:    []string{"W", "ArrowUp"},
				AxisX: "LeftStickHorizontal",
				AxisY: "LeftStickVertical",
			},
		},
	}
}

var gamepadButtons = map[string]ebiten.StandardGamepadButton{
	"rightbottom":      ebiten.StandardGamepadButtonRightBottom,
	"rightright":       ebiten.StandardGamepadButtonRightRight,
	"rightleft":        ebiten.StandardGamepadButtonRightLeft,
	"righttop":         ebiten.StandardGamepadButtonRightTop,
	"fronttopleft":     ebiten.StandardGamepadButtonFrontTopLeft,
	"fronttopright":    ebiten.StandardGamepadButtonFrontTopRight,
	"frontbottomleft":  ebiten.StandardGamepadButtonFrontBottomLeft,
	"frontbottomright": ebiten.StandardGamepadButtonFrontBottomRight,
	"centerleft":       ebiten.StandardGamepadButtonCenterLeft,
	"centerright":      ebiten.StandardGamepadButtonCenterRight,
	"leftstick":        ebiten.StandardGamepadButtonLeftStick,
	"rightstick":       ebiten.StandardGamepadButtonRightStick,
	"lefttop":          ebiten.StandardGamepadButtonLeftTop,
	"leftbottom":       ebiten.StandardGamepadButtonLeftBottom,
	"leftleft":         ebiten.StandardGamepadButtonLeftLeft,
	"leftright":        ebiten.StandardGamepadButtonLeftRight,
	"centercenter":     ebiten.StandardGamepadButtonCenterCenter,
}

var gamepadAxes = map[string]ebiten.StandardGamepadAxis{
	"leftstickhorizontal":  ebiten.StandardGamepadAxisLeftStickHorizontal,
	"leftstickvertical":    ebiten.StandardGamepadAxisLeftStickVertical,
	"rightstickhorizontal": ebiten.StandardGamepadAxisRightStickHorizontal,
	"rightstickvertical":   ebiten.StandardGamepadAxisRightStickVertical,
}

func parseKeys(names []string) ([]ebiten.Key, error) {
	keys := make([]ebiten.Key, 0, len(names))
	for _, name := range names {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return nil, fmt.Errorf("%w: key %q", ErrUnknownKey, name)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func parseGamepadButtons(names []string) ([]ebiten.StandardGamepadButton, error) {
	buttons := make([]ebiten.StandardGamepadButton, 0, len(names))
	for _, name := range names {
		b, ok := gamepadButtons[normalizeName(name)]
		if !ok {
			return nil, fmt.Errorf("%w: gamepad button %q", ErrUnknownKey, name)
		}
		buttons = append(buttons, b)
	}
	return buttons, nil
}

// parseGamepadAxis returns ok=false for an empty name.
func parseGamepadAxis(name string) (ebiten.StandardGamepadAxis, bool, error) {
	if name == "" {
		return 0, false, nil
	}
	a, ok := gamepadAxes[normalizeName(name)]
	if !ok {
		return 0, false, fmt.Errorf("%w: gamepad axis %q", ErrUnknownKey, name)
	}
	return a, true, nil
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "standardgamepadbutton")
	name = strings.TrimPrefix(name, "standardgamepadaxis")
	return strings.ReplaceAll(name, "_", "")
}
