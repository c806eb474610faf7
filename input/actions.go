package input

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

const (
	ActionJump           = "jump"
	ActionInteract       = "interact"
	ActionPause          = "pause"
	ActionMoveHorizontal = "move_horizontal"
	ActionSelect         = "select"
	ActionBack           = "back"
	ActionNavigate       = "navigate"
)

// Gameplay is the action map read by the player controller.
type Gameplay struct {
	Jump           *ButtonInput
	Interact       *ButtonInput
	Pause          *ButtonInput
	MoveHorizontal *AxisInput
}

// Menu is the action map read while paused.
type Menu struct {
	Select   *ButtonInput
	Back     *ButtonInput
	Navigate *Axis2DInput
}

type buttonSource struct {
	keys    []ebiten.Key
	buttons []ebiten.StandardGamepadButton
}

func (s buttonSource) pressed(src Source) bool {
	for _, k := range s.keys {
		if src.KeyPressed(k) {
			return true
		}
	}
	for _, b := range s.buttons {
		if src.GamepadButtonPressed(b) {
			return true
		}
	}
	return false
}

type axisSource struct {
	negative buttonSource
	positive buttonSource
	axis     ebiten.StandardGamepadAxis
	hasAxis  bool
}

func (s axisSource) value(src Source, deadzone float64) float64 {
	v := 0.0
	if s.negative.pressed(src) {
		v -= 1
	}
	if s.positive.pressed(src) {
		v += 1
	}
	if s.hasAxis {
		if g := src.GamepadAxis(s.axis); math.Abs(g) > deadzone {
			v = g
		}
	}
	return v
}

// Actions owns every action map and refreshes them from a Source once per tick.
type Actions struct {
	Gameplay Gameplay
	Menu     Menu

	deadzone float64
	buttons  map[string]*ButtonInput
	axes     map[string]*AxisInput
	axes2D   map[string]*Axis2DInput

	buttonSources map[string]buttonSource
	axisSources   map[string]axisSource
	axis2DSources map[string][2]axisSource
}

// NewActions compiles bindings. Unknown key names and unknown actions are errors.
func NewActions(b Bindings) (*Actions, error) {
	a := &Actions{
		deadzone:      b.Deadzone,
		buttons:       make(map[string]*ButtonInput),
		axes:          make(map[string]*AxisInput),
		axes2D:        make(map[string]*Axis2DInput),
		buttonSources: make(map[string]buttonSource),
		axisSources:   make(map[string]axisSource),
		axis2DSources: make(map[string][2]axisSource),
	}
	if a.deadzone <= 0 {
		a.deadzone = defaultDeadzone
	}

	a.Gameplay = Gameplay{
		Jump:           a.addButton(ActionJump),
		Interact:       a.addButton(ActionInteract),
		Pause:          a.addButton(ActionPause),
		MoveHorizontal: a.addAxis(ActionMoveHorizontal),
	}
	a.Menu = Menu{
		Select:   a.addButton(ActionSelect),
		Back:     a.addButton(ActionBack),
		Navigate: a.addAxis2D(ActionNavigate),
	}

	for name, binding := range b.Buttons {
		if _, ok := a.buttons[name]; !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownAction, name)
		}
		src, err := compileButton(binding.Keys, binding.Buttons)
		if err != nil {
			return nil, fmt.Errorf("input: button %s: %w", name, err)
		}
		a.buttonSources[name] = src
	}
	for name, binding := range b.Axes {
		if _, ok := a.axes[name]; !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownAction, name)
		}
		src, err := compileAxis(binding.Negative, binding.Positive, binding.Axis)
		if err != nil {
			return nil, fmt.Errorf("input: axis %s: %w", name, err)
		}
		a.axisSources[name] = src
	}
	for name, binding := range b.Axes2D {
		if _, ok := a.axes2D[name]; !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownAction, name)
		}
		x, err := compileAxis(binding.Left, binding.Right, binding.AxisX)
		if err != nil {
			return nil, fmt.Errorf("input: axis %s: %w", name, err)
		}
		y, err := compileAxis(binding.Down, binding.Up, binding.AxisY)
		if err != nil {
			return nil, fmt.Errorf("input: axis %s: %w", name, err)
		}
		a.axis2DSources[name] = [2]axisSource{x, y}
	}
	return a, nil
}

func compileButton(keyNames, buttonNames []string) (buttonSource, error) {
	keys, err := parseKeys(keyNames)
	if err != nil {
		return buttonSource{}, err
	}
	buttons, err := parseGamepadButtons(buttonNames)
	if err != nil {
		return buttonSource{}, err
	}
	return buttonSource{keys: keys, buttons: buttons}, nil
}

func compileAxis(negative, positive []string, axisName string) (axisSource, error) {
	neg, err := compileButton(negative, nil)
	if err != nil {
		return axisSource{}, err
	}
	pos, err := compileButton(positive, nil)
	if err != nil {
		return axisSource{}, err
	}
	axis, ok, err := parseGamepadAxis(axisName)
	if err != nil {
		return axisSource{}, err
	}
	return axisSource{negative: neg, positive: pos, axis: axis, hasAxis: ok}, nil
}

func (a *Actions) addButton(name string) *ButtonInput {
	b := newButtonInput()
	a.buttons[name] = b
	return b
}

func (a *Actions) addAxis(name string) *AxisInput {
	ax := &AxisInput{}
	a.axes[name] = ax
	return ax
}

func (a *Actions) addAxis2D(name string) *Axis2DInput {
	ax := &Axis2DInput{}
	a.axes2D[name] = ax
	return ax
}

// Update samples src and advances every button timer by dt.
func (a *Actions) Update(src Source, dt float64) {
	for name, b := range a.buttons {
		b.update(a.buttonSources[name].pressed(src), dt)
	}
	for name, ax := range a.axes {
		ax.set(a.axisSources[name].value(src, a.deadzone))
	}
	for name, ax := range a.axes2D {
		s := a.axis2DSources[name]
		// Standard gamepad sticks report y down.
		y := s[1]
		y.hasAxis = false
		v := cp.Vector{X: s[0].value(src, a.deadzone), Y: y.value(src, a.deadzone)}
		if s[1].hasAxis {
			if g := -src.GamepadAxis(s[1].axis); math.Abs(g) > a.deadzone {
				v.Y = g
			}
		}
		ax.set(v)
	}
}

// Button returns a button action by name and panics when there is none.
func (a *Actions) Button(name string) *ButtonInput {
	b, ok := a.buttons[name]
	if !ok {
		panic(fmt.Sprintf("input: unknown button action %q", name))
	}
	return b
}

// Axis returns an axis action by name and panics when there is none.
func (a *Actions) Axis(name string) *AxisInput {
	ax, ok := a.axes[name]
	if !ok {
		panic(fmt.Sprintf("input: unknown axis action %q", name))
	}
	return ax
}

// Axis2D returns a two dimensional axis action by name and panics when there is none.
func (a *Actions) Axis2D(name string) *Axis2DInput {
	ax, ok := a.axes2D[name]
	if !ok {
		panic(fmt.Sprintf("input: unknown axis action %q", name))
	}
	return ax
}
