package input

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/kinematic/common"
)

type fakeSource struct {
	keys    map[ebiten.Key]bool
	buttons map[ebiten.StandardGamepadButton]bool
	axes    map[ebiten.StandardGamepadAxis]float64
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		keys:    make(map[ebiten.Key]bool),
		buttons: make(map[ebiten.StandardGamepadButton]bool),
		axes:    make(map[ebiten.StandardGamepadAxis]float64),
	}
}

func (f *fakeSource) KeyPressed(k ebiten.Key) bool { return f.keys[k] }
func (f *fakeSource) GamepadButtonPressed(b ebiten.StandardGamepadButton) bool {
	return f.buttons[b]
}
func (f *fakeSource) GamepadAxis(a ebiten.StandardGamepadAxis) float64 { return f.axes[a] }

func mustActions(t *testing.T, b Bindings) *Actions {
	t.Helper()
	a, err := NewActions(b)
	if err != nil {
		t.Fatalf("NewActions: %v", err)
	}
	return a
}

func TestButtonTriggerBuffer(t *testing.T) {
	a := mustActions(t, DefaultBindings())
	src := newFakeSource()
	jump := a.Gameplay.Jump
	dt := common.FixedDelta

	if jump.Triggered() {
		t.Fatal("fresh button must not be triggered")
	}

	src.keys[ebiten.KeySpace] = true
	a.Update(src, dt)
	if !jump.Pressed() || !jump.Triggered() || !jump.TriggeredWithin(0) {
		t.Fatal("held button must be triggered")
	}

	src.keys[ebiten.KeySpace] = false
	a.Update(src, dt)
	if jump.Pressed() {
		t.Fatal("released button still pressed")
	}
	if !jump.Triggered() {
		t.Fatal("button released one tick ago is within the default buffer")
	}
	if jump.TriggeredWithin(0) {
		t.Fatal("zero buffer only matches a held button")
	}

	a.Update(src, dt)
	if jump.Triggered() {
		t.Fatalf("button released %v ago is outside the buffer", jump.ReleasedFor())
	}
}

func TestAxisKeyboardAndGamepad(t *testing.T) {
	a := mustActions(t, DefaultBindings())
	src := newFakeSource()
	move := a.Gameplay.MoveHorizontal

	tests := []struct {
		name  string
		keys  []ebiten.Key
		stick float64
		want  float64
	}{
		{"idle", nil, 0, 0},
		{"left_key", []ebiten.Key{ebiten.KeyA}, 0, -1},
		{"both_keys_cancel", []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowRight}, 0, 0},
		{"stick_in_deadzone", []ebiten.Key{ebiten.KeyD}, 0.1, 1},
		{"stick_overrides", []ebiten.Key{ebiten.KeyD}, -0.5, -0.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clear(src.keys)
			for _, k := range tc.keys {
				src.keys[k] = true
			}
			src.axes[ebiten.StandardGamepadAxisLeftStickHorizontal] = tc.stick
			a.Update(src, common.FixedDelta)
			if got := move.Value(); got != tc.want {
				t.Fatalf("value = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAxis2DNavigate(t *testing.T) {
	a := mustActions(t, DefaultBindings())
	src := newFakeSource()

	src.keys[ebiten.KeyW] = true
	src.keys[ebiten.KeyD] = true
	a.Update(src, common.FixedDelta)
	v := a.Menu.Navigate.Value()
	if v.X <= 0 || v.Y <= 0 || v.Length() > 1+1e-9 {
		t.Fatalf("diagonal = %v", v)
	}

	clear(src.keys)
	src.axes[ebiten.StandardGamepadAxisLeftStickVertical] = -1
	a.Update(src, common.FixedDelta)
	if v := a.Menu.Navigate.Value(); v.Y != 1 {
		t.Fatalf("stick up should read as +y, got %v", v)
	}
}

func TestNewActionsErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Bindings)
		wantErr error
	}{
		{"unknown_key", func(b *Bindings) {
			b.Buttons[ActionJump] = ButtonBinding{Keys: []string{"NotAKey"}}
		}, ErrUnknownKey},
		{"unknown_gamepad_button", func(b *Bindings) {
			b.Buttons[ActionJump] = ButtonBinding{Buttons: []string{"Trigger9"}}
		}, ErrUnknownKey},
		{"unknown_gamepad_axis", func(b *Bindings) {
			b.Axes[ActionMoveHorizontal] = AxisBinding{Axis: "Wheel"}
		}, ErrUnknownKey},
		{"unknown_action", func(b *Bindings) {
			b.Buttons["dash"] = ButtonBinding{Keys: []string{"X"}}
		}, ErrUnknownAction},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := DefaultBindings()
			tc.mutate(&b)
			_, err := NewActions(b)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestParseBindings(t *testing.T) {
	doc := []byte(`
deadzone: 0.3
buttons:
  jump:
    keys: [k]
    buttons: [right_bottom]
axes:
  move_horizontal:
    negative: [j]
    positive: [l]
    axis: LeftStickHorizontal
`)
	b, err := ParseBindings(doc)
	if err != nil {
		t.Fatalf("ParseBindings: %v", err)
	}
	a := mustActions(t, b)
	src := newFakeSource()
	src.keys[ebiten.KeyK] = true
	src.keys[ebiten.KeyL] = true
	a.Update(src, common.FixedDelta)
	if !a.Gameplay.Jump.Pressed() || a.Gameplay.MoveHorizontal.Value() != 1 {
		t.Fatal("yaml bindings were not applied")
	}
	if a.Gameplay.Interact.Pressed() {
		t.Fatal("unbound action must stay released")
	}
}

func TestUnknownActionPanics(t *testing.T) {
	a := mustActions(t, DefaultBindings())
	if a.Button(ActionJump) != a.Gameplay.Jump {
		t.Fatal("lookup returned a different button")
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	a.Axis("steer")
}
