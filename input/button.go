package input

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/common"
)

// DefaultTriggerBuffer is how long a released button still reads as triggered.
const DefaultTriggerBuffer = 1.25 * common.FixedDelta

// ButtonInput tracks how long ago a button was last held.
type ButtonInput struct {
	pressed     bool
	releasedFor float64
}

func newButtonInput() *ButtonInput {
	return &ButtonInput{releasedFor: 1}
}

func (b *ButtonInput) update(pressed bool, dt float64) {
	b.pressed = pressed
	if pressed {
		b.releasedFor = 0
		return
	}
	b.releasedFor += dt
}

// Pressed reports whether the button is held this tick.
func (b *ButtonInput) Pressed() bool {
	return b.pressed
}

// Triggered reports whether the button is held or was released within the default buffer.
func (b *ButtonInput) Triggered() bool {
	return b.TriggeredWithin(DefaultTriggerBuffer)
}

// TriggeredWithin reports whether the button is held or was released at most buffer
// seconds ago. A zero buffer only matches a held button.
func (b *ButtonInput) TriggeredWithin(buffer float64) bool {
	return b.releasedFor <= buffer
}

// ReleasedFor is the time since the button was last held, 0 while it is held.
func (b *ButtonInput) ReleasedFor() float64 {
	return b.releasedFor
}

// AxisInput is a value in [-1, 1].
type AxisInput struct {
	value float64
}

func (a *AxisInput) Value() float64 {
	return a.value
}

func (a *AxisInput) set(v float64) {
	a.value = common.Clamp(v, -1, 1)
}

// Axis2DInput is a direction no longer than 1, with y pointing up.
type Axis2DInput struct {
	value cp.Vector
}

func (a *Axis2DInput) Value() cp.Vector {
	return a.value
}

func (a *Axis2DInput) set(v cp.Vector) {
	if l := math.Hypot(v.X, v.Y); l > 1 {
		v = v.Mult(1 / l)
	}
	a.value = v
}
