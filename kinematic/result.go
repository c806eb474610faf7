package kinematic

import (
	"math"

	"github.com/jakecoffman/cp"
)

// MoveIntent is a requested displacement. Forced moves come from being pushed and
// honour slopes even when the travelled path ends up longer than requested.
type MoveIntent struct {
	Delta  cp.Vector
	Forced bool
	Mass   float64
}

// MoveResult is everything a controller may learn about a resolved move.
type MoveResult struct {
	Delta       cp.Vector
	Grounded    bool
	Sliding     bool
	SlideNormal cp.Vector
	HitCeiling  bool

	SteppingUp    bool
	WasSteppingUp bool

	// Mass is the pushing mass the move was resolved with.
	Mass float64
}

type targetMove struct {
	applied   cp.Vector
	requested cp.Vector
	forced    bool
	remaining float64
}

func newTargetMove(intent MoveIntent) targetMove {
	return targetMove{
		requested: intent.Delta,
		forced:    intent.Forced,
		remaining: math.Abs(intent.Delta.X),
	}
}

func (t *targetMove) updateVertical(v cp.Vector) {
	t.applied = t.applied.Add(v)
	if t.forced {
		t.recompute()
	}
}

// update consumes travel. Voluntary moves pay for path length, forced moves only
// for horizontal progress.
func (t *targetMove) update(v cp.Vector) {
	t.applied = t.applied.Add(v)
	if t.forced {
		t.recompute()
		return
	}
	t.remaining -= v.Length()
}

func (t *targetMove) recompute() {
	t.remaining = math.Abs(t.requested.X - t.applied.X)
}
