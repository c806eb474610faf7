package component

import "github.com/jakecoffman/cp"

// Transform is the world-space box of an entity, refreshed after every move.
type Transform struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (t *Transform) Center() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

func (t *Transform) Bounds() cp.BB {
	return cp.NewBBForExtents(t.Center(), t.Width/2, t.Height/2)
}

// SetBounds centers the transform on bb.
func (t *Transform) SetBounds(bb cp.BB) {
	t.X = (bb.L + bb.R) / 2
	t.Y = (bb.B + bb.T) / 2
	t.Width = bb.R - bb.L
	t.Height = bb.T - bb.B
}

var TransformComponent = NewComponent[Transform]()
