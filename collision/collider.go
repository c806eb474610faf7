package collision

import "github.com/jakecoffman/cp"

// BodyID identifies a dynamic collider for the lifetime of its world.
type BodyID uint32

// Collider is a dynamic axis-aligned box. Its bounds are the position of whatever owns it.
type Collider struct {
	id     BodyID
	bounds cp.BB
	layer  Layer

	// Owner is the object queries report for this collider, e.g. the mover driving it.
	Owner any
}

func (c *Collider) ID() BodyID {
	return c.id
}

func (c *Collider) Bounds() cp.BB {
	return c.bounds
}

func (c *Collider) Center() cp.Vector {
	return c.bounds.Center()
}

func (c *Collider) Size() cp.Vector {
	return cp.Vector{X: c.bounds.R - c.bounds.L, Y: c.bounds.T - c.bounds.B}
}

func (c *Collider) Layer() Layer {
	return c.layer
}

func (c *Collider) SetLayer(l Layer) {
	c.layer = l
}

// Translate moves the collider by delta.
func (c *Collider) Translate(delta cp.Vector) {
	c.bounds = c.bounds.Offset(delta)
}

// SetCenter teleports the collider, keeping its size.
func (c *Collider) SetCenter(p cp.Vector) {
	c.Translate(p.Sub(c.Center()))
}

// Resize keeps the center and replaces the size.
func (c *Collider) Resize(size cp.Vector) {
	c.bounds = cp.NewBBForExtents(c.Center(), size.X/2, size.Y/2)
}
