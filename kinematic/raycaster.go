package kinematic

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/collision"
)

var (
	up    = cp.Vector{X: 0, Y: 1}
	down  = cp.Vector{X: 0, Y: -1}
	left  = cp.Vector{X: -1, Y: 0}
	right = cp.Vector{X: 1, Y: 0}
)

// Corner selects the origin of a corner ray.
type Corner int

const (
	BottomLeft Corner = iota
	BottomRight
)

func (c Corner) String() string {
	switch c {
	case BottomLeft:
		return "bottom_left"
	case BottomRight:
		return "bottom_right"
	default:
		return fmt.Sprintf("corner(%d)", int(c))
	}
}

// Box is a collider's bounds inset by SkinWidth on every side.
type Box struct {
	Center      cp.Vector
	Size        cp.Vector
	BottomLeft  cp.Vector
	BottomRight cp.Vector
}

// Raycaster casts rays and box sweeps from a collider's inset bounds.
// UpdateBounds must run before the casts of a tick.
type Raycaster struct {
	world    *collision.World
	collider *collision.Collider

	CollisionMask collision.Layer
	PushableMask  collision.Layer

	box           Box
	previousLayer collision.Layer
	disabled      bool
}

func NewRaycaster(world *collision.World, collider *collision.Collider, collisionMask, pushableMask collision.Layer) *Raycaster {
	r := &Raycaster{
		world:         world,
		collider:      collider,
		CollisionMask: collisionMask,
		PushableMask:  pushableMask,
	}
	r.UpdateBounds()
	return r
}

func (r *Raycaster) UpdateBounds() {
	bb := r.collider.Bounds()
	bb = cp.BB{L: bb.L + SkinWidth, B: bb.B + SkinWidth, R: bb.R - SkinWidth, T: bb.T - SkinWidth}
	r.box = Box{
		Center:      bb.Center(),
		Size:        cp.Vector{X: bb.R - bb.L, Y: bb.T - bb.B},
		BottomLeft:  cp.Vector{X: bb.L, Y: bb.B},
		BottomRight: cp.Vector{X: bb.R, Y: bb.B},
	}
}

func (r *Raycaster) Box() Box {
	return r.box
}

// ControllerHeight is the full height of the collider, skin included.
func (r *Raycaster) ControllerHeight() float64 {
	return r.collider.Size().Y
}

func (r *Raycaster) CastBox(offset, dir cp.Vector, dist float64) (collision.Hit, bool) {
	return r.world.BoxCast(r.box.Center.Add(offset), r.box.Size, dir, dist+SkinWidth, r.CollisionMask, r.collider)
}

// CastRayCorner casts a single ray from one of the bottom corners.
func (r *Raycaster) CastRayCorner(corner Corner, offset, dir cp.Vector, dist float64) (collision.Hit, bool) {
	var origin cp.Vector
	switch corner {
	case BottomLeft:
		origin = r.box.BottomLeft
	case BottomRight:
		origin = r.box.BottomRight
	default:
		panic(fmt.Sprintf("kinematic: unknown corner %v", corner))
	}
	return r.world.Raycast(origin.Add(offset), dir, dist+SkinWidth, r.CollisionMask, r.collider)
}

// MaxMove returns the farthest move along dir, up to dist, that keeps the box clear
// of obstacles. The bool reports whether something was in the way.
func (r *Raycaster) MaxMove(offset, dir cp.Vector, dist float64) (cp.Vector, bool) {
	hit, ok := r.CastBox(offset, dir, dist)
	return r.MaxMoveForHit(hit, ok, dir, dist), ok
}

// MaxMoveForHit applies the MaxMove clamp to a hit that was already cast.
func (r *Raycaster) MaxMoveForHit(hit collision.Hit, ok bool, dir cp.Vector, dist float64) cp.Vector {
	if !ok {
		return dir.Mult(dist)
	}
	if hit.Distance <= 2*SkinWidth {
		return cp.Vector{}
	}
	return dir.Mult(hit.Distance - 2*SkinWidth)
}

// CastBroadPush finds up to four pushable colliders along the sweep, closest first.
func (r *Raycaster) CastBroadPush(offset, dir cp.Vector, dist float64) []collision.Hit {
	return r.world.BoxCastAll(r.box.Center.Add(offset), r.box.Size, dir, dist+SkinWidth, r.PushableMask, maxPushHits, r.collider)
}

// DisableCollisions hides the collider from other casts until RestoreCollisions.
func (r *Raycaster) DisableCollisions() {
	if r.disabled {
		return
	}
	r.previousLayer = r.collider.Layer()
	r.collider.SetLayer(collision.LayerNoCollision)
	r.disabled = true
}

func (r *Raycaster) RestoreCollisions() {
	if !r.disabled {
		return
	}
	r.collider.SetLayer(r.previousLayer)
	r.disabled = false
}
