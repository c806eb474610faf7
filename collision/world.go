package collision

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
)

// World answers ray, box sweep and overlap queries. Static level geometry lives in
// a chipmunk space; moving bodies are tracked as dynamic colliders next to it.
type World struct {
	space     *cp.Space
	colliders []*Collider
	nextID    BodyID
}

func NewWorld() *World {
	return &World{space: cp.NewSpace()}
}

// Space exposes the static geometry, mainly for debug drawing.
func (w *World) Space() *cp.Space {
	return w.space
}

// AddStaticBox adds an immovable box in the given layer.
func (w *World) AddStaticBox(bb cp.BB, layer Layer) *cp.Shape {
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	return w.addStatic(shape, layer)
}

// AddStaticPolygon adds an immovable convex polygon. Winding does not matter.
func (w *World) AddStaticPolygon(verts []cp.Vector, layer Layer) *cp.Shape {
	shape := cp.NewPolyShape(w.space.StaticBody, len(verts), verts, cp.NewTransformIdentity(), 0)
	return w.addStatic(shape, layer)
}

func (w *World) addStatic(shape *cp.Shape, layer Layer) *cp.Shape {
	shape.Filter = shapeFilter(layer)
	shape.UserData = layer
	w.space.AddShape(shape)
	return shape
}

// RemoveStatic removes a shape added with AddStaticBox or AddStaticPolygon.
func (w *World) RemoveStatic(shape *cp.Shape) {
	if shape == nil || shape.Space() != w.space {
		return
	}
	w.space.RemoveShape(shape)
}

// AddCollider registers a dynamic box.
func (w *World) AddCollider(bb cp.BB, layer Layer, owner any) *Collider {
	w.nextID++
	c := &Collider{id: w.nextID, bounds: bb, layer: layer, Owner: owner}
	w.colliders = append(w.colliders, c)
	return c
}

// RemoveCollider unregisters c. It reports whether c was registered.
func (w *World) RemoveCollider(c *Collider) bool {
	for i, other := range w.colliders {
		if other == c {
			w.colliders = append(w.colliders[:i], w.colliders[i+1:]...)
			return true
		}
	}
	return false
}

// Colliders returns the registered dynamic colliders in insertion order.
func (w *World) Colliders() []*Collider {
	return w.colliders
}

// Clear drops every static shape and collider.
func (w *World) Clear() {
	w.space = cp.NewSpace()
	w.colliders = nil
}

// BoxCast sweeps a box centered at center along dir and returns the closest hit on mask.
// Colliders listed in ignore are skipped.
func (w *World) BoxCast(center, size, dir cp.Vector, dist float64, mask Layer, ignore ...*Collider) (Hit, bool) {
	var best Hit
	found := false
	w.cast(center, size.Mult(0.5), dir, dist, mask, ignore, func(h Hit) {
		if !found || h.Distance < best.Distance {
			best = h
			found = true
		}
	})
	return best, found
}

// BoxCastAll returns every hit along the sweep ordered by distance. A positive limit
// keeps only the closest hits.
func (w *World) BoxCastAll(center, size, dir cp.Vector, dist float64, mask Layer, limit int, ignore ...*Collider) []Hit {
	var hits []Hit
	w.cast(center, size.Mult(0.5), dir, dist, mask, ignore, func(h Hit) {
		hits = append(hits, h)
	})
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// Raycast returns the closest hit of a ray from origin along dir.
func (w *World) Raycast(origin, dir cp.Vector, dist float64, mask Layer, ignore ...*Collider) (Hit, bool) {
	var best Hit
	found := false
	w.cast(origin, cp.Vector{}, dir, dist, mask, ignore, func(h Hit) {
		if !found || h.Distance < best.Distance {
			best = h
			found = true
		}
	})
	return best, found
}

// OverlapBox returns the colliders on mask whose bounds intersect bb.
func (w *World) OverlapBox(bb cp.BB, mask Layer) []*Collider {
	var out []*Collider
	for _, c := range w.colliders {
		if c.layer.Has(mask) && overlaps(c.bounds, bb) {
			out = append(out, c)
		}
	}
	return out
}

// overlaps is a strict intersection test; touching edges do not overlap.
func overlaps(a, b cp.BB) bool {
	return a.L < b.R && b.L < a.R && a.B < b.T && b.B < a.T
}

func (w *World) cast(start, half, dir cp.Vector, dist float64, mask Layer, ignore []*Collider, visit func(Hit)) {
	if dist < 0 || math.IsNaN(dist) {
		return
	}
	end := start.Add(dir.Mult(dist))
	area := cp.BB{
		L: math.Min(start.X, end.X) - half.X,
		B: math.Min(start.Y, end.Y) - half.Y,
		R: math.Max(start.X, end.X) + half.X,
		T: math.Max(start.Y, end.Y) + half.Y,
	}

	w.space.BBQuery(area, queryFilter(mask), func(shape *cp.Shape, _ interface{}) {
		hit, ok := sweep(polyVerts(shape), half, start, dir, dist)
		if !ok {
			return
		}
		hit.Shape = shape
		visit(hit)
	}, nil)

	for _, c := range w.colliders {
		if !c.layer.Has(mask) || !area.Intersects(c.bounds) || ignored(c, ignore) {
			continue
		}
		hit, ok := sweep(boxVerts(c.bounds), half, start, dir, dist)
		if !ok {
			continue
		}
		hit.Collider = c
		visit(hit)
	}
}

func ignored(c *Collider, ignore []*Collider) bool {
	for _, other := range ignore {
		if other == c {
			return true
		}
	}
	return false
}
