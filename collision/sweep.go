package collision

import "github.com/jakecoffman/cp"

// overlapEpsilon is how deep a start point must sit inside a shape to count as overlapping.
const overlapEpsilon = 1e-9

// Hit describes the first contact of a ray or box sweep.
type Hit struct {
	// Collider is nil when static level geometry was hit.
	Collider *Collider
	// Shape is the static shape that was hit, nil for colliders.
	Shape *cp.Shape
	// Point is the contact point for rays and the box center at impact for box sweeps.
	Point  cp.Vector
	Normal cp.Vector
	// Distance travelled along the cast direction before contact.
	Distance float64
}

// BodyID returns the struck collider's id, or 0 for static geometry.
func (h Hit) BodyID() BodyID {
	if h.Collider == nil {
		return 0
	}
	return h.Collider.id
}

// boxVerts lists the corners of bb in counter-clockwise order.
func boxVerts(bb cp.BB) []cp.Vector {
	return []cp.Vector{
		{X: bb.L, Y: bb.B},
		{X: bb.R, Y: bb.B},
		{X: bb.R, Y: bb.T},
		{X: bb.L, Y: bb.T},
	}
}

func polyVerts(shape *cp.Shape) []cp.Vector {
	poly, ok := shape.Class.(*cp.PolyShape)
	if !ok {
		return nil
	}
	verts := make([]cp.Vector, poly.Count())
	for i := range verts {
		verts[i] = poly.TransformVert(i)
	}
	return verts
}

// minkowski grows a convex polygon by a box of the given half extents.
func minkowski(verts []cp.Vector, half cp.Vector) []cp.Vector {
	if half.X == 0 && half.Y == 0 {
		return append([]cp.Vector(nil), verts...)
	}
	out := make([]cp.Vector, 0, len(verts)*4)
	for _, v := range verts {
		out = append(out,
			cp.Vector{X: v.X - half.X, Y: v.Y - half.Y},
			cp.Vector{X: v.X + half.X, Y: v.Y - half.Y},
			cp.Vector{X: v.X + half.X, Y: v.Y + half.Y},
			cp.Vector{X: v.X - half.X, Y: v.Y + half.Y},
		)
	}
	return out
}

// sweep casts a box with half extents half from start along dir for dist
// against the convex polygon verts. A zero half extent casts a ray.
//
// A start point already inside the polygon reports a hit at distance 0. Box sweeps
// take the shortest way out as the normal, rays take the reverse of dir.
func sweep(verts []cp.Vector, half, start, dir cp.Vector, dist float64) (Hit, bool) {
	if len(verts) < 3 {
		return Hit{}, false
	}
	hull := minkowski(verts, half)
	identity := cp.NewTransformIdentity()
	shape := cp.NewPolyShape(nil, len(hull), hull, identity, 0)
	shape.Update(identity)

	var inside cp.PointQueryInfo
	shape.Class.PointQuery(start, &inside)
	if inside.Distance < -overlapEpsilon {
		normal := inside.Gradient
		if half.X == 0 && half.Y == 0 {
			normal = dir.Neg()
		}
		return Hit{Point: start, Normal: normal}, true
	}

	end := start.Add(dir.Mult(dist))
	info := cp.SegmentQueryInfo{Point: end, Alpha: 1}
	shape.Class.SegmentQuery(start, end, 0, &info)
	if info.Shape == nil {
		return Hit{}, false
	}
	return Hit{Point: info.Point, Normal: info.Normal, Distance: info.Alpha * dist}, true
}
