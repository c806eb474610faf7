package kinematic

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/collision"
)

// Body is anything a mover can displace.
type Body interface {
	ID() collision.BodyID
	Center() cp.Vector
	Translate(delta cp.Vector)
}

// Pushable bodies resolve forced displacement with their own resolver.
type Pushable interface {
	Body
	Mass() float64
	Push(chain *PushChain, delta cp.Vector, pushingMass float64) MoveResult
}

// PushChain records the bodies already displaced by one top-level move. It is owned
// by the mover that started the move and handed down through every nested Push.
type PushChain struct {
	visited map[collision.BodyID]struct{}
}

func NewPushChain() *PushChain {
	return &PushChain{visited: make(map[collision.BodyID]struct{}, 8)}
}

func (c *PushChain) Reset() {
	clear(c.visited)
}

// Visit marks id and reports whether it was not visited before.
func (c *PushChain) Visit(id collision.BodyID) bool {
	if _, ok := c.visited[id]; ok {
		return false
	}
	c.visited[id] = struct{}{}
	return true
}

func (c *PushChain) Contains(id collision.BodyID) bool {
	_, ok := c.visited[id]
	return ok
}

func (c *PushChain) Len() int {
	return len(c.visited)
}

// BodyOf resolves the body behind a collider. Colliders without a Body owner are
// displaced directly.
func BodyOf(c *collision.Collider) Body {
	if b, ok := c.Owner.(Body); ok {
		return b
	}
	return c
}

// enqueuePush adds body to queue unless the chain already holds it and returns the
// mass it resists with.
func enqueuePush(chain *PushChain, queue *[]Body, body Body) float64 {
	if !chain.Visit(body.ID()) {
		return 0
	}
	*queue = append(*queue, body)
	if p, ok := body.(Pushable); ok {
		return math.Max(p.Mass(), 0)
	}
	return 0
}

// queuePushes finds the bodies this move displaces. Bodies in the sweep direction
// go before the mover, riders go after it.
func (m *Mover) queuePushes(chain *PushChain, move cp.Vector, before, after *[]Body) float64 {
	var pushed float64

	if move.Y != 0 {
		dir := up
		if move.Y < 0 {
			dir = down
		}
		for _, body := range m.pushablesAlong(dir, math.Abs(move.Y)) {
			pushed += enqueuePush(chain, before, body)
		}
	}

	if move.X != 0 {
		dir := right
		if move.X < 0 {
			dir = left
		}
		for _, body := range m.pushablesAlong(dir, math.Abs(move.X)) {
			pushed += enqueuePush(chain, before, body)
		}
	}

	if move.Y < 0 || (move.Y == 0 && move.X != 0) {
		for _, body := range m.pushablesAlong(up, riderProbe) {
			pushed += enqueuePush(chain, after, body)
		}
	}

	return pushed
}

func (m *Mover) pushablesAlong(dir cp.Vector, dist float64) []Body {
	hits := m.ray.CastBroadPush(cp.Vector{}, dir, dist)
	bodies := make([]Body, 0, len(hits))
	for _, hit := range hits {
		if hit.Collider == nil {
			continue
		}
		bodies = append(bodies, BodyOf(hit.Collider))
	}
	return bodies
}

func applyPushes(chain *PushChain, queue []Body, move cp.Vector, pushingMass float64) {
	for _, body := range queue {
		if p, ok := body.(Pushable); ok {
			p.Push(chain, move, pushingMass)
			continue
		}
		body.Translate(move)
	}
}

// attenuation scales a move by how much mass it has to shove aside.
func attenuation(pushMass, pushedMass float64) float64 {
	if pushMass < 0 || pushedMass == 0 {
		return 1
	}
	return pushMass / (pushMass + pushedMass)
}
