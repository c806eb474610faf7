package kinematic

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/collision"
	"github.com/milk9111/kinematic/common"
)

// Mover resolves box movement against a collision world and pushes the bodies it
// runs into. It owns a dynamic collider whose bounds are the body's position.
type Mover struct {
	Settings Settings

	collider *collision.Collider
	ray      *Raycaster

	chain        *PushChain
	prepared     bool
	grabBefore   []Body
	grabAfter    []Body
	result       MoveResult
	pushListener func(MoveResult)
}

// NewMover registers a collider with bounds bb on layer and returns its mover.
func NewMover(world *collision.World, bb cp.BB, layer collision.Layer, settings Settings) *Mover {
	m := &Mover{
		Settings: settings,
		chain:    NewPushChain(),
	}
	m.collider = world.AddCollider(bb, layer, m)
	m.ray = NewRaycaster(world, m.collider, settings.CollisionMask, settings.PushableMask)
	return m
}

func (m *Mover) ID() collision.BodyID {
	return m.collider.ID()
}

func (m *Mover) Center() cp.Vector {
	return m.collider.Center()
}

func (m *Mover) Bounds() cp.BB {
	return m.collider.Bounds()
}

func (m *Mover) Collider() *collision.Collider {
	return m.collider
}

func (m *Mover) Raycaster() *Raycaster {
	return m.ray
}

func (m *Mover) Mass() float64 {
	return m.Settings.Mass
}

// Result is the outcome of the last resolved move.
func (m *Mover) Result() MoveResult {
	return m.result
}

func (m *Mover) Translate(delta cp.Vector) {
	m.collider.Translate(delta)
}

// Teleport places the body at center without resolving collisions.
func (m *Mover) Teleport(center cp.Vector) {
	m.collider.SetCenter(center)
	m.result = MoveResult{}
}

// SetPushListener registers fn to observe every forced push this body resolves.
func (m *Mover) SetPushListener(fn func(MoveResult)) {
	m.pushListener = fn
}

// PrepareMove starts a new top-level move: the push chain is cleared and holds only
// this body. Grabs enqueued afterwards apply to the next Move.
func (m *Mover) PrepareMove() *PushChain {
	m.chain.Reset()
	m.chain.Visit(m.ID())
	m.grabBefore = m.grabBefore[:0]
	m.grabAfter = m.grabAfter[:0]
	m.prepared = true
	return m.chain
}

// EnqueueGrabbed drags body along with the next Move. A body ahead of the expected
// move is pushed before this mover, one behind it is pulled after.
func (m *Mover) EnqueueGrabbed(body Body, expectedMove cp.Vector) {
	if !m.prepared {
		m.PrepareMove()
	}
	if expectedMove.Dot(body.Center().Sub(m.Center())) > 0 {
		enqueuePush(m.chain, &m.grabBefore, body)
		return
	}
	enqueuePush(m.chain, &m.grabAfter, body)
}

// Move resolves a voluntary move. Slopes shorten the horizontal travel.
func (m *Mover) Move(delta cp.Vector) MoveResult {
	if !m.prepared {
		m.PrepareMove()
	}
	before := append([]Body(nil), m.grabBefore...)
	after := append([]Body(nil), m.grabAfter...)
	m.prepared = false
	return m.resolve(m.chain, MoveIntent{Delta: delta, Mass: m.Settings.Mass}, before, after)
}

// Push resolves a forced move imposed by another body. Slopes are climbed until the
// requested horizontal displacement is reached. A zero pushing mass has no effect.
func (m *Mover) Push(chain *PushChain, delta cp.Vector, pushingMass float64) MoveResult {
	if pushingMass == 0 {
		return m.result
	}
	if chain == nil {
		chain = NewPushChain()
		chain.Visit(m.ID())
	}
	res := m.resolve(chain, MoveIntent{Delta: delta, Forced: true, Mass: pushingMass}, nil, nil)
	if m.pushListener != nil {
		m.pushListener(res)
	}
	return res
}

func (m *Mover) resolve(chain *PushChain, intent MoveIntent, before, after []Body) MoveResult {
	m.ray.UpdateBounds()
	m.ray.DisableCollisions()

	pushed := m.queuePushes(chain, intent.Delta, &before, &after)
	intent.Delta = intent.Delta.Mult(attenuation(intent.Mass, pushed))
	applyPushes(chain, before, intent.Delta, intent.Mass)

	move := newTargetMove(intent)
	res := MoveResult{
		WasSteppingUp: m.result.SteppingUp,
		Mass:          intent.Mass,
	}

	for i := 0; i < unstuckPasses; i++ {
		hit, ok := m.ray.CastBox(move.applied, down, 0)
		if !ok {
			break
		}
		move.applied = move.applied.Add(hit.Normal.Mult(SkinWidth))
	}

	move.updateVertical(m.vertical(&move, &res, intent.Delta))

	dir := right
	if intent.Delta.X < 0 {
		dir = left
	}
	stuck := false
	for i := 0; i < m.Settings.MaxStepIterations && move.remaining > 0; i++ {
		previous := move.remaining

		m.slopeDescend(&move, &res, dir)
		m.moveStraight(&move, dir)
		m.slopeAscend(&move, &res, dir)

		if math.Abs(previous-move.remaining) < stuckEpsilon {
			stuck = true
			break
		}
	}
	if !stuck && move.remaining > 0 {
		Logger.Printf("kinematic: ran out of step iterations, distance left: %.4f", move.remaining)
	}

	res.Grounded = res.SteppingUp || m.grounded(move.applied)
	m.Translate(move.applied)
	res.Delta = move.applied
	applyPushes(chain, after, move.applied, intent.Mass)

	m.ray.RestoreCollisions()
	m.result = res
	return res
}

func (m *Mover) grounded(offset cp.Vector) bool {
	_, ok := m.ray.CastBox(offset, down, groundedProbe)
	return ok
}

// vertical resolves the y component and classifies the ground underneath.
func (m *Mover) vertical(move *targetMove, res *MoveResult, delta cp.Vector) cp.Vector {
	dy := delta.Y
	dist := math.Abs(dy)
	ground, onGround := m.ray.CastBox(move.applied, down, dist+groundProbeMargin)
	if onGround {
		res.Grounded = true
		angle := common.Angle(ground.Normal, up)
		if move.forced {
			// Being forced up a slope never slides; only moving down it can.
			downhill := delta.X != 0 && (ground.Normal.X > 0) == (delta.X > 0)
			res.Sliding = downhill && m.Settings.steep(angle)
		} else {
			res.Sliding = m.Settings.steep(angle)
		}
		res.SlideNormal = ground.Normal
	}

	if dy > 0 {
		v, blocked := m.ray.MaxMove(move.applied, up, dy)
		res.HitCeiling = blocked
		return v
	}
	if !onGround {
		return m.ray.MaxMoveForHit(ground, false, down, dist)
	}
	if res.Sliding {
		return m.slide(move, ground.Normal, dist*m.Settings.SlideSpeedFactor)
	}
	return m.ray.MaxMoveForHit(ground, true, down, dist)
}

func (m *Mover) slide(move *targetMove, normal cp.Vector, dist float64) cp.Vector {
	dir := common.Perpendicular(normal)
	if normal.X >= 0 {
		dir = dir.Neg()
	}
	v, _ := m.ray.MaxMove(move.applied, dir, dist)
	return v
}

// alongSlope returns the surface direction heading toward dir.X.
func alongSlope(normal, dir cp.Vector) cp.Vector {
	d := common.Perpendicular(normal)
	if dir.X >= 0 {
		return d.Neg()
	}
	return d
}

func (m *Mover) slopeDescend(move *targetMove, res *MoveResult, dir cp.Vector) {
	if move.remaining <= 0 || res.Sliding {
		return
	}

	// The trailing corner rests on a slope that falls away in the move direction.
	corner := BottomLeft
	if dir.X < 0 {
		corner = BottomRight
	}
	hit, ok := m.ray.CastRayCorner(corner, move.applied, down, descendProbe)
	if !ok {
		return
	}
	if (hit.Normal.X >= 0) != (dir.X >= 0) {
		return
	}

	angle := common.Angle(hit.Normal, up)
	if angle > flatAngle && m.Settings.walkable(angle) {
		v, _ := m.ray.MaxMove(move.applied, alongSlope(hit.Normal, dir), move.remaining)
		move.update(v)
	}
}

func (m *Mover) moveStraight(move *targetMove, dir cp.Vector) {
	if move.remaining <= 0 {
		return
	}
	v, _ := m.ray.MaxMove(move.applied, dir, move.remaining)
	move.update(v)
}

func (m *Mover) slopeAscend(move *targetMove, res *MoveResult, dir cp.Vector) {
	if move.remaining <= 0 || res.Sliding {
		return
	}

	corner := BottomRight
	if dir.X < 0 {
		corner = BottomLeft
	}
	hit, ok := m.ray.CastRayCorner(corner, move.applied, dir, move.remaining)
	if !ok {
		return
	}

	angle := common.Angle(hit.Normal, up)
	climbable := m.Settings.walkable(angle) || (move.forced && angle < m.Settings.ForcedSlopeAngle)
	if angle > flatAngle && climbable {
		nudge := cp.Vector{X: 0, Y: ascendNudge}
		slope := alongSlope(hit.Normal, dir).Add(nudge)
		dist := move.remaining
		if move.forced {
			// Forced moves must cover the requested horizontal distance.
			dist = move.remaining / math.Abs(slope.X)
		}
		v, _ := m.ray.MaxMove(move.applied.Add(nudge), slope, dist)
		move.update(v)
		return
	}

	if res.WasSteppingUp || m.grounded(move.applied) {
		m.stepAscend(move, res, dir, corner)
	}
}

// stepAscend lifts the body onto a ledge no higher than StepHeight when its full
// height fits above the ledge.
func (m *Mover) stepAscend(move *targetMove, res *MoveResult, dir cp.Vector, corner Corner) {
	step := m.Settings.StepHeight
	offset := move.applied.Add(cp.Vector{X: common.Sign(dir.X) * stepProbeInset, Y: step})

	hit, ok := m.ray.CastRayCorner(corner, offset, down, step)
	if !ok {
		return
	}
	ledge := step - hit.Distance
	if ledge <= 0 {
		return
	}
	if m.Settings.steep(common.Angle(hit.Normal, up)) {
		return
	}

	head := m.ray.ControllerHeight() - (step - ledge)
	if _, blocked := m.ray.CastRayCorner(corner, offset, up, head); blocked {
		return
	}

	rise := math.Min(ledge, move.remaining) + stepClearance
	if _, blocked := m.ray.CastBox(move.applied, up, rise); blocked {
		return
	}

	move.update(cp.Vector{X: 0, Y: rise})
	res.SteppingUp = true
}
