package system

import (
	"math"

	"github.com/milk9111/kinematic/common"
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
	"github.com/milk9111/kinematic/kinematic"
)

// BoxSystem applies gravity and friction to boxes. Boxes move mostly because others
// push them, the push listener turns that into momentum.
type BoxSystem struct{}

func NewBoxSystem() *BoxSystem {
	return &BoxSystem{}
}

// ListenForPushes records pushes on box. Call it once when the box is built.
func ListenForPushes(box *component.Box, body *kinematic.Mover) {
	body.SetPushListener(func(res kinematic.MoveResult) {
		box.WasPushed = true
		box.PushX = res.Delta.X
	})
}

func (b *BoxSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := common.FixedDelta

	ecs.ForEach2(w, component.BoxComponent.Kind(), component.MoverComponent.Kind(), func(_ ecs.Entity, box *component.Box, mover *component.Mover) {
		if mover.Body == nil {
			return
		}
		// Momentum applies once the pusher lets go.
		if !box.WasPushed && box.PushX != 0 {
			box.Velocity.X = box.PushX / dt
			box.PushX = 0
		}
		box.WasPushed = false

		mover.Body.PrepareMove()
		res := mover.Body.Move(box.Velocity.Mult(dt))

		box.Velocity.X *= box.Damping
		if res.Grounded || res.Sliding {
			loss := box.FrictionLoss * dt
			if math.Abs(box.Velocity.X) < loss {
				box.Velocity.X = 0
			} else {
				box.Velocity.X -= common.Sign(box.Velocity.X) * loss
			}
		}

		if res.Grounded && !res.Sliding {
			box.Velocity.Y = 0
		} else {
			box.Velocity.Y = math.Max(box.Velocity.Y-box.Gravity*dt, -box.MaxFallSpeed)
		}
	})
}
