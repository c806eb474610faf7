package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/collision"
	"github.com/milk9111/kinematic/common"
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
	"github.com/milk9111/kinematic/kinematic"
)

// PlayerControllerSystem turns input into a voluntary move each tick and derives
// the next velocity from the move result.
type PlayerControllerSystem struct {
	world *collision.World
}

func NewPlayerControllerSystem(world *collision.World) *PlayerControllerSystem {
	return &PlayerControllerSystem{world: world}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.MoverComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, player *component.Player, mover *component.Mover, in *component.Input) {
		body := mover.Body
		if body == nil {
			return
		}
		dt := common.FixedDelta

		body.PrepareMove()
		target := player.Velocity.Mult(dt)
		player.Grabbing = false
		if in.Interact && p.world != nil {
			for _, c := range p.world.OverlapBox(player.GrabBounds(body.Bounds()), player.GrabMask) {
				if c == body.Collider() {
					continue
				}
				body.EnqueueGrabbed(kinematic.BodyOf(c), target)
				player.Grabbing = true
			}
		}

		res := body.Move(target)
		updateJumpTimers(player, res, in.Jump, dt)

		accel := player.AccelAirborne
		if res.Grounded {
			accel = player.AccelGrounded
		}
		player.Velocity.X = common.SmoothDamp(player.Velocity.X, in.MoveX*player.MoveSpeed, &player.SmoothingX, accel, dt)

		if (res.Grounded && !res.Sliding) || res.HitCeiling {
			player.Velocity.Y = 0
		} else {
			player.Velocity.Y = math.Max(player.Velocity.Y+player.Gravity*dt, -player.MaxFallSpeed)
		}

		if player.CanJump() {
			player.OnJump()
			if res.Sliding {
				player.Velocity = res.SlideNormal.Mult(player.MaxJumpVelocity)
				player.SmoothingX = 0
			} else {
				player.Velocity.Y = player.MaxJumpVelocity
			}
		}

		// Releasing jump early cuts the arc short.
		if player.Velocity.Y > player.MinJumpVelocity && !in.Jump {
			player.Velocity.Y = player.MinJumpVelocity
		}

		// A grabbing player keeps facing what it holds.
		if in.MoveX > 0 && !player.Grabbing {
			player.FacingLeft = false
		} else if in.MoveX < 0 && !player.Grabbing {
			player.FacingLeft = true
		}
		player.Pushing = res.Grounded && in.MoveX != 0 && p.touchingPushable(body, in.MoveX)

		if sm, ok := ecs.Get(w, e, component.PlayerStateMachineComponent.Kind()); ok {
			updatePlayerState(sm, &component.PlayerStateContext{Player: player, Input: in, Result: res}, dt)
		}
	})
}

func (p *PlayerControllerSystem) touchingPushable(body *kinematic.Mover, moveX float64) bool {
	dir := cp.Vector{X: common.Sign(moveX)}
	return len(body.Raycaster().CastBroadPush(cp.Vector{}, dir, kinematic.SkinWidth*3)) > 0
}

func updateJumpTimers(player *component.Player, res kinematic.MoveResult, jumpPressed bool, dt float64) {
	if res.Grounded {
		player.CoyoteLeft = player.CoyoteTime
	} else {
		player.CoyoteLeft -= dt
	}
	if jumpPressed {
		player.BufferLeft = player.JumpBuffer
	} else {
		player.BufferLeft -= dt
	}
	player.CooldownLeft -= dt
}

func updatePlayerState(sm *component.PlayerStateMachine, ctx *component.PlayerStateContext, dt float64) {
	ctx.ChangeState = func(state component.PlayerState) {
		sm.Pending = state
	}
	if sm.State == nil {
		sm.State = playerStateIdle
		sm.State.Enter(ctx)
	}

	sm.State.Update(ctx)
	sm.Time += dt
	if sm.Pending == nil || sm.Pending == sm.State {
		sm.Pending = nil
		return
	}
	sm.State.Exit(ctx)
	sm.State = sm.Pending
	sm.Pending = nil
	sm.Time = 0
	sm.State.Enter(ctx)
}
