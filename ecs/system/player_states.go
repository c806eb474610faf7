package system

import (
	"math"

	"github.com/milk9111/kinematic/ecs/component"
)

const runThreshold = 0.05

// Player state singletons (avoid allocations on transitions).
var (
	playerStateIdle  component.PlayerState = &playerIdleState{}
	playerStateRun   component.PlayerState = &playerRunState{}
	playerStateJump  component.PlayerState = &playerJumpState{}
	playerStateFall  component.PlayerState = &playerFallState{}
	playerStateSlide component.PlayerState = &playerSlideState{}
	playerStatePush  component.PlayerState = &playerPushState{}
)

// PlayerStates lists every state by name.
var PlayerStates = map[string]component.PlayerState{
	"idle":  playerStateIdle,
	"run":   playerStateRun,
	"jump":  playerStateJump,
	"fall":  playerStateFall,
	"slide": playerStateSlide,
	"push":  playerStatePush,
}

type playerIdleState struct{}

type playerRunState struct{}

type playerJumpState struct{}

type playerFallState struct{}

type playerSlideState struct{}

type playerPushState struct{}

// groundedState picks the state of a player standing on walkable ground.
func groundedState(ctx *component.PlayerStateContext) component.PlayerState {
	if ctx.Player.Pushing || (ctx.Player.Grabbing && ctx.Input.MoveX != 0) {
		return playerStatePush
	}
	if math.Abs(ctx.Player.Velocity.X) > runThreshold {
		return playerStateRun
	}
	return playerStateIdle
}

// airborneState picks the state while off the ground or sliding.
func airborneState(ctx *component.PlayerStateContext) component.PlayerState {
	if ctx.Result.Sliding && ctx.Player.Velocity.Y <= 0 {
		return playerStateSlide
	}
	if ctx.Player.Velocity.Y > 0 {
		return playerStateJump
	}
	return playerStateFall
}

func settle(ctx *component.PlayerStateContext) {
	if ctx.Result.Grounded && !ctx.Result.Sliding && ctx.Player.Velocity.Y <= 0 {
		ctx.ChangeState(groundedState(ctx))
		return
	}
	ctx.ChangeState(airborneState(ctx))
}

func (playerIdleState) Name() string                            { return "idle" }
func (playerIdleState) Enter(ctx *component.PlayerStateContext) {}
func (playerIdleState) Exit(ctx *component.PlayerStateContext)  {}
func (playerIdleState) Update(ctx *component.PlayerStateContext) {
	settle(ctx)
}

func (playerRunState) Name() string                            { return "run" }
func (playerRunState) Enter(ctx *component.PlayerStateContext) {}
func (playerRunState) Exit(ctx *component.PlayerStateContext)  {}
func (playerRunState) Update(ctx *component.PlayerStateContext) {
	settle(ctx)
}

func (playerJumpState) Name() string                            { return "jump" }
func (playerJumpState) Enter(ctx *component.PlayerStateContext) {}
func (playerJumpState) Exit(ctx *component.PlayerStateContext)  {}
func (playerJumpState) Update(ctx *component.PlayerStateContext) {
	// Still rising, even if the step-up logic briefly reports ground.
	if ctx.Player.Velocity.Y > 0 && !ctx.Result.HitCeiling {
		return
	}
	settle(ctx)
}

func (playerFallState) Name() string                            { return "fall" }
func (playerFallState) Enter(ctx *component.PlayerStateContext) {}
func (playerFallState) Exit(ctx *component.PlayerStateContext)  {}
func (playerFallState) Update(ctx *component.PlayerStateContext) {
	settle(ctx)
}

func (playerSlideState) Name() string                            { return "slide" }
func (playerSlideState) Enter(ctx *component.PlayerStateContext) {}
func (playerSlideState) Exit(ctx *component.PlayerStateContext)  {}
func (playerSlideState) Update(ctx *component.PlayerStateContext) {
	settle(ctx)
}

func (playerPushState) Name() string                            { return "push" }
func (playerPushState) Enter(ctx *component.PlayerStateContext) {}
func (playerPushState) Exit(ctx *component.PlayerStateContext)  {}
func (playerPushState) Update(ctx *component.PlayerStateContext) {
	settle(ctx)
}
