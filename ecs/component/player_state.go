package component

import "github.com/milk9111/kinematic/kinematic"

// PlayerState defines the interface for player state machine states. States are
// derived from the latest move result, they never drive velocity themselves.
type PlayerState interface {
	Name() string
	Enter(ctx *PlayerStateContext)
	Exit(ctx *PlayerStateContext)
	Update(ctx *PlayerStateContext)
}

// PlayerStateContext provides controlled access to the player for a state.
type PlayerStateContext struct {
	Player      *Player
	Input       *Input
	Result      kinematic.MoveResult
	ChangeState func(state PlayerState)
}

// PlayerStateMachine stores the active state and how long it has been active.
type PlayerStateMachine struct {
	State   PlayerState
	Pending PlayerState
	Time    float64
}

var PlayerStateMachineComponent = NewComponent[PlayerStateMachine]()
