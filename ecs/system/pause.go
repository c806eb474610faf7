package system

import (
	"github.com/milk9111/kinematic/common"
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
)

// PauseSystem toggles the pause state when the player presses pause, or back while
// paused. The cooldown keeps a held button from toggling every tick.
type PauseSystem struct {
	scheduler *ecs.Scheduler
	cooldown  float64
	left      float64
}

func NewPauseSystem(scheduler *ecs.Scheduler, cooldown float64) *PauseSystem {
	return &PauseSystem{scheduler: scheduler, cooldown: cooldown}
}

func (p *PauseSystem) Update(w *ecs.World) {
	if w == nil || p.scheduler == nil {
		return
	}
	if p.left > 0 {
		p.left -= common.FixedDelta
		return
	}

	player, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	in, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok {
		return
	}

	paused := p.scheduler.Paused()
	toggle := in.Pause
	if paused && in.Back {
		toggle = true
	}
	if !toggle {
		return
	}

	p.left = p.cooldown
	p.scheduler.SetPaused(!paused)
	kind := ecs.EventPaused
	if paused {
		kind = ecs.EventResumed
	}
	w.Events().Push(ecs.Event{Kind: kind, Entity: player})
}
