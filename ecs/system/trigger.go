package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
)

// TriggerSystem fires triggers when the player enters them. The level end callback
// is supplied by whoever owns level progression.
type TriggerSystem struct {
	onLevelEnd func()
}

func NewTriggerSystem(onLevelEnd func()) *TriggerSystem {
	return &TriggerSystem{onLevelEnd: onLevelEnd}
}

func (t *TriggerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	mover, ok := ecs.Get(w, player, component.MoverComponent.Kind())
	if !ok || mover.Body == nil {
		return
	}

	ecs.ForEach(w, component.TriggerComponent.Kind(), func(e ecs.Entity, trigger *component.Trigger) {
		bounds := mover.Body.Bounds()
		inside := trigger.Bounds.Intersects(bounds)
		entered := inside && !trigger.Inside
		trigger.Inside = inside
		if !entered {
			return
		}

		switch trigger.Kind {
		case component.TriggerLevelEnd:
			w.Events().Push(ecs.Event{Kind: ecs.EventLevelComplete, Entity: e})
			if t.onLevelEnd != nil {
				t.onLevelEnd()
			}
		case component.TriggerTeleport:
			half := cp.Vector{X: (bounds.R - bounds.L) / 2, Y: (bounds.T - bounds.B) / 2}
			mover.Body.Teleport(trigger.Target.Add(half))
			if p, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok {
				p.Velocity = cp.Vector{}
				p.SmoothingX = 0
			}
			w.Events().Push(ecs.Event{Kind: ecs.EventTeleported, Entity: player, Data: trigger.Target})
		}
	})
}
