package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
)

// NewTrigger adds a trigger area. Target is only used by teleports.
func NewTrigger(w *ecs.World, kind component.TriggerKind, bounds cp.BB, target cp.Vector) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TriggerComponent.Kind(), &component.Trigger{Kind: kind, Bounds: bounds, Target: target}); err != nil {
		return 0, fmt.Errorf("trigger %s: %w", kind, err)
	}
	return e, nil
}
