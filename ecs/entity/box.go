package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/collision"
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
	"github.com/milk9111/kinematic/ecs/system"
	"github.com/milk9111/kinematic/kinematic"
	"github.com/milk9111/kinematic/prefabs"
	"golang.org/x/image/colornames"
)

// NewBox spawns a pushable box with bounds bb.
func NewBox(w *ecs.World, cw *collision.World, spec prefabs.BoxSpec, bb cp.BB) (ecs.Entity, error) {
	settings, layer, err := spec.Mover.Resolve()
	if err != nil {
		return 0, fmt.Errorf("box: %w", err)
	}
	body := kinematic.NewMover(cw, bb, layer, settings)
	box := &component.Box{}
	tuneBox(box, spec)
	system.ListenForPushes(box, body)

	e := ecs.CreateEntity(w)
	tf := &component.Transform{}
	tf.SetBounds(bb)
	if err := ecs.Add(w, e, component.BoxComponent.Kind(), box); err != nil {
		return 0, fmt.Errorf("box: %w", err)
	}
	if err := ecs.Add(w, e, component.MoverComponent.Kind(), &component.Mover{Body: body}); err != nil {
		return 0, fmt.Errorf("box: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), tf); err != nil {
		return 0, fmt.Errorf("box: %w", err)
	}
	if err := ecs.Add(w, e, component.ShapeComponent.Kind(), &component.Shape{Color: spec.Tint.Or(colornames.Peru), Layer: 1}); err != nil {
		return 0, fmt.Errorf("box: %w", err)
	}
	return e, nil
}

// ApplyBoxSpec retunes every live box.
func ApplyBoxSpec(w *ecs.World, spec prefabs.BoxSpec) error {
	settings, _, err := spec.Mover.Resolve()
	if err != nil {
		return fmt.Errorf("box: %w", err)
	}
	ecs.ForEach2(w, component.BoxComponent.Kind(), component.MoverComponent.Kind(), func(e ecs.Entity, box *component.Box, mover *component.Mover) {
		tuneBox(box, spec)
		if mover.Body != nil {
			mover.Body.Settings = settings
		}
		if shape, ok := ecs.Get(w, e, component.ShapeComponent.Kind()); ok {
			shape.Color = spec.Tint.Or(shape.Color)
		}
	})
	return nil
}

func tuneBox(box *component.Box, spec prefabs.BoxSpec) {
	box.Gravity = spec.Gravity
	box.MaxFallSpeed = spec.MaxFallSpeed
	box.Damping = spec.Damping
	box.FrictionLoss = spec.FrictionLoss
}
