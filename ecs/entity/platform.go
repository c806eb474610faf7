package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/collision"
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
	"github.com/milk9111/kinematic/kinematic"
	"github.com/milk9111/kinematic/prefabs"
	"golang.org/x/image/colornames"
)

// PlatformOptions are the per-instance settings a level gives a platform.
type PlatformOptions struct {
	Velocity cp.Vector
	Script   component.VelocityScript
	// Mass overrides the prefab mass when set.
	Mass *float64
}

// NewPlatform spawns a moving platform with bounds bb.
func NewPlatform(w *ecs.World, cw *collision.World, spec prefabs.PlatformSpec, bb cp.BB, opts PlatformOptions) (ecs.Entity, error) {
	settings, layer, err := spec.Mover.Resolve()
	if err != nil {
		return 0, fmt.Errorf("platform: %w", err)
	}
	if opts.Mass != nil {
		settings.Mass = *opts.Mass
	}
	body := kinematic.NewMover(cw, bb, layer, settings)

	e := ecs.CreateEntity(w)
	tf := &component.Transform{}
	tf.SetBounds(bb)
	platform := &component.Platform{Velocity: opts.Velocity, Script: opts.Script}
	if err := ecs.Add(w, e, component.PlatformComponent.Kind(), platform); err != nil {
		return 0, fmt.Errorf("platform: %w", err)
	}
	if err := ecs.Add(w, e, component.MoverComponent.Kind(), &component.Mover{Body: body}); err != nil {
		return 0, fmt.Errorf("platform: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), tf); err != nil {
		return 0, fmt.Errorf("platform: %w", err)
	}
	if err := ecs.Add(w, e, component.ShapeComponent.Kind(), &component.Shape{Color: spec.Tint.Or(colornames.Lightslategray)}); err != nil {
		return 0, fmt.Errorf("platform: %w", err)
	}
	return e, nil
}
