package system

import (
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
)

// TransformSyncSystem copies mover bounds into transforms once every mover, and
// everything they pushed, has finished moving.
type TransformSyncSystem struct{}

func NewTransformSyncSystem() *TransformSyncSystem {
	return &TransformSyncSystem{}
}

func (t *TransformSyncSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.MoverComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, mover *component.Mover, tf *component.Transform) {
		if mover.Body != nil {
			tf.SetBounds(mover.Body.Bounds())
		}
	})
}
