package entity

import (
	"fmt"

	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
)

const (
	cameraSmoothness = 0.15
	cameraLookAhead  = 1.5
)

func NewCamera(w *ecs.World, zoom float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	cam := &component.Camera{Zoom: zoom, Smoothness: cameraSmoothness, LookAhead: cameraLookAhead}
	if err := ecs.Add(w, e, component.CameraComponent.Kind(), cam); err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	return e, nil
}
