package system

import (
	"github.com/milk9111/kinematic/common"
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
)

// CameraSystem eases the camera toward the player. Camera coordinates are world
// units at the center of the view.
type CameraSystem struct {
	camEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	player, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	tf, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	targetX := tf.X
	if p, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok {
		if p.FacingLeft {
			targetX -= cam.LookAhead
		} else {
			targetX += cam.LookAhead
		}
	}

	if !cam.Snapped || cam.Smoothness <= 0 {
		cam.X, cam.Y = targetX, tf.Y
		cam.VelocityX, cam.VelocityY = 0, 0
		cam.Snapped = true
		return
	}
	cam.X = common.SmoothDamp(cam.X, targetX, &cam.VelocityX, cam.Smoothness, common.FixedDelta)
	cam.Y = common.SmoothDamp(cam.Y, tf.Y, &cam.VelocityY, cam.Smoothness, common.FixedDelta)
}
