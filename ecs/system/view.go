package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/common"
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
)

// view maps world units (y up) to screen pixels (y down) around the camera.
type view struct {
	camX, camY float64
	scale      float64
	halfW      float64
	halfH      float64
}

func cameraView(w *ecs.World, screenW, screenH int) view {
	v := view{scale: common.PixelsPerUnit, halfW: float64(screenW) / 2, halfH: float64(screenH) / 2}
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return v
	}
	if cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok {
		v.camX, v.camY = cam.X, cam.Y
		if cam.Zoom > 0 {
			v.scale *= cam.Zoom
		}
	}
	return v
}

func (v view) toScreen(p cp.Vector) (float32, float32) {
	return float32((p.X-v.camX)*v.scale + v.halfW), float32(v.halfH - (p.Y-v.camY)*v.scale)
}

// rect returns the screen rectangle of bb as x, y, width, height.
func (v view) rect(bb cp.BB) (float32, float32, float32, float32) {
	x, y := v.toScreen(cp.Vector{X: bb.L, Y: bb.T})
	return x, y, float32((bb.R - bb.L) * v.scale), float32((bb.T - bb.B) * v.scale)
}
