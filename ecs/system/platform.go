package system

import (
	"log"

	"github.com/milk9111/kinematic/common"
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
)

// PlatformSystem moves every platform along its velocity. Platforms run before other
// movers so riders start the tick where the platform left them.
type PlatformSystem struct{}

func NewPlatformSystem() *PlatformSystem {
	return &PlatformSystem{}
}

func (p *PlatformSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.PlatformComponent.Kind(), component.MoverComponent.Kind(), func(e ecs.Entity, platform *component.Platform, mover *component.Mover) {
		if mover.Body == nil {
			return
		}
		platform.Time += common.FixedDelta
		if platform.Script != nil {
			v, err := platform.Script.Velocity(platform.Time)
			if err != nil {
				log.Printf("platform: entity=%s script disabled: %v", e, err)
				platform.Script = nil
			} else {
				platform.Velocity = v
			}
		}

		mover.Body.PrepareMove()
		mover.Body.Move(platform.Velocity.Mult(common.FixedDelta))
	})
}
