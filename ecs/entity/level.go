package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/collision"
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
	"github.com/milk9111/kinematic/ecs/system"
	"github.com/milk9111/kinematic/kinematic"
	"github.com/milk9111/kinematic/levels"
)

const (
	defaultPlatformWidth  = 1.0
	defaultPlatformHeight = 0.5
	defaultTriggerSize    = 1.0
)

// LoadLevelToWorld builds the level geometry, every entity it places and a camera.
// The worlds are expected to be empty. It returns the player entity.
func LoadLevelToWorld(w *ecs.World, cw *collision.World, lvl *levels.Level, p Prefabs) (ecs.Entity, error) {
	if err := lvl.Build(cw); err != nil {
		return 0, err
	}
	tiles := ecs.CreateEntity(w)
	if err := ecs.Add(w, tiles, component.TilemapComponent.Kind(), &component.Tilemap{Level: lvl}); err != nil {
		return 0, err
	}

	var player ecs.Entity
	for i, le := range lvl.Entities {
		var err error
		switch le.Type {
		case levels.EntityPlayer:
			o := lvl.CellOrigin(float64(le.X), float64(le.Y))
			player, err = NewPlayerAt(w, cw, p.Player, o.X, o.Y)
		case levels.EntityBox:
			bb := lvl.EntityBounds(le, p.Box.Size.Width, p.Box.Size.Height)
			_, err = NewBox(w, cw, p.Box, liftBySkin(bb))
		case levels.EntityPlatform:
			err = addPlatform(w, cw, lvl, le, p)
		case levels.EntityLevelEnd:
			bb := lvl.EntityBounds(le, defaultTriggerSize, defaultTriggerSize)
			_, err = NewTrigger(w, component.TriggerLevelEnd, bb, cp.Vector{})
		case levels.EntityTeleporter:
			bb := lvl.EntityBounds(le, defaultTriggerSize, defaultTriggerSize)
			target := lvl.CellOrigin(le.Float("target_x", 0), le.Float("target_y", 0))
			target.Y += kinematic.SkinWidth
			_, err = NewTrigger(w, component.TriggerTeleport, bb, target)
		default:
			err = fmt.Errorf("unknown entity type %q", le.Type)
		}
		if err != nil {
			return 0, fmt.Errorf("level %s: entity %d (%s): %w", lvl.Name, i, le.Type, err)
		}
	}
	if !player.Valid() {
		return 0, fmt.Errorf("level %s: %w: no player", lvl.Name, levels.ErrInvalidLevel)
	}
	if _, err := NewCamera(w, 1); err != nil {
		return 0, err
	}
	return player, nil
}

func addPlatform(w *ecs.World, cw *collision.World, lvl *levels.Level, le levels.Entity, p Prefabs) error {
	opts := PlatformOptions{
		Velocity: cp.Vector{X: le.Float("velocity_x", 0), Y: le.Float("velocity_y", 0)},
	}
	if le.Has("mass") {
		mass := le.Float("mass", 0)
		opts.Mass = &mass
	}
	if name := le.Text("script"); name != "" {
		script, err := system.LoadPlatformScript(name)
		if err != nil {
			return err
		}
		opts.Script = script
	}
	bb := lvl.EntityBounds(le, defaultPlatformWidth, defaultPlatformHeight)
	_, err := NewPlatform(w, cw, p.Platform, liftBySkin(bb), opts)
	return err
}

func liftBySkin(bb cp.BB) cp.BB {
	return cp.BB{L: bb.L, B: bb.B + kinematic.SkinWidth, R: bb.R, T: bb.T + kinematic.SkinWidth}
}
