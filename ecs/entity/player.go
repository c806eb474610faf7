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

// NewPlayerAt spawns the player with its bottom-left corner at (x, y).
func NewPlayerAt(w *ecs.World, cw *collision.World, spec prefabs.PlayerSpec, x, y float64) (ecs.Entity, error) {
	settings, layer, err := spec.Mover.Resolve()
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	bb := moverBounds(x, y, spec.Size.Width, spec.Size.Height)
	body := kinematic.NewMover(cw, bb, layer, settings)

	player := &component.Player{}
	tunePlayer(player, spec, settings)

	e := ecs.CreateEntity(w)
	tf := &component.Transform{}
	tf.SetBounds(bb)
	shape := &component.Shape{Color: spec.Tint.Or(colornames.Dodgerblue), Layer: 2}
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), player); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	if err := ecs.Add(w, e, component.MoverComponent.Kind(), &component.Mover{Body: body}); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerStateMachineComponent.Kind(), &component.PlayerStateMachine{}); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), tf); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	if err := ecs.Add(w, e, component.ShapeComponent.Kind(), shape); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	return e, nil
}

// ApplyPlayerSpec retunes a live player without moving it. Collision layers keep
// the masks the body was built with.
func ApplyPlayerSpec(w *ecs.World, e ecs.Entity, spec prefabs.PlayerSpec) error {
	player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return fmt.Errorf("player: %w: %s", component.ErrEntityNotAlive, e)
	}
	settings, _, err := spec.Mover.Resolve()
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}
	tunePlayer(player, spec, settings)

	if mover, ok := ecs.Get(w, e, component.MoverComponent.Kind()); ok && mover.Body != nil {
		mover.Body.Settings = settings
	}
	if shape, ok := ecs.Get(w, e, component.ShapeComponent.Kind()); ok {
		shape.Color = spec.Tint.Or(shape.Color)
	}
	return nil
}

func tunePlayer(player *component.Player, spec prefabs.PlayerSpec, settings kinematic.Settings) {
	player.MoveSpeed = spec.MoveSpeed
	player.MaxFallSpeed = spec.MaxFallSpeed
	player.AccelGrounded = spec.AccelGrounded
	player.AccelAirborne = spec.AccelAirborne
	player.CoyoteTime = spec.CoyoteTime
	player.JumpBuffer = spec.JumpBuffer
	player.JumpCooldown = spec.JumpCooldown
	player.GrabSize = cp.Vector{X: spec.Grab.Width, Y: spec.Grab.Height}
	player.GrabMask = settings.PushableMask
	player.SetJump(spec.MaxJumpHeight, spec.MinJumpHeight, spec.TimeToApex)
}

// moverBounds lifts a body by the skin width so it starts clear of the floor.
func moverBounds(x, y, width, height float64) cp.BB {
	return liftBySkin(cp.BB{L: x, B: y, R: x + width, T: y + height})
}

