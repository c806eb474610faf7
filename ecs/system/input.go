package system

import (
	"github.com/milk9111/kinematic/common"
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
	"github.com/milk9111/kinematic/input"
)

type poller interface {
	Poll()
}

// InputSystem samples the action maps once per tick and copies them into every
// Input component.
type InputSystem struct {
	actions *input.Actions
	source  input.Source
}

func NewInputSystem(actions *input.Actions, source input.Source) *InputSystem {
	return &InputSystem{actions: actions, source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.actions == nil || i.source == nil {
		return
	}
	if p, ok := i.source.(poller); ok {
		p.Poll()
	}
	i.actions.Update(i.source, common.FixedDelta)

	gameplay := i.actions.Gameplay
	menu := i.actions.Menu
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		in.MoveX = gameplay.MoveHorizontal.Value()
		in.Jump = gameplay.Jump.Triggered()
		in.Interact = gameplay.Interact.Triggered()
		// Pause is never buffered.
		in.Pause = gameplay.Pause.TriggeredWithin(0)

		in.Navigate = menu.Navigate.Value()
		in.Select = menu.Select.TriggeredWithin(0)
		in.Back = menu.Back.TriggeredWithin(0)
	})
}

// SetActions swaps the action maps, for example after the bindings were reloaded.
func (i *InputSystem) SetActions(actions *input.Actions) {
	i.actions = actions
}
