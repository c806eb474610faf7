package component

import "github.com/jakecoffman/cp"

type TriggerKind int

const (
	TriggerLevelEnd TriggerKind = iota
	TriggerTeleport
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerLevelEnd:
		return "level_end"
	case TriggerTeleport:
		return "teleport"
	default:
		return "unknown"
	}
}

// Trigger fires once each time the player enters Bounds.
type Trigger struct {
	Kind   TriggerKind
	Bounds cp.BB
	// Target is where a teleport puts the bottom-left corner of the player.
	Target cp.Vector
	Inside bool
}

var TriggerComponent = NewComponent[Trigger]()
