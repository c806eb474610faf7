package component

import "github.com/jakecoffman/cp"

// Input stores the actions sampled for this tick.
type Input struct {
	MoveX    float64
	Jump     bool
	Interact bool
	Pause    bool

	Navigate cp.Vector
	Select   bool
	Back     bool
}

var InputComponent = NewComponent[Input]()
