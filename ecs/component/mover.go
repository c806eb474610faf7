package component

import "github.com/milk9111/kinematic/kinematic"

// Mover links an entity to its kinematic body.
type Mover struct {
	Body *kinematic.Mover
}

var MoverComponent = NewComponent[Mover]()
