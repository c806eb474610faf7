package component

import "github.com/jakecoffman/cp"

type Box struct {
	Gravity      float64
	MaxFallSpeed float64
	Damping      float64
	FrictionLoss float64

	Velocity cp.Vector
	// PushX is the last pushed x delta, turned into momentum once pushing stops.
	PushX     float64
	WasPushed bool
}

var BoxComponent = NewComponent[Box]()
