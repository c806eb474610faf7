package component

import "github.com/jakecoffman/cp"

// VelocityScript computes a platform velocity from the seconds since spawn.
type VelocityScript interface {
	Velocity(t float64) (cp.Vector, error)
}

type Platform struct {
	Velocity cp.Vector
	Script   VelocityScript
	Time     float64
}

var PlatformComponent = NewComponent[Platform]()
