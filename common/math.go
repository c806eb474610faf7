package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// TicksPerSecond is the simulation rate. Every system steps by FixedDelta.
const TicksPerSecond = 60

// FixedDelta is the simulation step in seconds.
const FixedDelta = 1.0 / TicksPerSecond

// PixelsPerUnit converts world units (one tile) to screen pixels.
const PixelsPerUnit = 32.0

var Up = cp.Vector{X: 0, Y: 1}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1 for negative values and 1 otherwise.
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func Approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// Angle returns the unsigned angle in degrees between a and b.
func Angle(a, b cp.Vector) float64 {
	denom := math.Sqrt(a.LengthSq() * b.LengthSq())
	if denom < 1e-15 {
		return 0
	}
	dot := Clamp(a.Dot(b)/denom, -1, 1)
	return math.Acos(dot) * 180 / math.Pi
}

// Perpendicular rotates v by 90 degrees counter-clockwise.
func Perpendicular(v cp.Vector) cp.Vector {
	return cp.Vector{X: -v.Y, Y: v.X}
}

// SmoothDamp moves current toward target with a critically damped spring.
// velocity carries the spring state between calls.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	originalTo := target
	target = current - change

	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * exp
	output := target + (change+temp)*exp

	if (originalTo-current > 0) == (output > originalTo) {
		output = originalTo
		*velocity = (output - originalTo) / dt
	}
	return output
}
