package kinematic

import (
	"io"
	"log"

	"github.com/milk9111/kinematic/collision"
)

// SkinWidth is the margin kept between a collision box and any surface.
const SkinWidth = 0.01

const (
	maxPushHits         = 4
	unstuckPasses       = 3
	groundProbeMargin   = 0.1
	groundedProbe       = 0.05
	descendProbe        = 0.05
	ascendNudge         = 0.1
	stepClearance       = 0.01
	riderProbe          = SkinWidth * 3
	stepProbeInset      = SkinWidth * 3
	stuckEpsilon        = 1e-5
	slopeAngleTolerance = 1e-4
	flatAngle           = 1e-4
)

// Logger receives resolver warnings.
var Logger = log.Default()

// Silence discards resolver warnings, mostly useful in tests.
func Silence() {
	Logger = log.New(io.Discard, "", 0)
}

// Settings tunes a Mover.
type Settings struct {
	MaxStepIterations int     `yaml:"max_step_iterations"`
	MaxSlopeAngle     float64 `yaml:"max_slope_angle"`
	// ForcedSlopeAngle is the steepest slope a forced move still climbs.
	ForcedSlopeAngle float64 `yaml:"forced_slope_angle"`
	StepHeight       float64 `yaml:"step_height"`
	SlideSpeedFactor float64 `yaml:"slide_speed_factor"`
	// Mass 0 cannot push, negative mass is never slowed by what it pushes.
	Mass float64 `yaml:"mass"`

	CollisionMask collision.Layer `yaml:"-"`
	PushableMask  collision.Layer `yaml:"-"`
}

func DefaultSettings() Settings {
	return Settings{
		MaxStepIterations: 5,
		MaxSlopeAngle:     80,
		ForcedSlopeAngle:  89,
		StepHeight:        0.6,
		SlideSpeedFactor:  0.25,
		Mass:              10,
		CollisionMask:     collision.LayerSolid | collision.LayerPushable,
		PushableMask:      collision.LayerPushable,
	}
}

// steep reports whether a slope is too steep to stand on.
func (s Settings) steep(angle float64) bool {
	return angle > s.MaxSlopeAngle+slopeAngleTolerance
}

func (s Settings) walkable(angle float64) bool {
	return angle <= s.MaxSlopeAngle+slopeAngleTolerance
}
