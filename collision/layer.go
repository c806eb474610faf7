package collision

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
)

// Layer is a bitmask of collision categories.
type Layer uint32

const (
	LayerSolid Layer = 1 << iota
	LayerPushable
	LayerNoCollision
	LayerTrigger
)

const LayerNone Layer = 0

func (l Layer) Has(mask Layer) bool {
	return l&mask != 0
}

func (l Layer) String() string {
	switch l {
	case LayerNone:
		return "none"
	case LayerSolid:
		return "solid"
	case LayerPushable:
		return "pushable"
	case LayerNoCollision:
		return "no_collision"
	case LayerTrigger:
		return "trigger"
	default:
		return "mixed"
	}
}

// ParseLayers combines layer names such as "solid" or "pushable" into a mask.
func ParseLayers(names []string) (Layer, error) {
	var mask Layer
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "solid":
			mask |= LayerSolid
		case "pushable":
			mask |= LayerPushable
		case "no_collision":
			mask |= LayerNoCollision
		case "trigger":
			mask |= LayerTrigger
		default:
			return LayerNone, fmt.Errorf("collision: unknown layer %q", name)
		}
	}
	return mask, nil
}

// shapeFilter places a static shape in the given category, colliding with everything.
func shapeFilter(l Layer) cp.ShapeFilter {
	return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: uint(l), Mask: cp.ALL_CATEGORIES}
}

// queryFilter matches shapes whose category is in mask.
func queryFilter(mask Layer) cp.ShapeFilter {
	return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: uint(mask)}
}
