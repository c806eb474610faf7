package component

import "image/color"

// Shape draws the entity's transform as a filled rectangle.
type Shape struct {
	Color color.Color
	Layer int
}

var ShapeComponent = NewComponent[Shape]()
