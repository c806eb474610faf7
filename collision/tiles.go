package collision

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// TileKind is a level grid cell.
type TileKind int

const (
	TileEmpty TileKind = iota
	TileSolid
	// TileRampRight rises from the left edge to the right edge.
	TileRampRight
	// TileRampLeft rises from the right edge to the left edge.
	TileRampLeft
	// TileHalf is a slab covering the lower half of the cell.
	TileHalf
)

func (k TileKind) Valid() bool {
	return k >= TileEmpty && k <= TileHalf
}

// boundsThickness is the depth of the walls placed around a tile grid.
const boundsThickness = 1.0

// AddTiles builds static geometry for a row-major grid whose first row is the top of
// the level. Cell (col, row) covers [col, col+1] x [height-1-row, height-row] in world
// units scaled by unit. Contiguous solid cells are merged into larger boxes and the
// grid is enclosed by walls. It returns the number of shapes added.
func (w *World) AddTiles(width, height int, tiles []int, unit float64) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("collision: invalid tile grid %dx%d", width, height)
	}
	if len(tiles) != width*height {
		return 0, fmt.Errorf("collision: tile grid %dx%d needs %d cells, got %d", width, height, width*height, len(tiles))
	}

	kind := func(x, y int) TileKind {
		return TileKind(tiles[y*width+x])
	}
	origin := func(x, y int) cp.Vector {
		return cp.Vector{X: float64(x) * unit, Y: float64(height-1-y) * unit}
	}

	added := 0
	processed := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if processed[idx] {
				continue
			}
			processed[idx] = true

			k := kind(x, y)
			if !k.Valid() {
				return added, fmt.Errorf("collision: unknown tile %d at (%d, %d)", k, x, y)
			}
			o := origin(x, y)
			switch k {
			case TileEmpty:
				continue
			case TileRampRight:
				w.AddStaticPolygon([]cp.Vector{o, {X: o.X + unit, Y: o.Y}, {X: o.X + unit, Y: o.Y + unit}}, LayerSolid)
				added++
				continue
			case TileRampLeft:
				w.AddStaticPolygon([]cp.Vector{o, {X: o.X + unit, Y: o.Y}, {X: o.X, Y: o.Y + unit}}, LayerSolid)
				added++
				continue
			case TileHalf:
				w.AddStaticBox(cp.BB{L: o.X, B: o.Y, R: o.X + unit, T: o.Y + unit/2}, LayerSolid)
				added++
				continue
			}

			// Greedily grow a solid rectangle, first along the row then downwards.
			rw := 1
			for x+rw < width && !processed[y*width+x+rw] && kind(x+rw, y) == TileSolid {
				rw++
			}
			rh := 1
		grow:
			for y+rh < height {
				for xi := x; xi < x+rw; xi++ {
					if processed[(y+rh)*width+xi] || kind(xi, y+rh) != TileSolid {
						break grow
					}
				}
				rh++
			}
			for yy := y; yy < y+rh; yy++ {
				for xx := x; xx < x+rw; xx++ {
					processed[yy*width+xx] = true
				}
			}

			// Rows grow downward, so the bottom edge belongs to the last row.
			bottom := origin(x, y+rh-1)
			w.AddStaticBox(cp.BB{L: bottom.X, B: bottom.Y, R: bottom.X + float64(rw)*unit, T: o.Y + unit}, LayerSolid)
			added++
		}
	}

	worldW := float64(width) * unit
	worldH := float64(height) * unit
	t := boundsThickness * unit
	walls := []cp.BB{
		{L: -t, B: -t, R: worldW + t, T: 0},              // floor
		{L: -t, B: worldH, R: worldW + t, T: worldH + t}, // ceiling
		{L: -t, B: 0, R: 0, T: worldH},                   // left
		{L: worldW, B: 0, R: worldW + t, T: worldH},      // right
	}
	for _, bb := range walls {
		w.AddStaticBox(bb, LayerSolid)
		added++
	}
	return added, nil
}
