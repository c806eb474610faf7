package levels

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/collision"
	"github.com/milk9111/kinematic/common"
)

var ErrInvalidLevel = errors.New("levels: invalid level")

const (
	EntityPlayer     = "player"
	EntityBox        = "box"
	EntityPlatform   = "platform"
	EntityLevelEnd   = "level_end"
	EntityTeleporter = "teleporter"
)

// Level is a tile grid plus the entities placed on it. Row 0 is the top row and every
// cell is one world unit wide.
type Level struct {
	Name      string      `json:"name,omitempty"`
	Width     int         `json:"width" jsonschema:"minimum=1"`
	Height    int         `json:"height" jsonschema:"minimum=1"`
	Layers    [][]int     `json:"layers" jsonschema:"description=Row-major tile codes: 0 empty 1 solid 2 ramp rising right 3 ramp rising left 4 half slab"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
	Next      string      `json:"next,omitempty" jsonschema:"description=Level loaded when the level end is reached. Empty reloads this level."`
}

type LayerMeta struct {
	Physics bool   `json:"physics"`
	Color   string `json:"color,omitempty" jsonschema:"pattern=^#?[0-9a-fA-F]{6}([0-9a-fA-F]{2})?$"`
}

// Tint parses Color, returning fallback when it is empty or malformed.
func (m LayerMeta) Tint(fallback color.Color) color.Color {
	c, err := common.ParseHexColor(m.Color)
	if err != nil {
		return fallback
	}
	return c
}

// Entity is placed with its bottom-left corner on the bottom-left of cell (X, Y).
type Entity struct {
	Type  string         `json:"type" jsonschema:"enum=player,enum=box,enum=platform,enum=level_end,enum=teleporter"`
	X     int            `json:"x" jsonschema:"minimum=0"`
	Y     int            `json:"y" jsonschema:"minimum=0"`
	Props map[string]any `json:"props,omitempty"`
}

// Float reads a numeric prop, falling back to def.
func (e Entity) Float(name string, def float64) float64 {
	switch v := e.Props[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}

func (e Entity) Text(name string) string {
	s, _ := e.Props[name].(string)
	return s
}

func (e Entity) Has(name string) bool {
	_, ok := e.Props[name]
	return ok
}

// Physics reports whether layer i contributes collision geometry. Layers without
// metadata collide.
func (l *Level) Physics(i int) bool {
	if i < len(l.LayerMeta) {
		return l.LayerMeta[i].Physics
	}
	return true
}

// CellOrigin is the world position of the bottom-left corner of cell (x, y).
func (l *Level) CellOrigin(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: float64(l.Height-1) - y}
}

// EntityBounds is the world box an entity occupies given its default size.
func (l *Level) EntityBounds(e Entity, defW, defH float64) cp.BB {
	o := l.CellOrigin(float64(e.X), float64(e.Y))
	w := e.Float("width", defW)
	h := e.Float("height", defH)
	return cp.BB{L: o.X, B: o.Y, R: o.X + w, T: o.Y + h}
}

// Spawn returns the player entity.
func (l *Level) Spawn() (Entity, bool) {
	for _, e := range l.Entities {
		if e.Type == EntityPlayer {
			return e, true
		}
	}
	return Entity{}, false
}

// Validate checks the grid and the entities. Errors wrap ErrInvalidLevel.
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLevel, l.Width, l.Height)
	}
	if len(l.Layers) == 0 {
		return fmt.Errorf("%w: no layers", ErrInvalidLevel)
	}
	if len(l.LayerMeta) > len(l.Layers) {
		return fmt.Errorf("%w: %d layer_meta entries for %d layers", ErrInvalidLevel, len(l.LayerMeta), len(l.Layers))
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("%w: layer %d has %d cells, want %d", ErrInvalidLevel, i, len(layer), l.Width*l.Height)
		}
		for j, code := range layer {
			if !collision.TileKind(code).Valid() {
				return fmt.Errorf("%w: layer %d cell (%d, %d) has unknown tile %d", ErrInvalidLevel, i, j%l.Width, j/l.Width, code)
			}
		}
	}

	players := 0
	for i, e := range l.Entities {
		if e.X < 0 || e.X >= l.Width || e.Y < 0 || e.Y >= l.Height {
			return fmt.Errorf("%w: entity %d (%s) at (%d, %d) is outside the grid", ErrInvalidLevel, i, e.Type, e.X, e.Y)
		}
		if e.Float("width", 1) <= 0 || e.Float("height", 1) <= 0 {
			return fmt.Errorf("%w: entity %d (%s) has a non-positive size", ErrInvalidLevel, i, e.Type)
		}
		switch e.Type {
		case EntityPlayer:
			players++
		case EntityBox, EntityPlatform, EntityLevelEnd:
		case EntityTeleporter:
			if !e.Has("target_x") || !e.Has("target_y") {
				return fmt.Errorf("%w: teleporter %d has no target", ErrInvalidLevel, i)
			}
			tx, ty := e.Float("target_x", 0), e.Float("target_y", 0)
			if tx < 0 || tx >= float64(l.Width) || ty < 0 || ty >= float64(l.Height) {
				return fmt.Errorf("%w: teleporter %d target (%v, %v) is outside the grid", ErrInvalidLevel, i, tx, ty)
			}
		default:
			return fmt.Errorf("%w: entity %d has unknown type %q", ErrInvalidLevel, i, e.Type)
		}
	}
	if players != 1 {
		return fmt.Errorf("%w: %d player spawns, want 1", ErrInvalidLevel, players)
	}
	return nil
}

// Build adds the collision geometry of the physics layers to w. Where layers overlap
// the first non-empty cell wins.
func (l *Level) Build(w *collision.World) error {
	grid := make([]int, l.Width*l.Height)
	for i, layer := range l.Layers {
		if !l.Physics(i) {
			continue
		}
		for j, code := range layer {
			if grid[j] == int(collision.TileEmpty) {
				grid[j] = code
			}
		}
	}
	if _, err := w.AddTiles(l.Width, l.Height, grid, 1); err != nil {
		return fmt.Errorf("levels: build %s: %w", l.Name, err)
	}
	return nil
}
