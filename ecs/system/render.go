package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/collision"
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
	"github.com/milk9111/kinematic/levels"
	"golang.org/x/image/colornames"
)

// rampStrips is how many columns approximate a ramp cell.
const rampStrips = 8

var (
	backgroundColor = colornames.Midnightblue
	tileColor       = colornames.Slategray
	decorColor      = colornames.Darkslateblue
	triggerColors   = map[component.TriggerKind]color.Color{
		component.TriggerLevelEnd: colornames.Gold,
		component.TriggerTeleport: colornames.Mediumorchid,
	}
	stateTints = map[string]color.Color{
		"slide": colornames.Lightskyblue,
		"push":  colornames.Orange,
	}
)

type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	screen.Fill(backgroundColor)
	b := screen.Bounds()
	v := cameraView(w, b.Dx(), b.Dy())

	ecs.ForEach(w, component.TilemapComponent.Kind(), func(_ ecs.Entity, tm *component.Tilemap) {
		drawLevel(screen, v, tm.Level)
	})

	ecs.ForEach(w, component.TriggerComponent.Kind(), func(_ ecs.Entity, t *component.Trigger) {
		c, ok := triggerColors[t.Kind]
		if !ok {
			return
		}
		x, y, width, height := v.rect(t.Bounds)
		vector.StrokeRect(screen, x, y, width, height, 2, c, false)
	})

	var entities []ecs.Entity
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ShapeComponent.Kind(), func(e ecs.Entity, _ *component.Transform, _ *component.Shape) {
		entities = append(entities, e)
	})
	sort.SliceStable(entities, func(i, j int) bool {
		si, _ := ecs.Get(w, entities[i], component.ShapeComponent.Kind())
		sj, _ := ecs.Get(w, entities[j], component.ShapeComponent.Kind())
		if si.Layer != sj.Layer {
			return si.Layer < sj.Layer
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		tf, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		shape, _ := ecs.Get(w, e, component.ShapeComponent.Kind())
		c := shape.Color
		if c == nil {
			c = colornames.White
		}
		if sm, ok := ecs.Get(w, e, component.PlayerStateMachineComponent.Kind()); ok && sm.State != nil {
			if tint, ok := stateTints[sm.State.Name()]; ok {
				c = tint
			}
		}
		x, y, width, height := v.rect(tf.Bounds())
		vector.DrawFilledRect(screen, x, y, width, height, c, false)
	}
}

func drawLevel(screen *ebiten.Image, v view, level *levels.Level) {
	if level == nil {
		return
	}
	for i, layer := range level.Layers {
		fallback := color.Color(tileColor)
		if !level.Physics(i) {
			fallback = decorColor
		}
		c := fallback
		if i < len(level.LayerMeta) {
			c = level.LayerMeta[i].Tint(fallback)
		}
		for j, code := range layer {
			origin := level.CellOrigin(float64(j%level.Width), float64(j/level.Width))
			drawTile(screen, v, collision.TileKind(code), origin, c)
		}
	}
}

func drawTile(screen *ebiten.Image, v view, kind collision.TileKind, o cp.Vector, c color.Color) {
	switch kind {
	case collision.TileSolid:
		x, y, width, height := v.rect(cp.BB{L: o.X, B: o.Y, R: o.X + 1, T: o.Y + 1})
		vector.DrawFilledRect(screen, x, y, width, height, c, false)
	case collision.TileHalf:
		x, y, width, height := v.rect(cp.BB{L: o.X, B: o.Y, R: o.X + 1, T: o.Y + 0.5})
		vector.DrawFilledRect(screen, x, y, width, height, c, false)
	case collision.TileRampRight, collision.TileRampLeft:
		step := 1.0 / rampStrips
		for s := 0; s < rampStrips; s++ {
			h := (float64(s) + 0.5) * step
			if kind == collision.TileRampLeft {
				h = 1 - h
			}
			l := o.X + float64(s)*step
			x, y, width, height := v.rect(cp.BB{L: l, B: o.Y, R: l + step, T: o.Y + h})
			vector.DrawFilledRect(screen, x, y, width, height, c, false)
		}
	}
}
