package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/collision"
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
	"golang.org/x/image/colornames"
)

const debugDotSize = 4

// DrawPhysicsDebug outlines the static level shapes and every dynamic collider.
func DrawPhysicsDebug(world *collision.World, w *ecs.World, screen *ebiten.Image) {
	if world == nil || w == nil || screen == nil {
		return
	}
	b := screen.Bounds()
	drawer := &physicsDebugDrawer{screen: screen, view: cameraView(w, b.Dx(), b.Dy())}
	cp.DrawSpace(world.Space(), drawer)

	for _, c := range world.Colliders() {
		outline := colornames.Lime
		switch {
		case c.Layer().Has(collision.LayerNoCollision):
			outline = colornames.Red
		case c.Layer().Has(collision.LayerSolid):
			outline = colornames.Cyan
		}
		x, y, width, height := drawer.view.rect(c.Bounds())
		vector.StrokeRect(screen, x, y, width, height, 1, outline, false)
	}
}

// DrawPlayerStateDebug prints the player state and the last move result.
func DrawPlayerStateDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	stateName := "none"
	if sm, ok := ecs.Get(w, player, component.PlayerStateMachineComponent.Kind()); ok && sm.State != nil {
		stateName = sm.State.Name()
	}
	p, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	mover, ok := ecs.Get(w, player, component.MoverComponent.Kind())
	if !ok || mover.Body == nil {
		return
	}
	res := mover.Body.Result()
	text := fmt.Sprintf("Player State: %s\nVelocity: (%.2f, %.2f)\nGrounded: %v\nSliding: %v\nSteppingUp: %v\nHitCeiling: %v\nFPS: %.0f",
		stateName, p.Velocity.X, p.Velocity.Y, res.Grounded, res.Sliding, res.SteppingUp, res.HitCeiling, ebiten.ActualFPS())
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	view   view
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	x, y := d.view.toScreen(pos)
	vector.StrokeCircle(d.screen, x, y, float32(radius*d.view.scale), 1, toNRGBA(outline), false)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	for i := 0; i < count; i++ {
		d.drawLine(verts[i], verts[(i+1)%count], outline)
	}
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := d.view.toScreen(pos)
	vector.DrawFilledCircle(d.screen, x, y, float32(size/2), toNRGBA(fill), false)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.view.toScreen(a)
	x2, y2 := d.view.toScreen(b)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, 1, toNRGBA(c), false)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
