package system

import (
	"math"
	"os"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/collision"
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
	"github.com/milk9111/kinematic/kinematic"
)

func TestMain(m *testing.M) {
	kinematic.Silence()
	os.Exit(m.Run())
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// floorWorld returns a collision world with a wide floor whose top is y=0.
func floorWorld() *collision.World {
	cw := collision.NewWorld()
	cw.AddStaticBox(cp.BB{L: -50, B: -1, R: 50, T: 0}, collision.LayerSolid)
	return cw
}

func restingBox(x, y, w, h float64) cp.BB {
	return cp.BB{L: x, B: y + kinematic.SkinWidth, R: x + w, T: y + h + kinematic.SkinWidth}
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add: %v", err)
	}
}

type testPlayer struct {
	entity ecs.Entity
	player *component.Player
	body   *kinematic.Mover
	input  *component.Input
	sm     *component.PlayerStateMachine
}

func spawnPlayer(t *testing.T, w *ecs.World, cw *collision.World, x, y float64) testPlayer {
	t.Helper()
	settings := kinematic.DefaultSettings()
	p := testPlayer{
		entity: ecs.CreateEntity(w),
		player: &component.Player{
			MoveSpeed:     6,
			MaxFallSpeed:  18,
			AccelGrounded: 0.1,
			AccelAirborne: 0.2,
			CoyoteTime:    0.1,
			JumpBuffer:    0.1,
			JumpCooldown:  0.2,
			GrabSize:      cp.Vector{X: 0.3, Y: 1.2},
			GrabMask:      settings.PushableMask,
		},
		body:  kinematic.NewMover(cw, restingBox(x, y, 0.8, 1.6), collision.LayerPushable, settings),
		input: &component.Input{},
		sm:    &component.PlayerStateMachine{},
	}
	p.player.SetJump(4, 1, 0.4)
	mustAdd(t, w, p.entity, component.PlayerComponent.Kind(), p.player)
	mustAdd(t, w, p.entity, component.MoverComponent.Kind(), &component.Mover{Body: p.body})
	mustAdd(t, w, p.entity, component.InputComponent.Kind(), p.input)
	mustAdd(t, w, p.entity, component.PlayerStateMachineComponent.Kind(), p.sm)
	return p
}

func (p testPlayer) state() string {
	if p.sm.State == nil {
		return ""
	}
	return p.sm.State.Name()
}

func spawnBox(t *testing.T, w *ecs.World, cw *collision.World, bb cp.BB) (*component.Box, *kinematic.Mover) {
	t.Helper()
	body := kinematic.NewMover(cw, bb, collision.LayerPushable, kinematic.DefaultSettings())
	box := &component.Box{Gravity: 50, MaxFallSpeed: 18, Damping: 0.999, FrictionLoss: 1}
	ListenForPushes(box, body)
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.BoxComponent.Kind(), box)
	mustAdd(t, w, e, component.MoverComponent.Kind(), &component.Mover{Body: body})
	return box, body
}

func run(w *ecs.World, ticks int, systems ...ecs.System) {
	for i := 0; i < ticks; i++ {
		for _, s := range systems {
			s.Update(w)
		}
	}
}
