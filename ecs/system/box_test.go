package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/ecs"
)

func TestBoxFallsOntoFloor(t *testing.T) {
	w := ecs.NewWorld()
	cw := floorWorld()
	box, body := spawnBox(t, w, cw, restingBox(0, 4, 1, 1))

	run(w, 120, NewBoxSystem())
	if !near(body.Bounds().B, 0.01, 1e-3) {
		t.Fatalf("bottom = %v, want resting on the floor", body.Bounds().B)
	}
	if box.Velocity.Y != 0 {
		t.Fatalf("vy = %v, want 0", box.Velocity.Y)
	}
}

func TestBoxKeepsMomentumAfterPush(t *testing.T) {
	w := ecs.NewWorld()
	cw := floorWorld()
	box, body := spawnBox(t, w, cw, restingBox(0, 0, 1, 1))
	boxes := NewBoxSystem()
	boxes.Update(w)

	body.Push(nil, cp.Vector{X: 0.1}, 10)
	if !box.WasPushed || !near(box.PushX, 0.1, 1e-6) {
		t.Fatalf("push not recorded: %+v", box)
	}

	// Still being pushed this tick, no momentum yet.
	boxes.Update(w)
	if box.Velocity.X != 0 {
		t.Fatalf("vx = %v while pushed", box.Velocity.X)
	}

	start := body.Bounds().L
	boxes.Update(w)
	if box.Velocity.X <= 0 {
		t.Fatalf("vx = %v, want momentum to the right", box.Velocity.X)
	}
	if body.Bounds().L <= start {
		t.Fatal("box did not slide")
	}

	run(w, 600, boxes)
	if box.Velocity.X != 0 {
		t.Fatalf("vx = %v, want friction to stop the box", box.Velocity.X)
	}
}
