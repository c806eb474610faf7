package kinematic

import (
	"bytes"
	"log"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/collision"
)

func TestMain(m *testing.M) {
	Silence()
	os.Exit(m.Run())
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Logger
	Logger = log.New(&buf, "", 0)
	t.Cleanup(func() { Logger = prev })
	return &buf
}

func TestMoveStopsAtWall(t *testing.T) {
	buf := captureLog(t)
	w := floorWorld()
	w.AddStaticBox(cp.BB{L: 3, B: 0, R: 4, T: 5}, collision.LayerSolid)
	m := NewMover(w, restingBox(0, 0, 1, 1), collision.LayerPushable, DefaultSettings())

	res := m.Move(cp.Vector{X: 6, Y: 0})

	if !near(res.Delta.X, 2-SkinWidth) || !near(res.Delta.Y, 0) {
		t.Fatalf("delta = %v, want (%v, 0)", res.Delta, 2-SkinWidth)
	}
	if !res.Grounded {
		t.Fatal("expected grounded")
	}
	if gap := 3 - m.Bounds().R; !near(gap, SkinWidth) {
		t.Fatalf("gap to wall = %v, want skin", gap)
	}
	if buf.Len() != 0 {
		t.Fatalf("a blocked move must not warn: %q", buf.String())
	}
}

func TestMoveFalls(t *testing.T) {
	w := floorWorld()
	m := NewMover(w, cp.BB{L: 0, B: 2, R: 1, T: 3}, collision.LayerPushable, DefaultSettings())

	res := m.Move(cp.Vector{X: 0, Y: -0.5})
	if !near(res.Delta.Y, -0.5) || res.Grounded {
		t.Fatalf("mid-air fall: %+v", res)
	}

	res = m.Move(cp.Vector{X: 0, Y: -5})
	if !res.Grounded {
		t.Fatal("expected to land")
	}
	if !near(m.Bounds().B, SkinWidth) {
		t.Fatalf("landed at %v, want one skin above the floor", m.Bounds().B)
	}
}

func TestMoveHitsCeiling(t *testing.T) {
	w := floorWorld()
	w.AddStaticBox(cp.BB{L: -5, B: 2, R: 5, T: 3}, collision.LayerSolid)
	m := NewMover(w, restingBox(0, 0, 1, 1), collision.LayerPushable, DefaultSettings())

	res := m.Move(cp.Vector{X: 0, Y: 3})
	if !res.HitCeiling {
		t.Fatal("expected ceiling hit")
	}
	if !near(m.Bounds().T, 2-SkinWidth) {
		t.Fatalf("top = %v", m.Bounds().T)
	}
}

// rampWorld holds a 45 degree ramp rising to the right between x=2 and x=4.
func rampWorld() *collision.World {
	w := collision.NewWorld()
	w.AddStaticPolygon([]cp.Vector{{X: 2, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}}, collision.LayerSolid)
	return w
}

func TestSlopeSliding(t *testing.T) {
	tests := []struct {
		name        string
		maxAngle    float64
		wantSliding bool
	}{
		{"walkable_at_max_angle", 45, false},
		{"steeper_than_max", 44, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			settings := DefaultSettings()
			settings.MaxSlopeAngle = tc.maxAngle
			m := NewMover(rampWorld(), cp.BB{L: 2.5, B: 1.6, R: 3.5, T: 2.6}, collision.LayerPushable, settings)

			res := m.Move(cp.Vector{X: 0, Y: -0.1})
			if res.Sliding != tc.wantSliding {
				t.Fatalf("sliding = %v, want %v", res.Sliding, tc.wantSliding)
			}
			if !tc.wantSliding {
				if !res.Grounded {
					t.Fatal("expected grounded on a walkable slope")
				}
				return
			}
			want := cp.Vector{X: -math.Sqrt2 / 2, Y: math.Sqrt2 / 2}
			if !vecNear(res.SlideNormal, want) {
				t.Fatalf("slide normal = %v, want %v", res.SlideNormal, want)
			}
			if res.Delta.X >= 0 || res.Delta.Y >= 0 {
				t.Fatalf("expected to slide down and left, got %v", res.Delta)
			}
		})
	}
}

func TestForcedMoveClimbsSteepSlope(t *testing.T) {
	newMover := func() *Mover {
		w := floorWorld()
		w.AddStaticPolygon([]cp.Vector{{X: 2, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 1}}, collision.LayerSolid)
		settings := DefaultSettings()
		settings.MaxSlopeAngle = 30
		return NewMover(w, restingBox(0, 0, 1, 1), collision.LayerPushable, settings)
	}

	voluntary := newMover().Move(cp.Vector{X: 2, Y: 0})
	if math.Abs(voluntary.Delta.X-1.01) > 1e-3 || !near(voluntary.Delta.Y, 0) {
		t.Fatalf("voluntary move should stop at the slope, got %v", voluntary.Delta)
	}

	forced := newMover().Push(nil, cp.Vector{X: 2, Y: 0}, 10)
	if math.Abs(forced.Delta.X-2) > 1e-6 {
		t.Fatalf("forced move should cover the full horizontal distance, got %v", forced.Delta)
	}
	if forced.Delta.Y < 0.9 {
		t.Fatalf("forced move should climb the slope, got %v", forced.Delta)
	}
}

// stepWorld has a half-height slab between x=3 and x=4.
func stepWorld() *collision.World {
	w := floorWorld()
	w.AddStaticBox(cp.BB{L: 3, B: 0, R: 4, T: 0.5}, collision.LayerSolid)
	return w
}

func TestStepClimb(t *testing.T) {
	m := NewMover(stepWorld(), restingBox(0, 0, 1, 1), collision.LayerPushable, DefaultSettings())

	res := m.Move(cp.Vector{X: 3, Y: 0})
	if !res.SteppingUp {
		t.Fatal("expected to step up")
	}
	if math.Abs(res.Delta.Y-0.49) > 1e-6 {
		t.Fatalf("rise = %v, want 0.49", res.Delta.Y)
	}
	if math.Abs(res.Delta.X-2.51) > 1e-6 {
		t.Fatalf("horizontal travel = %v, want 2.51", res.Delta.X)
	}
	if !res.Grounded {
		t.Fatal("stepping up counts as grounded")
	}

	next := m.Move(cp.Vector{X: 0.1, Y: 0})
	if !next.WasSteppingUp {
		t.Fatal("expected WasSteppingUp on the following move")
	}
}

func TestStepBlockedByCeiling(t *testing.T) {
	w := stepWorld()
	w.AddStaticBox(cp.BB{L: 2.5, B: 1.3, R: 6, T: 2}, collision.LayerSolid)
	m := NewMover(w, restingBox(0, 0, 1, 1), collision.LayerPushable, DefaultSettings())

	res := m.Move(cp.Vector{X: 3, Y: 0})
	if res.SteppingUp {
		t.Fatal("no headroom above the ledge, must not step")
	}
	if !near(res.Delta.Y, 0) || !near(res.Delta.X, 2-SkinWidth) {
		t.Fatalf("delta = %v", res.Delta)
	}
}

func TestStepTooHigh(t *testing.T) {
	settings := DefaultSettings()
	settings.StepHeight = 0.3
	m := NewMover(stepWorld(), restingBox(0, 0, 1, 1), collision.LayerPushable, settings)

	res := m.Move(cp.Vector{X: 3, Y: 0})
	if res.SteppingUp || !near(res.Delta.Y, 0) {
		t.Fatalf("ledge above step height was climbed: %+v", res)
	}
}

func TestIterationCapWarns(t *testing.T) {
	buf := captureLog(t)
	settings := DefaultSettings()
	settings.MaxStepIterations = 1
	m := NewMover(stepWorld(), restingBox(0, 0, 1, 1), collision.LayerPushable, settings)

	res := m.Move(cp.Vector{X: 3, Y: 0})
	if !strings.Contains(buf.String(), "ran out of step iterations") {
		t.Fatalf("expected iteration warning, log = %q", buf.String())
	}
	if math.Abs(res.Delta.X-2) > 0.02 {
		t.Fatalf("first iteration should reach the ledge, got %v", res.Delta)
	}
}

func TestUnstuck(t *testing.T) {
	w := floorWorld()
	m := NewMover(w, cp.BB{L: 0, B: -0.005, R: 1, T: 0.995}, collision.LayerPushable, DefaultSettings())

	m.Move(cp.Vector{})
	if m.Bounds().B <= -0.005 {
		t.Fatalf("expected to be pushed out of the floor, bottom = %v", m.Bounds().B)
	}
}

func TestTeleportClearsResult(t *testing.T) {
	m := NewMover(floorWorld(), restingBox(0, 0, 1, 1), collision.LayerPushable, DefaultSettings())
	m.Move(cp.Vector{X: 1, Y: 0})

	m.Teleport(cp.Vector{X: 5, Y: 5})
	if !vecNear(m.Center(), cp.Vector{X: 5, Y: 5}) {
		t.Fatalf("center = %v", m.Center())
	}
	if m.Result() != (MoveResult{}) {
		t.Fatalf("result not cleared: %+v", m.Result())
	}
}
