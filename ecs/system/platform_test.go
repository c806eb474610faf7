package system

import (
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/collision"
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
	"github.com/milk9111/kinematic/kinematic"
)

func spawnPlatform(t *testing.T, w *ecs.World, cw *collision.World, bb cp.BB, platform *component.Platform) *kinematic.Mover {
	t.Helper()
	settings := kinematic.DefaultSettings()
	settings.Mass = -1
	body := kinematic.NewMover(cw, bb, collision.LayerSolid, settings)
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.PlatformComponent.Kind(), platform)
	mustAdd(t, w, e, component.MoverComponent.Kind(), &component.Mover{Body: body})
	return body
}

func TestPlatformConstantVelocity(t *testing.T) {
	w := ecs.NewWorld()
	cw := collision.NewWorld()
	body := spawnPlatform(t, w, cw, cp.BB{L: 0, B: 5, R: 2, T: 5.5}, &component.Platform{Velocity: cp.Vector{X: 1}})

	run(w, 60, NewPlatformSystem())
	if !near(body.Bounds().L, 1, 1e-6) || !near(body.Bounds().B, 5, 1e-6) {
		t.Fatalf("bounds = %v, want moved one unit right", body.Bounds())
	}
}

func TestPlatformCarriesRider(t *testing.T) {
	w := ecs.NewWorld()
	cw := collision.NewWorld()
	body := spawnPlatform(t, w, cw, cp.BB{L: 0, B: 0, R: 4, T: 0.5}, &component.Platform{Velocity: cp.Vector{X: 1}})
	_, rider := spawnBox(t, w, cw, restingBox(1, 0.5, 1, 1))

	run(w, 30, NewPlatformSystem(), NewBoxSystem())
	if moved := rider.Bounds().L - 1; !near(moved, body.Bounds().L, 0.02) {
		t.Fatalf("rider moved %v, platform moved %v", moved, body.Bounds().L)
	}
	if !rider.Result().Grounded {
		t.Fatal("rider fell off")
	}
}

func TestPlatformScriptVelocity(t *testing.T) {
	script, err := CompilePlatformScript("updown", []byte(`
velocity := func(t) {
	if t < 1 {
		return {x: 0, y: 2}
	}
	return {x: 1, y: -2.5}
}
`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	tests := []struct {
		t    float64
		want cp.Vector
	}{
		{0.5, cp.Vector{X: 0, Y: 2}},
		{1.5, cp.Vector{X: 1, Y: -2.5}},
	}
	for _, tc := range tests {
		got, err := script.Velocity(tc.t)
		if err != nil {
			t.Fatalf("velocity(%v): %v", tc.t, err)
		}
		if got != tc.want {
			t.Fatalf("velocity(%v) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestPlatformScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"not_a_map", `velocity := func(t) { return 3 }`, "must return a map"},
		{"missing_y", `velocity := func(t) { return {x: 1} }`, "numeric x and y"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			script, err := CompilePlatformScript(tc.name, []byte(tc.src))
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			_, err = script.Velocity(0)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want %q", err, tc.want)
			}
		})
	}

	if _, err := CompilePlatformScript("broken", []byte(`velocity := func(t) {`)); err == nil {
		t.Fatal("expected a compile error")
	}
}

func TestPlatformDisablesFailingScript(t *testing.T) {
	script, err := CompilePlatformScript("bad", []byte(`velocity := func(t) { return "up" }`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	w := ecs.NewWorld()
	cw := collision.NewWorld()
	platform := &component.Platform{Velocity: cp.Vector{Y: 1}, Script: script}
	body := spawnPlatform(t, w, cw, cp.BB{L: 0, B: 0, R: 2, T: 0.5}, platform)

	run(w, 60, NewPlatformSystem())
	if platform.Script != nil {
		t.Fatal("failing script still attached")
	}
	if !near(body.Bounds().B, 1, 1e-6) {
		t.Fatalf("bottom = %v, want the last velocity kept", body.Bounds().B)
	}
}

func TestLoadPlatformScripts(t *testing.T) {
	for _, name := range []string{"elevator", "shuttle"} {
		t.Run(name, func(t *testing.T) {
			script, err := LoadPlatformScript(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if _, err := script.Velocity(1); err != nil {
				t.Fatalf("velocity: %v", err)
			}
		})
	}
}
