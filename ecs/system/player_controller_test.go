package system

import (
	"math"
	"slices"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/collision"
	"github.com/milk9111/kinematic/common"
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
	"github.com/milk9111/kinematic/kinematic"
)

func TestPlayerFallsAndLands(t *testing.T) {
	w := ecs.NewWorld()
	cw := floorWorld()
	p := spawnPlayer(t, w, cw, 0, 3)
	controller := NewPlayerControllerSystem(cw)

	controller.Update(w)
	if p.state() != "fall" {
		t.Fatalf("state after first tick = %q, want fall", p.state())
	}
	if p.player.Velocity.Y >= 0 {
		t.Fatalf("gravity not applied: vy = %v", p.player.Velocity.Y)
	}

	run(w, 120, controller)
	if !near(p.body.Bounds().B, kinematic.SkinWidth, 1e-3) {
		t.Fatalf("bottom = %v, want resting on the floor", p.body.Bounds().B)
	}
	if p.player.Velocity.Y != 0 {
		t.Fatalf("grounded vy = %v, want 0", p.player.Velocity.Y)
	}
	if p.state() != "idle" {
		t.Fatalf("state = %q, want idle", p.state())
	}
}

func TestPlayerJump(t *testing.T) {
	w := ecs.NewWorld()
	cw := floorWorld()
	p := spawnPlayer(t, w, cw, 0, 0)
	controller := NewPlayerControllerSystem(cw)
	run(w, 5, controller)

	p.input.Jump = true
	controller.Update(w)
	if p.player.Velocity.Y != p.player.MaxJumpVelocity {
		t.Fatalf("vy = %v, want %v", p.player.Velocity.Y, p.player.MaxJumpVelocity)
	}
	if p.state() != "jump" {
		t.Fatalf("state = %q, want jump", p.state())
	}

	run(w, 10, controller)
	if p.body.Bounds().B < 1 {
		t.Fatalf("bottom = %v after holding jump, want above 1", p.body.Bounds().B)
	}

	p.input.Jump = false
	run(w, 120, controller)
	if p.state() != "idle" || !p.body.Result().Grounded {
		t.Fatalf("state = %q grounded = %v, want idle on the floor", p.state(), p.body.Result().Grounded)
	}
}

func TestPlayerJumpCut(t *testing.T) {
	w := ecs.NewWorld()
	cw := floorWorld()
	p := spawnPlayer(t, w, cw, 0, 0)
	controller := NewPlayerControllerSystem(cw)
	run(w, 5, controller)

	p.input.Jump = true
	controller.Update(w)
	p.input.Jump = false
	controller.Update(w)
	if p.player.Velocity.Y != p.player.MinJumpVelocity {
		t.Fatalf("vy = %v after release, want %v", p.player.Velocity.Y, p.player.MinJumpVelocity)
	}
}

func TestPlayerJumpNeedsGround(t *testing.T) {
	w := ecs.NewWorld()
	cw := floorWorld()
	p := spawnPlayer(t, w, cw, 0, 5)
	controller := NewPlayerControllerSystem(cw)
	run(w, 20, controller)

	p.input.Jump = true
	controller.Update(w)
	if p.player.Velocity.Y > 0 {
		t.Fatalf("jumped in mid air: vy = %v", p.player.Velocity.Y)
	}
}

func TestPlayerRun(t *testing.T) {
	tests := []struct {
		name     string
		moveX    float64
		wantLeft bool
	}{
		{"right", 1, false},
		{"left", -1, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			cw := floorWorld()
			p := spawnPlayer(t, w, cw, 0, 0)
			controller := NewPlayerControllerSystem(cw)
			run(w, 5, controller)

			p.input.MoveX = tc.moveX
			run(w, 60, controller)
			if !near(p.player.Velocity.X, tc.moveX*p.player.MoveSpeed, 0.05) {
				t.Fatalf("vx = %v, want about %v", p.player.Velocity.X, tc.moveX*p.player.MoveSpeed)
			}
			if p.player.FacingLeft != tc.wantLeft {
				t.Fatalf("facing left = %v", p.player.FacingLeft)
			}
			if p.state() != "run" {
				t.Fatalf("state = %q, want run", p.state())
			}
			if moved := p.body.Bounds().L * tc.moveX; moved < 2 {
				t.Fatalf("moved %v units", moved)
			}
		})
	}
}

func TestPlayerPushesBox(t *testing.T) {
	w := ecs.NewWorld()
	cw := floorWorld()
	p := spawnPlayer(t, w, cw, 0, 0)
	_, body := spawnBox(t, w, cw, restingBox(2, 0, 1, 1))
	controller := NewPlayerControllerSystem(cw)
	run(w, 5, controller)

	start := body.Bounds().L
	p.input.MoveX = 1
	run(w, 60, controller)
	if body.Bounds().L <= start+0.5 {
		t.Fatalf("box at %v, want pushed right of %v", body.Bounds().L, start)
	}
	if !p.player.Pushing || p.state() != "push" {
		t.Fatalf("pushing = %v state = %q", p.player.Pushing, p.state())
	}
	if p.body.Bounds().R > body.Bounds().L {
		t.Fatal("player overlaps the box")
	}
}

func TestPlayerPullsGrabbedBox(t *testing.T) {
	w := ecs.NewWorld()
	cw := floorWorld()
	p := spawnPlayer(t, w, cw, 0, 0)
	_, body := spawnBox(t, w, cw, restingBox(0.9, 0, 1, 1))
	controller := NewPlayerControllerSystem(cw)
	run(w, 5, controller)

	p.input.Interact = true
	p.input.MoveX = -1
	run(w, 30, controller)
	if !p.player.Grabbing {
		t.Fatal("expected the box to be grabbed")
	}
	if p.player.FacingLeft {
		t.Fatal("a grabbing player must keep facing the box")
	}
	if body.Bounds().L > 0.5 {
		t.Fatalf("box at %v, want pulled left", body.Bounds().L)
	}
	if gap := body.Bounds().L - p.body.Bounds().R; !near(gap, 0.1, 0.02) {
		t.Fatalf("gap = %v, want the grab distance kept", gap)
	}

	p.input.Interact = false
	controller.Update(w)
	if p.player.Grabbing {
		t.Fatal("released box still grabbed")
	}
}

func TestPlayerCoyoteJump(t *testing.T) {
	tests := []struct {
		name     string
		airTicks int
		wantJump bool
	}{
		{"inside_window", 1, true},
		{"after_window", 8, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			cw := collision.NewWorld()
			cw.AddStaticBox(cp.BB{L: -50, B: -1, R: 2, T: 0}, collision.LayerSolid)
			p := spawnPlayer(t, w, cw, 0, 0)
			controller := NewPlayerControllerSystem(cw)
			run(w, 5, controller)

			p.input.MoveX = 1
			left := false
			for i := 0; i < 120 && !left; i++ {
				controller.Update(w)
				left = !p.body.Result().Grounded
			}
			if !left {
				t.Fatal("never walked off the ledge")
			}

			run(w, tc.airTicks, controller)
			p.input.Jump = true
			controller.Update(w)
			jumped := p.player.Velocity.Y == p.player.MaxJumpVelocity
			if jumped != tc.wantJump {
				t.Fatalf("jumped = %v (vy = %v) %d ticks after leaving the ledge", jumped, p.player.Velocity.Y, tc.airTicks+1)
			}
		})
	}
}

func TestPlayerBufferedJump(t *testing.T) {
	spawn := func(t *testing.T) (*ecs.World, testPlayer, *PlayerControllerSystem) {
		w := ecs.NewWorld()
		cw := floorWorld()
		return w, spawnPlayer(t, w, cw, 0, 2), NewPlayerControllerSystem(cw)
	}

	w, p, controller := spawn(t)
	landing := 0
	for i := 1; i <= 120 && landing == 0; i++ {
		controller.Update(w)
		if p.body.Result().Grounded {
			landing = i
		}
	}
	if landing < 10 {
		t.Fatalf("landed on tick %d, want a longer fall", landing)
	}

	tests := []struct {
		name     string
		lead     int
		wantJump bool
	}{
		{"one_tick_early", 1, true},
		{"two_ticks_early", 2, true},
		{"outside_buffer", 8, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, p, controller := spawn(t)
			run(w, landing-tc.lead-1, controller)
			p.input.Jump = true
			controller.Update(w)
			p.input.Jump = false
			run(w, tc.lead, controller)

			if !p.body.Result().Grounded {
				t.Fatal("expected the landing tick")
			}
			want := 0.0
			if tc.wantJump {
				// The jump fires on touchdown and is cut short because jump is released.
				want = p.player.MinJumpVelocity
			}
			if !near(p.player.Velocity.Y, want, 1e-9) {
				t.Fatalf("vy = %v on landing, want %v", p.player.Velocity.Y, want)
			}
		})
	}
}

func TestJumpTimers(t *testing.T) {
	type tick struct{ grounded, pressed bool }
	ticks := func(n int, grounded, pressed bool) []tick {
		out := make([]tick, n)
		for i := range out {
			out[i] = tick{grounded, pressed}
		}
		return out
	}

	tests := []struct {
		name  string
		ticks []tick
		want  []int
	}{
		{"coyote_window", slices.Concat(ticks(3, true, false), ticks(2, false, false), ticks(1, false, true)), []int{5}},
		{"coyote_expired", slices.Concat(ticks(3, true, false), ticks(7, false, false), ticks(1, false, true)), nil},
		{"buffered_landing", slices.Concat(ticks(1, false, false), ticks(1, false, true), ticks(1, false, false), ticks(1, true, false)), []int{3}},
		{"buffer_expired", slices.Concat(ticks(1, false, true), ticks(7, false, false), ticks(1, true, false)), nil},
		{"cooldown_rejects", slices.Concat(ticks(1, true, true), ticks(4, true, false), ticks(1, true, true), ticks(10, true, false)), []int{0}},
		{"cooldown_elapsed", slices.Concat(ticks(1, true, true), ticks(14, true, false), ticks(1, true, true)), []int{0, 15}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			player := &component.Player{CoyoteTime: 0.1, JumpBuffer: 0.1, JumpCooldown: 0.2}
			var jumps []int
			for i, tk := range tc.ticks {
				updateJumpTimers(player, kinematic.MoveResult{Grounded: tk.grounded}, tk.pressed, common.FixedDelta)
				if player.CanJump() {
					player.OnJump()
					jumps = append(jumps, i)
				}
			}
			if !slices.Equal(jumps, tc.want) {
				t.Fatalf("jumped on ticks %v, want %v", jumps, tc.want)
			}
		})
	}
}

func TestPlayerSlideJump(t *testing.T) {
	tests := []struct {
		name     string
		gap      float64
		wantJump bool
	}{
		{"within_ground_probe", 0.03, true},
		{"beyond_ground_probe", 0.08, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			cw := floorWorld()
			rise := math.Sqrt(3) // 60 degrees
			cw.AddStaticPolygon([]cp.Vector{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10 * rise}}, collision.LayerSolid)

			// Put the bottom right corner of the inset box gap above the slope.
			x := 3.0
			y := (x+0.8-kinematic.SkinWidth)*rise + tc.gap - 2*kinematic.SkinWidth
			p := spawnPlayer(t, w, cw, x, y)
			p.body.Settings.MaxSlopeAngle = 45

			p.input.Jump = true
			NewPlayerControllerSystem(cw).Update(w)
			res := p.body.Result()
			if !res.Sliding {
				t.Fatal("expected to slide on a slope steeper than the max angle")
			}
			if res.Grounded != tc.wantJump {
				t.Fatalf("grounded = %v with a %v gap", res.Grounded, tc.gap)
			}
			if !tc.wantJump {
				if p.player.Velocity.Y > 0 {
					t.Fatalf("jumped while hovering: v = %v", p.player.Velocity)
				}
				return
			}
			want := res.SlideNormal.Mult(p.player.MaxJumpVelocity)
			if !near(p.player.Velocity.X, want.X, 1e-9) || !near(p.player.Velocity.Y, want.Y, 1e-9) {
				t.Fatalf("v = %v, want %v", p.player.Velocity, want)
			}
			if want.X >= 0 || want.Y <= 0 {
				t.Fatalf("slide jump %v should lean away from the slope", want)
			}
		})
	}
}
