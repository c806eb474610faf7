package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/kinematic/collision"
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
	"github.com/milk9111/kinematic/ecs/entity"
	"github.com/milk9111/kinematic/ecs/system"
	"github.com/milk9111/kinematic/input"
	"github.com/milk9111/kinematic/levels"
	"github.com/milk9111/kinematic/prefabs"
	"github.com/milk9111/kinematic/telemetry"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type config struct {
	level     string
	watch     bool
	debug     bool
	telemetry string
}

type Game struct {
	debug bool

	world     *ecs.World
	collision *collision.World
	scheduler *ecs.Scheduler
	inputs    *system.InputSystem
	telemetry *system.TelemetrySystem
	render    *system.RenderSystem
	menu      *pauseMenu

	prefabs entity.Prefabs
	level   *levels.Level
	player  ecs.Entity

	watcher *prefabs.Watcher
	cancel  context.CancelFunc

	// Set from inside systems and menus, acted on once the tick is over.
	levelDone bool
	restart   bool
	quit      bool
}

func NewGame(cfg config) (*Game, error) {
	bindings, err := prefabs.LoadBindings()
	if err != nil {
		log.Printf("game: using default bindings: %v", err)
	}
	actions, err := input.NewActions(bindings)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	specs, err := entity.LoadPrefabs()
	if err != nil {
		log.Printf("game: using default prefabs: %v", err)
	}

	g := &Game{
		debug:     cfg.debug,
		world:     ecs.NewWorld(),
		collision: collision.NewWorld(),
		render:    system.NewRenderSystem(),
		prefabs:   specs,
		cancel:    func() {},
	}
	g.scheduler = ecs.NewScheduler(
		system.NewPlatformSystem(),
		system.NewPlayerControllerSystem(g.collision),
		system.NewBoxSystem(),
		system.NewTransformSyncSystem(),
		system.NewTriggerSystem(func() { g.levelDone = true }),
	)
	g.inputs = system.NewInputSystem(actions, input.NewEbitenSource())
	g.scheduler.Add(ecs.StageInput, g.inputs)
	g.scheduler.Add(ecs.StageInput, system.NewPauseSystem(g.scheduler, specs.Player.PauseCooldown))
	g.scheduler.Add(ecs.StagePresentation, system.NewCameraSystem())
	g.menu = newPauseMenu(g)

	if cfg.telemetry != "" {
		ctx, cancel := context.WithCancel(context.Background())
		g.cancel = cancel
		hub := telemetry.NewHub()
		go hub.Run(ctx)
		go func() {
			if err := telemetry.ListenAndServe(ctx, cfg.telemetry, hub); err != nil {
				log.Printf("game: telemetry: %v", err)
			}
		}()
		g.telemetry = system.NewTelemetrySystem(hub, "")
		g.telemetry.Watch(g.scheduler)
		g.scheduler.Add(ecs.StagePresentation, g.telemetry)
		log.Printf("game: telemetry on ws://%s/ws", cfg.telemetry)
	}

	if cfg.watch {
		w, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"))
		if err != nil {
			log.Printf("game: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	if err := g.loadLevel(cfg.level); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

func (g *Game) loadLevel(name string) error {
	lvl, err := levels.Load(name)
	if err != nil {
		return err
	}
	ecs.Clear(g.world)
	g.collision.Clear()
	player, err := entity.LoadLevelToWorld(g.world, g.collision, lvl, g.prefabs)
	if err != nil {
		return err
	}
	g.level = lvl
	g.player = player
	g.scheduler.SetPaused(false)
	if g.telemetry != nil {
		g.telemetry.SetLevel(lvl.Name)
	}
	log.Printf("game: loaded level %s", lvl.Name)
	return nil
}

func (g *Game) Update() error {
	g.applyChanges()

	g.scheduler.Update(g.world)
	if g.scheduler.Paused() {
		if in, ok := ecs.Get(g.world, g.player, component.InputComponent.Kind()); ok {
			g.menu.Update(in)
		}
	}

	for _, evt := range g.world.Events().Drain() {
		switch evt.Kind {
		case ecs.EventPaused:
			g.menu.Open()
		case ecs.EventTeleported:
			log.Printf("game: teleported to %v", evt.Data)
		}
	}

	switch {
	case g.quit:
		return ebiten.Termination
	case g.levelDone:
		g.levelDone = false
		next := g.level.Next
		if next == "" {
			next = g.level.Name
		}
		if err := g.loadLevel(next); err != nil {
			return fmt.Errorf("game: level %s: %w", next, err)
		}
	case g.restart:
		g.restart = false
		if err := g.loadLevel(g.level.Name); err != nil {
			return fmt.Errorf("game: restart: %w", err)
		}
	}
	return nil
}

// applyChanges reloads whatever prefab files changed on disk since the last tick.
func (g *Game) applyChanges() {
	if g.watcher == nil {
		return
	}
	reload := false
	for _, change := range g.watcher.Pending() {
		if change.Kind == prefabs.ScriptChanged {
			reload = true
			continue
		}
		var err error
		switch change.Name() {
		case "player.yaml":
			if g.prefabs.Player, err = prefabs.LoadPlayerSpec(); err == nil {
				err = entity.ApplyPlayerSpec(g.world, g.player, g.prefabs.Player)
			}
		case "box.yaml":
			if g.prefabs.Box, err = prefabs.LoadBoxSpec(); err == nil {
				err = entity.ApplyBoxSpec(g.world, g.prefabs.Box)
			}
		case "platform.yaml":
			g.prefabs.Platform, err = prefabs.LoadPlatformSpec()
			reload = err == nil
		case "input.yaml":
			var actions *input.Actions
			if actions, err = loadActions(); err == nil {
				g.inputs.SetActions(actions)
			}
		default:
			continue
		}
		if err != nil {
			log.Printf("game: reload %s: %v", change.Name(), err)
			continue
		}
		log.Printf("game: reloaded %s", change.Name())
	}
	if reload {
		g.restart = true
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("game: watcher: %v", err)
		}
	default:
	}
}

func loadActions() (*input.Actions, error) {
	bindings, err := prefabs.LoadBindings()
	if err != nil {
		return nil, err
	}
	return input.NewActions(bindings)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	if g.debug {
		system.DrawPhysicsDebug(g.collision, g.world, screen)
		system.DrawPlayerStateDebug(g.world, screen)
	}
	if g.scheduler.Paused() {
		g.menu.Draw(screen)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s    TPS: %.1f    FPS: %.1f", g.level.Name, ebiten.ActualTPS(), ebiten.ActualFPS()), 4, baseHeight-18)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close stops the telemetry server and the prefab watcher.
func (g *Game) Close() {
	g.cancel()
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("game: close watcher: %v", err)
		}
	}
}
