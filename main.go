package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/kinematic/common"
)

func main() {
	var cfg config
	flag.StringVar(&cfg.level, "level", "demo", "level name in levels/ (basename, .json optional)")
	flag.BoolVar(&cfg.watch, "watch", false, "reload prefabs and scripts when they change on disk")
	flag.BoolVar(&cfg.debug, "debug", false, "draw collision shapes and player state")
	flag.StringVar(&cfg.telemetry, "telemetry", "", "serve per-tick move results over websocket on this address, e.g. :8090")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("kinematic")
	ebiten.SetTPS(common.TicksPerSecond)

	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
