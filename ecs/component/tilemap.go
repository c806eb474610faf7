package component

import "github.com/milk9111/kinematic/levels"

// Tilemap is the level grid drawn behind every actor.
type Tilemap struct {
	Level *levels.Level
}

var TilemapComponent = NewComponent[Tilemap]()
