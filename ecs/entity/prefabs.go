package entity

import (
	"errors"

	"github.com/milk9111/kinematic/prefabs"
)

// Prefabs is the actor tuning a level is built with.
type Prefabs struct {
	Player   prefabs.PlayerSpec
	Box      prefabs.BoxSpec
	Platform prefabs.PlatformSpec
}

func DefaultPrefabs() Prefabs {
	return Prefabs{
		Player:   prefabs.DefaultPlayerSpec(),
		Box:      prefabs.DefaultBoxSpec(),
		Platform: prefabs.DefaultPlatformSpec(),
	}
}

// LoadPrefabs reads every actor spec. Specs that fail to load keep their defaults
// and the errors are joined.
func LoadPrefabs() (Prefabs, error) {
	var p Prefabs
	var errPlayer, errBox, errPlatform error
	p.Player, errPlayer = prefabs.LoadPlayerSpec()
	p.Box, errBox = prefabs.LoadBoxSpec()
	p.Platform, errPlatform = prefabs.LoadPlatformSpec()
	return p, errors.Join(errPlayer, errBox, errPlatform)
}
