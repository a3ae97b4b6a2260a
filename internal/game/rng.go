package game

import (
	"math/rand"

	"tankarena/internal/config"
	"tankarena/internal/mathutil"
)

// randomArenaPosition returns a uniform random point inside the arena,
// respecting the tank margin so a fresh spawn never lands out of bounds.
func randomArenaPosition(arena config.ArenaConfig) mathutil.Vector2 {
	return mathutil.Vector2{
		X: arena.TankMargin + rand.Float64()*(arena.Width-2*arena.TankMargin),
		Y: arena.TankMargin + rand.Float64()*(arena.Height-2*arena.TankMargin),
	}
}

// randomInArena returns a uniform random point inside the full arena, with
// no tank margin (used for trees, patches, upgrades).
func randomInArena(arena config.ArenaConfig) mathutil.Vector2 {
	return mathutil.Vector2{
		X: rand.Float64() * arena.Width,
		Y: rand.Float64() * arena.Height,
	}
}
