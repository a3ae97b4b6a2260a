package game

import (
	"fmt"

	"tankarena/internal/config"
)

// GameState is the process-wide singleton owned by the engine's tick thread.
// No other component mutates it; readers (the broadcast builder) read
// immediately after mutation on the same goroutine, so no snapshot copy is
// required. Tanks and Players are two tables keyed by the same id rather
// than holding mutable pointers to each other.
type GameState struct {
	Players map[string]*Player
	Tanks   map[string]*Tank
	Shells  []*Shell
	Upgrades []*Upgrade
	Trees   []*Tree
	Patches []*Patch

	GameTimeMs float64

	Terrain config.TerrainMap

	nextShellID   uint64
	nextUpgradeID uint64
	nextTreeID    uint64
	nextPatchID   uint64
}

// NewGameState builds an empty arena with terrain generated from the given
// terrain map.
func NewGameState(cfg config.AppConfig) *GameState {
	gs := &GameState{
		Players: make(map[string]*Player),
		Tanks:   make(map[string]*Tank),
		Terrain: cfg.Terrain,
	}
	GenerateTerrain(gs, cfg.Arena, cfg.Terrain)
	return gs
}

// Reset clears all dynamic entities and regenerates terrain, keeping no
// players or tanks — used by the resetGame admin event. Callers that want
// players to survive a reset must re-add them afterward.
func (gs *GameState) Reset(cfg config.AppConfig) {
	gs.Players = make(map[string]*Player)
	gs.Tanks = make(map[string]*Tank)
	gs.Shells = nil
	gs.Upgrades = nil
	gs.Trees = nil
	gs.Patches = nil
	gs.GameTimeMs = 0
	gs.Terrain = cfg.Terrain
	GenerateTerrain(gs, cfg.Arena, cfg.Terrain)
}

// AddPlayer creates a player+tank pair, or returns the existing pair if id
// is already known (a reconnect). The second return value reports whether a
// new pair was created.
func (gs *GameState) AddPlayer(id, callname, color, camo string, team config.TeamDef, limits config.AttributeLimits, arena config.ArenaConfig) (*Player, *Tank, bool) {
	if p, ok := gs.Players[id]; ok {
		return p, gs.Tanks[id], false
	}
	p := NewPlayer(id, callname, color, camo, team)
	t := NewTank(id, false, randomArenaPosition(arena), limits)
	gs.Players[id] = p
	gs.Tanks[id] = t
	return p, t, true
}

// AddAI creates an AI player+tank pair with a generated callsign.
func (gs *GameState) AddAI(id, callsign, color, camo, level string, limits config.AttributeLimits, arena config.ArenaConfig) (*Player, *Tank) {
	p := NewAIPlayer(id, callsign, color, camo, level)
	t := NewTank(id, true, randomArenaPosition(arena), limits)
	gs.Players[id] = p
	gs.Tanks[id] = t
	return p, t
}

// RemovePlayer deletes both halves of the pair. It is a no-op (transient,
// silently dropped) if id is unknown.
func (gs *GameState) RemovePlayer(id string) {
	delete(gs.Players, id)
	delete(gs.Tanks, id)
}

// RemoveShell removes the shell at index i, preserving no particular order.
func (gs *GameState) RemoveShell(i int) {
	last := len(gs.Shells) - 1
	gs.Shells[i] = gs.Shells[last]
	gs.Shells = gs.Shells[:last]
}

// RemoveUpgrade removes the upgrade at index i.
func (gs *GameState) RemoveUpgrade(i int) {
	last := len(gs.Upgrades) - 1
	gs.Upgrades[i] = gs.Upgrades[last]
	gs.Upgrades = gs.Upgrades[:last]
}

// NewShellID returns a fresh, arena-scoped shell id.
func (gs *GameState) NewShellID() string {
	gs.nextShellID++
	return fmt.Sprintf("shell-%d", gs.nextShellID)
}

// NewUpgradeID returns a fresh, arena-scoped upgrade id.
func (gs *GameState) NewUpgradeID() string {
	gs.nextUpgradeID++
	return fmt.Sprintf("upgrade-%d", gs.nextUpgradeID)
}

// NewTreeID returns a fresh, arena-scoped tree id.
func (gs *GameState) NewTreeID() string {
	gs.nextTreeID++
	return fmt.Sprintf("tree-%d", gs.nextTreeID)
}

// NewPatchID returns a fresh, arena-scoped patch id.
func (gs *GameState) NewPatchID() string {
	gs.nextPatchID++
	return fmt.Sprintf("patch-%d", gs.nextPatchID)
}

// CountLiveUpgrades returns the number of uncollected upgrades of kind.
func (gs *GameState) CountLiveUpgrades(kind config.UpgradeKind) int {
	n := 0
	for _, u := range gs.Upgrades {
		if u.Kind == kind && !u.Collected {
			n++
		}
	}
	return n
}
