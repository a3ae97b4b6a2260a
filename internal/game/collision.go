package game

import (
	"math"

	"tankarena/internal/config"
	"tankarena/internal/game/spatial"
	"tankarena/internal/mathutil"
)

const (
	shellTankSearchRadius  = 25
	shellTreeSearchRadius  = 15
	tunnelingSpeedThresh   = 10
	tunnelingDistThresh    = 20
	upgradeCollectCushion  = 5
)

// DamageEvent is emitted for every successful hit, consumed by the session
// layer to build `damageFeedback` outbound events.
type DamageEvent struct {
	TargetID  string
	ShooterID string
	Applied   config.DamageParams
	Killed    bool
}

// CollisionPass runs the full per-tick sequence: shell→tank, shell→tree,
// tank↔upgrade. It mutates gs in place and returns the damage events
// produced, in the order they occurred.
func CollisionPass(gs *GameState, cfg config.AppConfig) []DamageEvent {
	tankGrid, tankIDs := buildTankGrid(gs, cfg.Arena, cfg.Spatial.GridCellSize)
	treeGrid, treeIDs := buildTreeGrid(gs, cfg.Arena, cfg.Spatial.GridCellSize)

	events := resolveShellsVsTanks(gs, cfg, tankGrid, tankIDs)
	resolveShellsVsTrees(gs, cfg, treeGrid, treeIDs)
	resolveTankVsUpgrades(gs, cfg)

	return events
}

func buildTankGrid(gs *GameState, arena config.ArenaConfig, cellSize float64) (*spatial.SpatialGrid, []*Tank) {
	ids := make([]*Tank, 0, len(gs.Tanks))
	for _, t := range gs.Tanks {
		if t.Alive {
			ids = append(ids, t)
		}
	}
	grid := spatial.NewSpatialGrid(arena.Width, arena.Height, cellSize, len(ids)+1)
	for i, t := range ids {
		grid.Insert(uint32(i), t.Position.X, t.Position.Y)
	}
	return grid, ids
}

func buildTreeGrid(gs *GameState, arena config.ArenaConfig, cellSize float64) (*spatial.SpatialGrid, []*Tree) {
	grid := spatial.NewSpatialGrid(arena.Width, arena.Height, cellSize, len(gs.Trees)+1)
	for i, t := range gs.Trees {
		c := t.Bounds().Center()
		grid.Insert(uint32(i), c.X, c.Y)
	}
	return grid, gs.Trees
}

// resolveShellsVsTanks iterates shells in reverse to allow safe removal.
func resolveShellsVsTanks(gs *GameState, cfg config.AppConfig, grid *spatial.SpatialGrid, tanks []*Tank) []DamageEvent {
	var events []DamageEvent

	// The grid is the primary broad phase; sweep-and-prune supplies a second,
	// independently-computed candidate set on the X axis. Intersecting the
	// two before the narrow AABB/anti-tunneling test means a cell-boundary
	// false positive from the grid alone (a shell whose query radius clips
	// a neighboring cell without actually being near anything in it) still
	// needs SAP's tighter X-axis overlap to survive into the narrow test.
	sap := buildShellTankSAP(gs.Shells, tanks)
	sapCandidates := sapTankCandidatesByShell(sap, len(gs.Shells))

	for i := len(gs.Shells) - 1; i >= 0; i-- {
		shell := gs.Shells[i]
		hit := false

		inSAP := make(map[uint32]bool, len(sapCandidates[i]))
		for _, idx := range sapCandidates[i] {
			inSAP[idx] = true
		}

		seen := make(map[uint32]bool)
		for _, idx := range grid.QueryRadius(shell.Position.X, shell.Position.Y, shellTankSearchRadius) {
			if inSAP[idx] {
				seen[idx] = true
			}
		}

		for idx := range seen {
			tank := tanks[idx]
			if !tank.Alive {
				continue
			}

			overlap := shell.Bounds.Overlaps(tank.Bounds)
			if !overlap && shell.IsFast() {
				if mathutil.DistanceTo(shell.Position, tank.Position) <= tunnelingDistThresh {
					overlap = true
				}
			}
			if !overlap {
				continue
			}

			before := tank.Attributes.Health
			applied := tank.TakeDamage(gs.GameTimeMs, shell.ShooterID, shell.ShooterImmunityUntil, cfg.DamageParams, cfg.AttributeLimits, cfg.GameParams.RespawnTimeMs)
			if applied {
				events = append(events, DamageEvent{
					TargetID:  tank.ID,
					ShooterID: shell.ShooterID,
					Applied:   cfg.DamageParams,
					Killed:    before > 0 && tank.Attributes.Health <= 0,
				})
				gs.RemoveShell(i)
				hit = true
				break
			}
		}
		_ = hit
	}
	return events
}

func buildShellTankSAP(shells []*Shell, tanks []*Tank) []spatial.CollisionPair {
	n := len(shells) + len(tanks)
	if n == 0 {
		return nil
	}
	positions := make([][2]float32, 0, n)
	for _, s := range shells {
		positions = append(positions, [2]float32{float32(s.Position.X), float32(s.Position.Y)})
	}
	for _, t := range tanks {
		positions = append(positions, [2]float32{float32(t.Position.X), float32(t.Position.Y)})
	}
	sap := spatial.NewSweepAndPrune(n)
	return sap.UpdateFromSlice(positions, float32(shellTankSearchRadius))
}

// sapTankCandidatesByShell re-indexes SAP's combined-array pairs back into
// per-shell tank-index candidate lists.
func sapTankCandidatesByShell(pairs []spatial.CollisionPair, nShells int) map[int][]uint32 {
	out := make(map[int][]uint32, nShells)
	for _, pair := range pairs {
		a, b := int(pair.A), int(pair.B)
		shellIdx, tankIdx := -1, -1
		if a < nShells && b >= nShells {
			shellIdx, tankIdx = a, b-nShells
		} else if b < nShells && a >= nShells {
			shellIdx, tankIdx = b, a-nShells
		}
		if shellIdx >= 0 {
			out[shellIdx] = append(out[shellIdx], uint32(tankIdx))
		}
	}
	return out
}

// resolveShellsVsTrees only considers shells that survived the tank pass.
func resolveShellsVsTrees(gs *GameState, cfg config.AppConfig, grid *spatial.SpatialGrid, trees []*Tree) {
	for i := len(gs.Shells) - 1; i >= 0; i-- {
		shell := gs.Shells[i]
		for _, idx := range grid.QueryRadius(shell.Position.X, shell.Position.Y, shellTreeSearchRadius) {
			tree := trees[idx]
			if !shell.Bounds.Overlaps(tree.Bounds()) {
				continue
			}
			dir := mathutil.SubVec(shell.Position, tree.Position).Normalized()
			force := shell.Velocity.Magnitude() / 20
			tree.Impact(dir, force)
			gs.RemoveShell(i)
			break
		}
	}
}

// resolveTankVsUpgrades runs after shells per the ordering guarantee.
func resolveTankVsUpgrades(gs *GameState, cfg config.AppConfig) {
	for _, tank := range gs.Tanks {
		if !tank.Alive {
			continue
		}
		for i := len(gs.Upgrades) - 1; i >= 0; i-- {
			up := gs.Upgrades[i]
			if up.Collected {
				continue
			}
			if !tank.Bounds.Overlaps(up.Bounds) {
				continue
			}
			threshold := math.Max(tank.CollisionWidth, tank.CollisionHeight)/2 + upgradeRadius + upgradeCollectCushion
			if mathutil.DistanceTo(tank.Position, up.Position) > threshold {
				continue
			}

			typeCfg := cfg.Upgrades[up.Kind]
			tank.Attributes.ApplyDelta(up.Kind, typeCfg.Value, cfg.AttributeLimits)
			up.Collected = true
			gs.RemoveUpgrade(i)
		}
	}
}
