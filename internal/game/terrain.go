package game

import (
	"math/rand"

	"tankarena/internal/config"
	"tankarena/internal/mathutil"
)

const obstacleCushion = 60

// GenerateTerrain populates gs.Trees and gs.Patches from the given terrain
// map. Called on startup and on resetGame / changeTerrainMap.
func GenerateTerrain(gs *GameState, arena config.ArenaConfig, terrain config.TerrainMap) {
	gs.Trees = nil
	gs.Patches = nil
	generateTrees(gs, arena, terrain.Trees)
	generatePatches(gs, arena, terrain.Patches)
}

func generateTrees(gs *GameState, arena config.ArenaConfig, tp config.TreeParams) {
	count := tp.MinTrees
	if tp.MaxTrees > tp.MinTrees {
		count += rand.Intn(tp.MaxTrees - tp.MinTrees + 1)
	}

	var centers []mathutil.Vector2
	if tp.Clustering > 0 && tp.ClusterGroups > 0 {
		centers = make([]mathutil.Vector2, tp.ClusterGroups)
		for i := range centers {
			centers[i] = randomInArena(arena)
		}
	}

	for i := 0; i < count; i++ {
		size := tp.TreeSize + (rand.Float64()-0.5)*tp.TreeSizeVariance

		var pos mathutil.Vector2
		if len(centers) > 0 {
			center := centers[rand.Intn(len(centers))]
			radius := 400 - (tp.Clustering/100)*350 // 400px at clustering=0 down to 50px at 100
			for {
				offset := mathutil.Vector2{X: (rand.Float64()*2 - 1) * radius, Y: (rand.Float64()*2 - 1) * radius}
				candidate := mathutil.AddVec(center, offset)
				if candidate.X >= 0 && candidate.X <= arena.Width && candidate.Y >= 0 && candidate.Y <= arena.Height {
					pos = candidate
					break
				}
			}
		} else {
			pos = positionAvoidingObstacles(gs, arena, obstacleCushion, 100)
		}

		leafRotation := rand.Float64() * 2 * 3.141592653589793
		gs.Trees = append(gs.Trees, NewTree(gs.NewTreeID(), pos, size, tp.TreeType, leafRotation))
	}
}

func generatePatches(gs *GameState, arena config.ArenaConfig, pp config.PatchParams) {
	for patchType, cfg := range pp.PatchTypes {
		if !cfg.Enabled {
			continue
		}
		for i := 0; i < cfg.Quantity; i++ {
			pos := randomInArena(arena)
			size := cfg.Size + (rand.Float64()-0.5)*cfg.SizeVariance
			rotation := rand.Float64() * 2 * 3.141592653589793
			gs.Patches = append(gs.Patches, NewPatch(gs.NewPatchID(), pos, size, patchType, rotation))
		}
	}
}

// positionAvoidingObstacles returns a random in-arena point at least
// cushion px from every existing tree, tank, and upgrade, falling back to
// an unconstrained point after maxAttempts tries.
func positionAvoidingObstacles(gs *GameState, arena config.ArenaConfig, cushion float64, maxAttempts int) mathutil.Vector2 {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := randomInArena(arena)
		if isClearOfObstacles(gs, candidate, cushion) {
			return candidate
		}
	}
	return randomInArena(arena)
}

func isClearOfObstacles(gs *GameState, p mathutil.Vector2, cushion float64) bool {
	for _, tree := range gs.Trees {
		if mathutil.DistanceTo(p, tree.Position) < cushion {
			return false
		}
	}
	for _, t := range gs.Tanks {
		if mathutil.DistanceTo(p, t.Position) < cushion {
			return false
		}
	}
	for _, u := range gs.Upgrades {
		if !u.Collected && mathutil.DistanceTo(p, u.Position) < cushion {
			return false
		}
	}
	return true
}

// RespawnUpgrades tops up every upgrade kind whose live count is below its
// configured target, spawning at positions at least 50px from every
// existing tree, tank, or upgrade (100-attempt fallback to ignore the
// constraint).
func RespawnUpgrades(gs *GameState, arena config.ArenaConfig, upgrades config.UpgradeConfig) {
	for _, kind := range config.AllUpgradeKinds {
		target := upgrades[kind]
		for gs.CountLiveUpgrades(kind) < target.Count {
			pos := positionAvoidingObstacles(gs, arena, 50, 100)
			gs.Upgrades = append(gs.Upgrades, NewUpgrade(gs.NewUpgradeID(), kind, pos))
		}
	}
}
