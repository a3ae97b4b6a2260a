package engine

import (
	"tankarena/internal/config"
	"tankarena/internal/game"
	"tankarena/internal/game/spatial"
	"tankarena/internal/mathutil"
)

// buildTreeQueryIndex rebuilds a spatial grid over every tree for the
// per-tank nearby-tree query tank physics needs for continuous collision.
func buildTreeQueryIndex(gs *game.GameState, cfg config.AppConfig) (*spatial.SpatialGrid, []*game.Tree) {
	grid := spatial.NewSpatialGrid(cfg.Arena.Width, cfg.Arena.Height, cfg.Spatial.GridCellSize, len(gs.Trees)+1)
	for i, t := range gs.Trees {
		grid.Insert(uint32(i), t.Position.X, t.Position.Y)
	}
	return grid, gs.Trees
}

// queryNearbyTrees returns the trees whose index the grid reports within
// radius of pos — a broad-phase candidate list; narrow-phase circle testing
// happens inside Tank.Update itself.
func queryNearbyTrees(grid *spatial.SpatialGrid, trees []*game.Tree, pos mathutil.Vector2, radius float64) []*game.Tree {
	indices := grid.QueryRadius(pos.X, pos.Y, radius)
	if len(indices) == 0 {
		return nil
	}
	out := make([]*game.Tree, 0, len(indices))
	for _, idx := range indices {
		out = append(out, trees[idx])
	}
	return out
}
