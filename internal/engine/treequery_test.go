package engine

import (
	"testing"

	"tankarena/internal/config"
	"tankarena/internal/game"
	"tankarena/internal/mathutil"
)

func TestQueryNearbyTreesFindsWithinRadius(t *testing.T) {
	cfg := config.Load()
	gs := game.NewGameState(cfg)
	gs.Trees = []*game.Tree{
		game.NewTree("near", mathutil.Vector2{X: 110, Y: 100}, 50, "pine", 0),
		game.NewTree("far", mathutil.Vector2{X: 900, Y: 900}, 50, "pine", 0),
	}

	grid, trees := buildTreeQueryIndex(gs, cfg)
	nearby := queryNearbyTrees(grid, trees, mathutil.Vector2{X: 100, Y: 100}, 50)

	found := false
	for _, tr := range nearby {
		if tr.ID == "near" {
			found = true
		}
		if tr.ID == "far" {
			t.Error("far tree should not be in the candidate list")
		}
	}
	if !found {
		t.Error("expected the near tree in the candidate list")
	}
}

func TestQueryNearbyTreesEmptyWhenNoTrees(t *testing.T) {
	cfg := config.Load()
	gs := game.NewGameState(cfg)
	gs.Trees = nil

	grid, trees := buildTreeQueryIndex(gs, cfg)
	nearby := queryNearbyTrees(grid, trees, mathutil.Vector2{X: 100, Y: 100}, 50)
	if len(nearby) != 0 {
		t.Errorf("len(nearby) = %d, want 0 with no trees in the arena", len(nearby))
	}
}
