package game

import (
	"testing"

	"tankarena/internal/config"
)

func TestGenerateTerrainPopulatesWithinBounds(t *testing.T) {
	cfg := config.Load()
	gs := &GameState{Tanks: make(map[string]*Tank), Players: make(map[string]*Player)}
	terrain := config.DefaultTerrainMaps()["forest"]
	GenerateTerrain(gs, cfg.Arena, terrain)

	if len(gs.Trees) < terrain.Trees.MinTrees || len(gs.Trees) > terrain.Trees.MaxTrees {
		t.Errorf("len(Trees) = %d, want within [%d, %d]", len(gs.Trees), terrain.Trees.MinTrees, terrain.Trees.MaxTrees)
	}
	for _, tree := range gs.Trees {
		if tree.Position.X < 0 || tree.Position.X > cfg.Arena.Width {
			t.Errorf("tree X = %v out of arena bounds", tree.Position.X)
		}
	}
}

func TestGenerateTerrainResetsPreviousEntities(t *testing.T) {
	cfg := config.Load()
	gs := &GameState{Tanks: make(map[string]*Tank), Players: make(map[string]*Player)}
	terrain := config.DefaultTerrainMaps()["forest"]
	GenerateTerrain(gs, cfg.Arena, terrain)
	first := gs.Trees

	GenerateTerrain(gs, cfg.Arena, terrain)
	if len(gs.Trees) == 0 {
		t.Fatal("expected regenerated terrain to still have trees")
	}
	for _, old := range first {
		for _, tree := range gs.Trees {
			if tree == old {
				t.Fatal("a tree from the previous generation survived regeneration")
			}
		}
	}
}

func TestRespawnUpgradesToppsUpToTarget(t *testing.T) {
	cfg := config.Load()
	gs := NewGameState(cfg)
	RespawnUpgrades(gs, cfg.Arena, cfg.Upgrades)

	for _, kind := range config.AllUpgradeKinds {
		target := cfg.Upgrades[kind].Count
		if got := gs.CountLiveUpgrades(kind); got != target {
			t.Errorf("CountLiveUpgrades(%s) = %d, want %d", kind, got, target)
		}
	}
}

func TestRespawnUpgradesIsIdempotentWhenAlreadyFull(t *testing.T) {
	cfg := config.Load()
	gs := NewGameState(cfg)
	RespawnUpgrades(gs, cfg.Arena, cfg.Upgrades)
	countAfterFirst := len(gs.Upgrades)

	RespawnUpgrades(gs, cfg.Arena, cfg.Upgrades)
	if len(gs.Upgrades) != countAfterFirst {
		t.Errorf("len(Upgrades) = %d after second call, want unchanged %d", len(gs.Upgrades), countAfterFirst)
	}
}
