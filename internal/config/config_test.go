package config

import (
	"os"
	"testing"
)

func TestLoadDefaultsToForestTerrain(t *testing.T) {
	cfg := Load()
	if cfg.Terrain.Name != "forest" {
		t.Errorf("Load().Terrain.Name = %q, want %q", cfg.Terrain.Name, "forest")
	}
	if _, ok := cfg.TerrainMaps["forest"]; !ok {
		t.Error("expected TerrainMaps to contain forest")
	}
	if _, ok := cfg.TerrainMaps["open"]; !ok {
		t.Error("expected TerrainMaps to contain open")
	}
	if _, ok := cfg.TerrainMaps["thicket"]; !ok {
		t.Error("expected TerrainMaps to contain thicket")
	}
}

func TestServerFromEnvOverridesPort(t *testing.T) {
	old := os.Getenv("PORT")
	defer os.Setenv("PORT", old)

	os.Setenv("PORT", "9999")
	cfg := ServerFromEnv()
	if cfg.Port != 9999 {
		t.Errorf("ServerFromEnv().Port = %d, want 9999", cfg.Port)
	}
}

func TestServerFromEnvIgnoresInvalidValue(t *testing.T) {
	old := os.Getenv("TICK_RATE")
	defer os.Setenv("TICK_RATE", old)

	os.Setenv("TICK_RATE", "not-a-number")
	cfg := ServerFromEnv()
	if cfg.TickRate != DefaultServer().TickRate {
		t.Errorf("ServerFromEnv().TickRate = %d, want default %d", cfg.TickRate, DefaultServer().TickRate)
	}
}

func TestServerFromEnvFallsBackWhenUnset(t *testing.T) {
	old := os.Getenv("PORT")
	defer os.Setenv("PORT", old)
	os.Unsetenv("PORT")

	cfg := ServerFromEnv()
	if cfg.Port != DefaultServer().Port {
		t.Errorf("ServerFromEnv().Port = %d, want default %d", cfg.Port, DefaultServer().Port)
	}
}

func TestDefaultAttributeLimitsAllHaveNonNegativeRange(t *testing.T) {
	limits := DefaultAttributeLimits()
	for name, l := range map[string]Limit{
		"Health": limits.Health, "Speed": limits.Speed, "Gasoline": limits.Gasoline,
		"Rotation": limits.Rotation, "Ammunition": limits.Ammunition, "Kinetics": limits.Kinetics,
	} {
		if l.Min > l.Max {
			t.Errorf("%s limit has Min(%v) > Max(%v)", name, l.Min, l.Max)
		}
	}
}

func TestDefaultUpgradeConfigCoversEveryKind(t *testing.T) {
	cfg := DefaultUpgradeConfig()
	for _, kind := range AllUpgradeKinds {
		if _, ok := cfg[kind]; !ok {
			t.Errorf("DefaultUpgradeConfig missing entry for %s", kind)
		}
	}
}

func TestTeamsAreFixedAndDistinctFromAITeam(t *testing.T) {
	if len(Teams) != 3 {
		t.Errorf("Teams has %d entries, want 3", len(Teams))
	}
	for key, def := range Teams {
		if def.Name == AITeam.Name {
			t.Errorf("team %q collides with AITeam name %q", key, AITeam.Name)
		}
	}
}

func TestDefaultTerrainMapsVaryDensity(t *testing.T) {
	maps := DefaultTerrainMaps()
	if maps["open"].Trees.MaxTrees >= maps["thicket"].Trees.MaxTrees {
		t.Errorf("expected open (%d) to have fewer max trees than thicket (%d)",
			maps["open"].Trees.MaxTrees, maps["thicket"].Trees.MaxTrees)
	}
}
