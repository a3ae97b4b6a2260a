// Package config is the single source of truth for game and server tuning:
// typed structs, a Default*() constructor per concern, and a *FromEnv()
// overlay for the handful of settings that make sense as deployment-time
// env vars. Most gameplay tuning is NOT env-driven — it is runtime-mutable
// via the `applySettings` wire event handled in internal/session.
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// ARENA & SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP/WS server settings.
type ServerConfig struct {
	Port     int
	TickRate int // simulation ticks per second
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:     8080,
		TickRate: 60,
	}
}

// ServerFromEnv overlays environment variable overrides onto the defaults.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()
	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if tr := getEnvInt("TICK_RATE", 0); tr > 0 {
		cfg.TickRate = tr
	}
	return cfg
}

// ArenaConfig holds the virtual playfield bounds.
type ArenaConfig struct {
	Width      float64
	Height     float64
	TankMargin float64 // tanks additionally clamped inside this margin
}

// DefaultArena returns the 1500x900 arena with a 10px tank margin.
func DefaultArena() ArenaConfig {
	return ArenaConfig{Width: 1500, Height: 900, TankMargin: 10}
}

// =============================================================================
// RESOURCE LIMITS (DoS protection)
// =============================================================================

// ResourceLimits bounds entity counts to keep the tick and broadcast
// pipelines O(n) under a hostile or buggy client.
type ResourceLimits struct {
	MaxPlayers  int
	MaxShells   int
	MaxUpgrades int
	MaxTrees    int
	MaxPatches  int
}

// DefaultLimits returns production-safe defaults.
func DefaultLimits() ResourceLimits {
	return ResourceLimits{
		MaxPlayers:  64,
		MaxShells:   256,
		MaxUpgrades: 64,
		MaxTrees:    400,
		MaxPatches:  400,
	}
}

// =============================================================================
// SPATIAL CONFIGURATION
// =============================================================================

// SpatialConfig tunes the spatial hash grid and flow-field navigation mesh.
type SpatialConfig struct {
	GridCellSize      float64 // default cell size: 50
	FlowFieldCellSize float64
}

// DefaultSpatial returns the default spatial configuration.
func DefaultSpatial() SpatialConfig {
	return SpatialConfig{GridCellSize: 50, FlowFieldCellSize: 50}
}

// =============================================================================
// ATTRIBUTE LIMITS
// =============================================================================

// Limit is an inclusive [Min, Max] range for one tank attribute.
type Limit struct {
	Min float64
	Max float64
}

// AttributeLimits holds the configured {min,max} per tank attribute
// (one entry per tank attribute).
type AttributeLimits struct {
	Health     Limit
	Speed      Limit
	Gasoline   Limit
	Rotation   Limit
	Ammunition Limit
	Kinetics   Limit
}

// DefaultAttributeLimits returns the default attribute ranges. Max values
// double as starting values: AI and player tanks start identical regardless
// of AI difficulty — difficulty only changes decision behavior, never stats.
func DefaultAttributeLimits() AttributeLimits {
	return AttributeLimits{
		Health:     Limit{Min: 0, Max: 100},
		Speed:      Limit{Min: 10, Max: 120},
		Gasoline:   Limit{Min: 0, Max: 100},
		Rotation:   Limit{Min: 0.5, Max: 4.0},
		Ammunition: Limit{Min: 0, Max: 20},
		Kinetics:   Limit{Min: 100, Max: 400},
	}
}

// =============================================================================
// GAME & DAMAGE PARAMETERS
// =============================================================================

// GameParams are the core timing/physics constants for shell flight,
// reload, and fuel drain.
type GameParams struct {
	RespawnTimeMs        float64
	ReloadTimeMs         float64
	ShellLifetimeMs      float64 // advisory only, for client-side fuse rendering; the server expires shells by arena exit or impact, not by timer
	GasolinePerUnit      float64
	GasolineSpeedPenalty float64
	FiringImmunityMs     float64
}

// DefaultGameParams returns the production-tuned defaults.
func DefaultGameParams() GameParams {
	return GameParams{
		RespawnTimeMs:        5000,
		ReloadTimeMs:         1000,
		ShellLifetimeMs:      3000,
		GasolinePerUnit:      0.02,
		GasolineSpeedPenalty: 0.4,
		FiringImmunityMs:     200,
	}
}

// DamageParams is the per-attribute decrement a shell hit applies.
// Treated purely as configuration since damage weighting is the kind of
// thing a balance pass changes often.
type DamageParams struct {
	Health   float64
	Speed    float64
	Rotation float64
	Kinetics float64
	Gasoline float64
}

// DefaultDamageParams returns the default damage vector.
func DefaultDamageParams() DamageParams {
	return DamageParams{
		Health:   1,
		Speed:    2,
		Rotation: 4,
		Kinetics: 15,
		Gasoline: 5,
	}
}

// =============================================================================
// UPGRADES
// =============================================================================

// UpgradeKind enumerates the six pickup types.
type UpgradeKind string

const (
	UpgradeSpeed      UpgradeKind = "SPEED"
	UpgradeGasoline   UpgradeKind = "GASOLINE"
	UpgradeRotation   UpgradeKind = "ROTATION"
	UpgradeAmmunition UpgradeKind = "AMMUNITION"
	UpgradeKinetics   UpgradeKind = "KINETICS"
	UpgradeHealth     UpgradeKind = "HEALTH"
)

// AllUpgradeKinds lists every upgrade type, in a stable order.
var AllUpgradeKinds = []UpgradeKind{
	UpgradeSpeed, UpgradeGasoline, UpgradeRotation,
	UpgradeAmmunition, UpgradeKinetics, UpgradeHealth,
}

// UpgradeTypeConfig is the per-type {value, count} pickup configuration.
type UpgradeTypeConfig struct {
	Value float64
	Count int
}

// UpgradeConfig maps each kind to its tuning.
type UpgradeConfig map[UpgradeKind]UpgradeTypeConfig

// DefaultUpgradeConfig returns target counts and values for every upgrade type.
func DefaultUpgradeConfig() UpgradeConfig {
	return UpgradeConfig{
		UpgradeSpeed:      {Value: 20, Count: 3},
		UpgradeGasoline:   {Value: 30, Count: 3},
		UpgradeRotation:   {Value: 0.5, Count: 3},
		UpgradeAmmunition: {Value: 10, Count: 3},
		UpgradeKinetics:   {Value: 40, Count: 3},
		UpgradeHealth:     {Value: 25, Count: 3},
	}
}

// =============================================================================
// TERRAIN: TREES & PATCHES
// =============================================================================

// TreeParams controls procedural tree placement and sway.
type TreeParams struct {
	MinTrees         int
	MaxTrees         int
	TreeSize         float64
	TreeSizeVariance float64
	ClusterGroups    int
	Clustering       float64 // 0..100
	TreeType         string
}

// DefaultTreeParams returns a moderately forested arena.
func DefaultTreeParams() TreeParams {
	return TreeParams{
		MinTrees:         30,
		MaxTrees:         60,
		TreeSize:         32,
		TreeSizeVariance: 8,
		ClusterGroups:    4,
		Clustering:       50,
		TreeType:         "pine",
	}
}

// PatchTypeConfig controls one decorative patch type.
type PatchTypeConfig struct {
	Enabled      bool
	Quantity     int
	Size         float64
	SizeVariance float64
	Opacity      float64
	Blend        string
}

// PatchParams is the full decorative-patch configuration, keyed by type name.
type PatchParams struct {
	PatchTypes map[string]PatchTypeConfig
}

// DefaultPatchParams returns grass/mud/gravel patch defaults.
func DefaultPatchParams() PatchParams {
	return PatchParams{
		PatchTypes: map[string]PatchTypeConfig{
			"grass":  {Enabled: true, Quantity: 20, Size: 80, SizeVariance: 20, Opacity: 0.6, Blend: "multiply"},
			"mud":    {Enabled: true, Quantity: 10, Size: 60, SizeVariance: 15, Opacity: 0.5, Blend: "multiply"},
			"gravel": {Enabled: false, Quantity: 8, Size: 50, SizeVariance: 10, Opacity: 0.4, Blend: "overlay"},
		},
	}
}

// TerrainMap bundles tree+patch configuration under a selectable name, for
// the `changeTerrainMap` event and the `/api/terrain-maps` HTTP surface.
type TerrainMap struct {
	Name    string
	Trees   TreeParams
	Patches PatchParams
}

// DefaultTerrainMaps returns the built-in selectable terrain presets.
func DefaultTerrainMaps() map[string]TerrainMap {
	forest := TerrainMap{Name: "forest", Trees: DefaultTreeParams(), Patches: DefaultPatchParams()}

	sparse := DefaultTreeParams()
	sparse.MinTrees, sparse.MaxTrees, sparse.Clustering = 10, 20, 10
	open := TerrainMap{Name: "open", Trees: sparse, Patches: DefaultPatchParams()}

	dense := DefaultTreeParams()
	dense.MinTrees, dense.MaxTrees, dense.Clustering, dense.ClusterGroups = 80, 120, 90, 6
	thicket := TerrainMap{Name: "thicket", Trees: dense, Patches: DefaultPatchParams()}

	return map[string]TerrainMap{
		forest.Name:  forest,
		open.Name:    open,
		thicket.Name: thicket,
	}
}

// =============================================================================
// TEAMS
// =============================================================================

// TeamDef is a fixed team's display identity.
type TeamDef struct {
	Name  string
	Color string
}

// Teams is the fixed roster clients and the AI spawner choose from.
var Teams = map[string]TeamDef{
	"NATO": {Name: "NATO", Color: "#3b82f6"},
	"CSTO": {Name: "CSTO", Color: "#ef4444"},
	"PLA":  {Name: "PLA", Color: "#eab308"},
}

// AITeam is the pseudo-team assigned to generated AI opponents.
var AITeam = TeamDef{Name: "AI", Color: "#6b7280"}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig is the complete, composed configuration for one running arena.
type AppConfig struct {
	Server          ServerConfig
	Arena           ArenaConfig
	Limits          ResourceLimits
	Spatial         SpatialConfig
	AttributeLimits AttributeLimits
	GameParams      GameParams
	DamageParams    DamageParams
	Upgrades        UpgradeConfig
	Terrain         TerrainMap
	TerrainMaps     map[string]TerrainMap
}

// Load returns the complete default configuration with environment overrides
// applied to the deployment-level settings only.
func Load() AppConfig {
	maps := DefaultTerrainMaps()
	return AppConfig{
		Server:          ServerFromEnv(),
		Arena:           DefaultArena(),
		Limits:          DefaultLimits(),
		Spatial:         DefaultSpatial(),
		AttributeLimits: DefaultAttributeLimits(),
		GameParams:      DefaultGameParams(),
		DamageParams:    DefaultDamageParams(),
		Upgrades:        DefaultUpgradeConfig(),
		Terrain:         maps["forest"],
		TerrainMaps:     maps,
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
