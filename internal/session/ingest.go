package session

import (
	"encoding/json"
	"log"

	"tankarena/internal/config"
	"tankarena/internal/game"
	"tankarena/internal/game/ai"
)

// dispatch routes one decoded inbound event to its handler. Unknown events
// and malformed payloads are transient errors: logged at debug and dropped,
// per the error-handling design (no reply, no state change).
func (h *Hub) dispatch(c *Client, event string, data json.RawMessage) {
	switch event {
	case "join":
		h.handleJoin(c, data)
	case "playerInput":
		h.handlePlayerInput(c, data)
	case "toggleAI":
		h.handleToggleAI(c, data)
	case "applyAISettings":
		h.handleApplyAISettings(c, data)
	case "resetGame":
		h.handleResetGame(c)
	case "changeTerrainMap":
		h.handleChangeTerrainMap(c, data)
	case "updateSettings", "applySettings":
		h.handleApplySettings(c, data)
	case "setPlayerAttributes":
		h.handleSetPlayerAttributes(c, data)
	case "setPlayerAttributeLimit":
		h.handleSetPlayerAttributeLimit(c, data)
	case "requestGameState":
		h.handleRequestGameState(c)
	case "requestPlayerState":
		h.handleRequestPlayerState(c)
	default:
		log.Printf("session: unknown event %q from %s", event, c.ID)
	}
}

type joinPayload struct {
	Callname  string `json:"callname"`
	TankColor string `json:"tankColor"`
	TankCamo  string `json:"tankCamo"`
	TeamName  string `json:"teamName"`
}

func (h *Hub) handleJoin(c *Client, data json.RawMessage) {
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("session: bad join payload from %s: %v", c.ID, err)
		return
	}
	team, ok := config.Teams[p.TeamName]
	if !ok {
		c.Emit("settingsApplied", map[string]interface{}{"success": false, "error": "unknown team: " + p.TeamName})
		return
	}

	h.engine.Enqueue(func(gs *game.GameState, aiMgr *ai.Manager, cfg *config.AppConfig) {
		_, _, created := gs.AddPlayer(c.ID, p.Callname, p.TankColor, p.TankCamo, team, cfg.AttributeLimits, cfg.Arena)
		msg := buildFullMessage(gs)
		if created {
			c.Emit("joined", msg)
			h.BroadcastExcept(c.ID, "gameState", msg)
		} else {
			c.Emit("reconnected", msg)
		}
	})
}

type playerInputPayload struct {
	Movement struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"movement"`
	Shoot bool `json:"shoot"`
}

func (h *Hub) handlePlayerInput(c *Client, data json.RawMessage) {
	var p playerInputPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("session: bad playerInput payload from %s: %v", c.ID, err)
		return
	}
	h.engine.Enqueue(func(gs *game.GameState, aiMgr *ai.Manager, cfg *config.AppConfig) {
		tank, ok := gs.Tanks[c.ID]
		if !ok {
			return
		}
		tank.TargetVelocity.X = p.Movement.X * tank.Attributes.Speed
		tank.TargetVelocity.Y = p.Movement.Y * tank.Attributes.Speed
		if p.Shoot && len(gs.Shells) < cfg.Limits.MaxShells {
			if shell, fired := tank.Fire(gs.GameTimeMs, cfg.GameParams, gs.NewShellID()); fired {
				gs.Shells = append(gs.Shells, shell)
			}
		}
	})
}

type toggleAIPayload struct {
	Enabled bool `json:"enabled"`
}

func (h *Hub) handleToggleAI(c *Client, data json.RawMessage) {
	var p toggleAIPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("session: bad toggleAI payload from %s: %v", c.ID, err)
		return
	}
	h.engine.Enqueue(func(gs *game.GameState, aiMgr *ai.Manager, cfg *config.AppConfig) {
		if p.Enabled {
			id := aiMgr.Add(gs, ai.Intermediate, cfg.AttributeLimits, cfg.Arena)
			h.Broadcast("aiAdded", map[string]string{"id": id})
			return
		}
		ids := aiMgr.IDs()
		if len(ids) == 0 {
			return
		}
		aiMgr.Remove(gs, ids[0])
		h.Broadcast("aiRemoved", map[string]string{"id": ids[0]})
	})
}

type applyAISettingsPayload struct {
	AICount int    `json:"aiCount"`
	AILevel string `json:"aiLevel"`
}

func (h *Hub) handleApplyAISettings(c *Client, data json.RawMessage) {
	var p applyAISettingsPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("session: bad applyAISettings payload from %s: %v", c.ID, err)
		return
	}
	level := ai.Level(p.AILevel)
	if _, ok := ai.Profiles[level]; !ok {
		level = ai.Intermediate
	}
	if p.AICount < 0 {
		p.AICount = 0
	}
	h.engine.Enqueue(func(gs *game.GameState, aiMgr *ai.Manager, cfg *config.AppConfig) {
		aiMgr.RemoveAll(gs)
		for i := 0; i < p.AICount; i++ {
			aiMgr.Add(gs, level, cfg.AttributeLimits, cfg.Arena)
		}
		h.Broadcast("balanceSettings", map[string]interface{}{"aiCount": p.AICount, "aiLevel": string(level)})
	})
}

func (h *Hub) handleResetGame(c *Client) {
	h.engine.Enqueue(func(gs *game.GameState, aiMgr *ai.Manager, cfg *config.AppConfig) {
		gs.Reset(*cfg)
		aiMgr.RemoveAll(gs)
		h.Broadcast("gameReset", game.BuildFullState(gs))
	})
}

type changeTerrainMapPayload struct {
	MapName string `json:"mapName"`
}

func (h *Hub) handleChangeTerrainMap(c *Client, data json.RawMessage) {
	var p changeTerrainMapPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("session: bad changeTerrainMap payload from %s: %v", c.ID, err)
		return
	}
	h.engine.Enqueue(func(gs *game.GameState, aiMgr *ai.Manager, cfg *config.AppConfig) {
		terrain, ok := cfg.TerrainMaps[p.MapName]
		if !ok {
			c.Emit("settingsApplied", map[string]interface{}{"success": false, "error": "unknown terrain map: " + p.MapName})
			return
		}
		cfg.Terrain = terrain
		gs.Terrain = terrain
		gs.Trees = nil
		gs.Patches = nil
		game.GenerateTerrain(gs, cfg.Arena, terrain)
		h.Broadcast("terrainMapChanged", map[string]interface{}{
			"mapName": p.MapName,
			"trees":   buildTreeViews(gs),
			"patches": buildPatchViews(gs),
		})
	})
}

// settingsPayload is a partial overlay: every field is a pointer so a
// missing key in the JSON payload leaves the corresponding config untouched.
type settingsPayload struct {
	GameParams      *config.GameParams      `json:"gameParams"`
	DamageParams    *config.DamageParams    `json:"damageParams"`
	UpgradeTypes    *config.UpgradeConfig   `json:"upgradeTypes"`
	TreeParams      *config.TreeParams      `json:"treeParams"`
	PatchParams     *config.PatchParams     `json:"patchParams"`
	AttributeLimits *config.AttributeLimits `json:"attributeLimits"`
}

func (h *Hub) handleApplySettings(c *Client, data json.RawMessage) {
	var p settingsPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("session: bad settings payload from %s: %v", c.ID, err)
		c.Emit("settingsApplied", map[string]interface{}{"success": false, "error": "malformed settings"})
		return
	}
	h.engine.Enqueue(func(gs *game.GameState, aiMgr *ai.Manager, cfg *config.AppConfig) {
		if p.GameParams != nil {
			cfg.GameParams = *p.GameParams
		}
		if p.DamageParams != nil {
			cfg.DamageParams = *p.DamageParams
		}
		if p.UpgradeTypes != nil {
			cfg.Upgrades = *p.UpgradeTypes
		}
		if p.TreeParams != nil {
			cfg.Terrain.Trees = *p.TreeParams
		}
		if p.PatchParams != nil {
			cfg.Terrain.Patches = *p.PatchParams
		}
		if p.AttributeLimits != nil {
			cfg.AttributeLimits = *p.AttributeLimits
			for _, tank := range gs.Tanks {
				tank.Attributes.Clamp(cfg.AttributeLimits)
			}
		}
		c.Emit("settingsApplied", map[string]interface{}{"success": true})
	})
}

// attributesPayload mirrors game.Attributes with optional fields, for a
// partial overwrite of every non-AI tank.
type attributesPayload struct {
	Health     *float64 `json:"health"`
	Speed      *float64 `json:"speed"`
	Gasoline   *float64 `json:"gasoline"`
	Rotation   *float64 `json:"rotation"`
	Ammunition *float64 `json:"ammunition"`
	Kinetics   *float64 `json:"kinetics"`
}

func (h *Hub) handleSetPlayerAttributes(c *Client, data json.RawMessage) {
	var p attributesPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("session: bad setPlayerAttributes payload from %s: %v", c.ID, err)
		return
	}
	h.engine.Enqueue(func(gs *game.GameState, aiMgr *ai.Manager, cfg *config.AppConfig) {
		for _, player := range gs.Players {
			if player.AI != nil {
				continue
			}
			tank, ok := gs.Tanks[player.ID]
			if !ok {
				continue
			}
			if p.Health != nil {
				tank.Attributes.Health = *p.Health
			}
			if p.Speed != nil {
				tank.Attributes.Speed = *p.Speed
			}
			if p.Gasoline != nil {
				tank.Attributes.Gasoline = *p.Gasoline
			}
			if p.Rotation != nil {
				tank.Attributes.Rotation = *p.Rotation
			}
			if p.Ammunition != nil {
				tank.Attributes.Ammunition = *p.Ammunition
			}
			if p.Kinetics != nil {
				tank.Attributes.Kinetics = *p.Kinetics
			}
			tank.Attributes.Clamp(cfg.AttributeLimits)
		}
		h.Broadcast("settingsApplied", map[string]interface{}{"success": true})
	})
}

type attributeLimitPayload struct {
	AttributeName string  `json:"attributeName"`
	Bound         string  `json:"bound"` // "min" | "max"
	Value         float64 `json:"value"`
}

func (h *Hub) handleSetPlayerAttributeLimit(c *Client, data json.RawMessage) {
	var p attributeLimitPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("session: bad setPlayerAttributeLimit payload from %s: %v", c.ID, err)
		return
	}
	h.engine.Enqueue(func(gs *game.GameState, aiMgr *ai.Manager, cfg *config.AppConfig) {
		limit, ok := applyAttributeLimitBound(&cfg.AttributeLimits, config.UpgradeKind(p.AttributeName), p.Bound, p.Value)
		if !ok {
			c.Emit("settingsApplied", map[string]interface{}{"success": false, "error": "unknown attribute: " + p.AttributeName})
			return
		}
		_ = limit
		for _, tank := range gs.Tanks {
			tank.Attributes.Clamp(cfg.AttributeLimits)
		}
		c.Emit("settingsApplied", map[string]interface{}{"success": true})
	})
}

// applyAttributeLimitBound mutates the named attribute's min or max in
// place. Returns false for an unrecognized attribute name.
func applyAttributeLimitBound(limits *config.AttributeLimits, name config.UpgradeKind, bound string, value float64) (config.Limit, bool) {
	var target *config.Limit
	switch name {
	case config.UpgradeHealth:
		target = &limits.Health
	case config.UpgradeSpeed:
		target = &limits.Speed
	case config.UpgradeGasoline:
		target = &limits.Gasoline
	case config.UpgradeRotation:
		target = &limits.Rotation
	case config.UpgradeAmmunition:
		target = &limits.Ammunition
	case config.UpgradeKinetics:
		target = &limits.Kinetics
	default:
		return config.Limit{}, false
	}
	if bound == "min" {
		target.Min = value
	} else {
		target.Max = value
	}
	return *target, true
}

func (h *Hub) handleRequestGameState(c *Client) {
	h.engine.Enqueue(func(gs *game.GameState, aiMgr *ai.Manager, cfg *config.AppConfig) {
		c.Emit("gameState", buildFullMessage(gs))
	})
}

func (h *Hub) handleRequestPlayerState(c *Client) {
	h.engine.Enqueue(func(gs *game.GameState, aiMgr *ai.Manager, cfg *config.AppConfig) {
		tank, ok := gs.Tanks[c.ID]
		if !ok {
			return
		}
		c.Emit("playerState", buildPlayerStateView(tank))
	})
}

func buildTreeViews(gs *game.GameState) []game.TreeView {
	views := make([]game.TreeView, 0, len(gs.Trees))
	for _, t := range gs.Trees {
		views = append(views, game.BuildTreeView(t))
	}
	return views
}

func buildPatchViews(gs *game.GameState) []game.PatchView {
	views := make([]game.PatchView, 0, len(gs.Patches))
	for _, p := range gs.Patches {
		views = append(views, game.BuildPatchView(p))
	}
	return views
}

// playerStateView is the per-player derived state pushed at broadcast
// cadence: the player's own attributes, alive flag, and respawn timer.
type playerStateView struct {
	Health     int  `json:"health"`
	Speed      int  `json:"speed"`
	Gasoline   int  `json:"gasoline"`
	Rotation   int  `json:"rotation"`
	Ammunition int  `json:"ammunition"`
	Kinetics   int  `json:"kinetics"`
	Alive      bool `json:"alive"`
	RespawnMs  int  `json:"respawnMs"`
}

func buildPlayerStateView(t *game.Tank) playerStateView {
	v := game.BuildTankView(t)
	return playerStateView{
		Health: v.Health, Speed: v.Speed, Gasoline: v.Gasoline,
		Rotation: v.Rotation, Ammunition: v.Ammunition, Kinetics: v.Kinetics,
		Alive: v.Alive, RespawnMs: v.RespawnMs,
	}
}

// gameStateMessage is the outbound `gameState` event envelope. A "full"
// message carries every entity, including trees (sent once at join/reset/
// terrain change); a "delta" message carries only the changed subset, plus
// the patches and tree-param config every delta needs for renderer
// continuity.
type gameStateMessage struct {
	Type       string             `json:"type"`
	GameTimeMs float64            `json:"gameTimeMs"`
	Tanks      []game.TankView    `json:"tanks,omitempty"`
	Shells     []game.ShellView   `json:"shells,omitempty"`
	Upgrades   []game.UpgradeView `json:"upgrades,omitempty"`
	Players    []game.PlayerView  `json:"players,omitempty"`
	Trees      []game.TreeView    `json:"trees,omitempty"`
	Patches    []game.PatchView   `json:"patches,omitempty"`
	TreeParams config.TreeParams  `json:"treeParams"`
}

func buildFullMessage(gs *game.GameState) gameStateMessage {
	full := game.BuildFullState(gs)
	return gameStateMessage{
		Type:       "full",
		GameTimeMs: full.GameTimeMs,
		Tanks:      full.Tanks,
		Shells:     full.Shells,
		Upgrades:   full.Upgrades,
		Players:    full.Players,
		Trees:      full.Trees,
		Patches:    full.Patches,
		TreeParams: gs.Terrain.Trees,
	}
}
