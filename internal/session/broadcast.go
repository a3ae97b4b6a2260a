package session

import (
	"tankarena/internal/game"
)

// snapshotTracker remembers what was last sent so broadcastSnapshot can
// build a delta instead of resending everything every 100ms.
type snapshotTracker struct {
	everSent  bool
	tanks     map[string]game.TankView
	upgrades  map[string]bool // id -> collected
	players   map[string]game.PlayerView
}

func (s *snapshotTracker) init() {
	if s.tanks == nil {
		s.tanks = make(map[string]game.TankView)
		s.upgrades = make(map[string]bool)
		s.players = make(map[string]game.PlayerView)
	}
}

// broadcastSnapshot is the Low-cadence (10Hz) scheduler callback: it either
// sends a full snapshot (first call) or a delta of changed entities, always
// carrying every live shell and the current patch/tree-param config for
// renderer continuity. Per-player derived state is pushed in the same pass.
func (h *Hub) broadcastSnapshot(nowMs float64) {
	if h.ClientCount() == 0 {
		return
	}
	gs := h.engine.State()
	h.snap.init()

	if !h.snap.everSent {
		h.snap.everSent = true
		h.snapshotAll(gs)
		h.Broadcast("gameState", buildFullMessage(gs))
		h.pushPlayerStates(gs)
		return
	}

	msg := gameStateMessage{
		Type:       "delta",
		GameTimeMs: gs.GameTimeMs,
		Patches:    buildPatchViews(gs),
		TreeParams: gs.Terrain.Trees,
	}

	for id, tank := range gs.Tanks {
		view := game.BuildTankView(tank)
		if prev, ok := h.snap.tanks[id]; !ok || prev != view {
			msg.Tanks = append(msg.Tanks, view)
			h.snap.tanks[id] = view
		}
	}
	for id := range h.snap.tanks {
		if _, ok := gs.Tanks[id]; !ok {
			delete(h.snap.tanks, id)
		}
	}

	for _, shell := range gs.Shells {
		msg.Shells = append(msg.Shells, game.BuildShellView(shell))
	}

	for _, u := range gs.Upgrades {
		if prev, ok := h.snap.upgrades[u.ID]; !ok || prev != u.Collected {
			msg.Upgrades = append(msg.Upgrades, game.BuildUpgradeView(u))
			h.snap.upgrades[u.ID] = u.Collected
		}
	}

	for id, player := range gs.Players {
		view := game.BuildPlayerView(player)
		if prev, ok := h.snap.players[id]; !ok || prev != view {
			msg.Players = append(msg.Players, view)
			h.snap.players[id] = view
		}
	}
	for id := range h.snap.players {
		if _, ok := gs.Players[id]; !ok {
			delete(h.snap.players, id)
		}
	}

	if len(msg.Tanks) == 0 && len(msg.Shells) == 0 && len(msg.Upgrades) == 0 && len(msg.Players) == 0 {
		return
	}
	h.Broadcast("gameState", msg)
	h.pushPlayerStates(gs)
}

func (h *Hub) snapshotAll(gs *game.GameState) {
	for id, tank := range gs.Tanks {
		h.snap.tanks[id] = game.BuildTankView(tank)
	}
	for _, u := range gs.Upgrades {
		h.snap.upgrades[u.ID] = u.Collected
	}
	for id, p := range gs.Players {
		h.snap.players[id] = game.BuildPlayerView(p)
	}
}

func (h *Hub) pushPlayerStates(gs *game.GameState) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, c := range h.clients {
		if tank, ok := gs.Tanks[id]; ok {
			c.Emit("playerState", buildPlayerStateView(tank))
		}
	}
}

// handleDamage is the engine's OnDamage callback: it turns a collision
// pass's damage events into a single damageFeedback broadcast.
func (h *Hub) handleDamage(events []game.DamageEvent) {
	if len(events) == 0 {
		return
	}
	type feedback struct {
		TargetID string `json:"targetId"`
		ShooterID string `json:"shooterId"`
		Killed   bool   `json:"killed"`
	}
	out := make([]feedback, 0, len(events))
	for _, e := range events {
		out = append(out, feedback{TargetID: e.TargetID, ShooterID: e.ShooterID, Killed: e.Killed})
	}
	h.Broadcast("damageFeedback", out)
}
