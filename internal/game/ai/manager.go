package ai

import (
	"fmt"

	"tankarena/internal/config"
	"tankarena/internal/game"
)

// Manager owns one Controller per AI tank and steps them all on the
// engine's frame-skipped AI cadence.
type Manager struct {
	controllers map[string]*Controller
	nextID      uint64
}

// NewManager creates an empty AI manager.
func NewManager() *Manager {
	return &Manager{controllers: make(map[string]*Controller)}
}

// Count returns the number of active AI controllers.
func (m *Manager) Count() int {
	return len(m.controllers)
}

// Add spawns one AI player+tank pair at the given level and returns its id.
func (m *Manager) Add(gs *game.GameState, level Level, limits config.AttributeLimits, arena config.ArenaConfig) string {
	m.nextID++
	id := fmt.Sprintf("ai-%d", m.nextID)
	callsign := GenerateCallsign()
	gs.AddAI(id, callsign, "#6b7280", "", string(level), limits, arena)
	m.controllers[id] = NewController(id, level)
	return id
}

// Remove deletes one AI tank/player by id and drops its controller.
func (m *Manager) Remove(gs *game.GameState, id string) {
	gs.RemovePlayer(id)
	delete(m.controllers, id)
}

// RemoveAll purges every AI controller and its tank/player.
func (m *Manager) RemoveAll(gs *game.GameState) {
	for id := range m.controllers {
		gs.RemovePlayer(id)
	}
	m.controllers = make(map[string]*Controller)
}

// IDs returns every active AI tank id.
func (m *Manager) IDs() []string {
	ids := make([]string, 0, len(m.controllers))
	for id := range m.controllers {
		ids = append(ids, id)
	}
	return ids
}

// Step advances every controller by one AI-frame and returns any shells
// they fired. A fresh navMesh is built each call so it always reflects
// the current tree layout; fields are only generated lazily per goal
// cell actually requested, so this stays cheap when nobody is routing
// long range this frame.
func (m *Manager) Step(dtMs, now float64, gs *game.GameState, cfg config.AppConfig) []*game.Shell {
	nav := newNavMesh(gs.Trees, cfg.Arena.Width, cfg.Arena.Height, cfg.Spatial.FlowFieldCellSize)

	var shells []*game.Shell
	for id, c := range m.controllers {
		if _, ok := gs.Tanks[id]; !ok {
			delete(m.controllers, id)
			continue
		}
		if shell := c.Step(dtMs, now, gs, cfg, nav); shell != nil {
			shells = append(shells, shell)
		}
	}
	return shells
}
