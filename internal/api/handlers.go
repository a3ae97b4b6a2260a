package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler methods for routerHandlers, used by NewRouter and by tests via
// httptest against the standalone router.

func (h *routerHandlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	counts := h.engine.Counts()
	writeJSON(w, map[string]interface{}{
		"status":   "ok",
		"players":  counts.Players,
		"tanks":    counts.Tanks,
		"shells":   counts.Shells,
		"upgrades": counts.Upgrades,
		"trees":    counts.Trees,
	})
}

func (h *routerHandlers) handleListTerrainMaps(w http.ResponseWriter, r *http.Request) {
	maps := h.engine.Config().TerrainMaps
	names := make([]string, 0, len(maps))
	for name := range maps {
		names = append(names, name)
	}
	writeJSON(w, map[string]interface{}{"maps": names})
}

func (h *routerHandlers) handleGetTerrainMap(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	terrain, ok := h.engine.Config().TerrainMaps[id]
	if !ok {
		writeError(w, "unknown terrain map: "+id, http.StatusNotFound)
		return
	}
	writeJSON(w, terrain)
}

// Helper functions (package-level for reuse)

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
