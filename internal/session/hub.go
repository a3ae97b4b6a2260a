package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"tankarena/internal/config"
	"tankarena/internal/engine"
	"tankarena/internal/game"
	"tankarena/internal/game/ai"
)

const (
	maxConnectionsTotal = 500
	maxConnectionsPerIP = 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if IsAllowedOrigin(origin) {
			return true
		}
		log.Printf("session: websocket rejected from origin %q", origin)
		RecordConnectionRejected("origin")
		return false
	},
}

// inboundEnvelope is the wire shape of every client->server message: an
// event name and an opaque payload decoded per-event.
type inboundEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Hub is the client registry and the bridge between socket I/O and the
// engine's command queue. It never mutates GameState itself — every
// handler in ingest.go builds an engine.Command and enqueues it.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client

	engine  *engine.Engine
	limiter *WebSocketRateLimiter

	snap snapshotTracker
}

// NewHub wires a hub to engine and registers the damage-feedback and
// broadcast-cadence callbacks on its scheduler.
func NewHub(eng *engine.Engine) *Hub {
	h := &Hub{
		clients: make(map[string]*Client),
		engine:  eng,
		limiter: NewWebSocketRateLimiter(maxConnectionsPerIP),
	}
	eng.OnDamage(h.handleDamage)
	eng.Scheduler().On(engine.Low, h.broadcastSnapshot)
	return h
}

// ClientCount returns the number of currently connected sockets.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	count := len(h.clients)
	h.mu.Unlock()
	UpdateWSConnections(count)
	log.Printf("session: client %s connected from %s (%d total)", c.ID, c.IP, count)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if existing, ok := h.clients[c.ID]; ok && existing == c {
		delete(h.clients, c.ID)
	}
	count := len(h.clients)
	h.mu.Unlock()

	h.limiter.Release(c.IP)
	UpdateWSConnections(count)
	log.Printf("session: client %s disconnected (%d remaining)", c.ID, count)

	h.engine.Enqueue(func(gs *game.GameState, aiMgr *ai.Manager, cfg *config.AppConfig) {
		gs.RemovePlayer(c.ID)
	})
	h.Broadcast("playerLeft", map[string]string{"id": c.ID})
}

// Broadcast emits event/data to every connected client.
func (h *Hub) Broadcast(event string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.Emit(event, data)
	}
	IncrementWSMessages()
}

// BroadcastExcept emits to every client except excludeID.
func (h *Hub) BroadcastExcept(excludeID, event string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, c := range h.clients {
		if id == excludeID {
			continue
		}
		c.Emit(event, data)
	}
	IncrementWSMessages()
}

// clientByID returns the client for id, or nil.
func (h *Hub) clientByID(id string) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[id]
}

// HandleWebSocket upgrades the request and spins up the per-client pumps.
// The connecting client supplies its own id via ?id= to survive reconnects
// (re-sending `join` with the same id is how the server recognizes it); an
// absent or unknown id is treated as a brand-new player.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := GetClientIP(r)

	if h.ClientCount() >= maxConnectionsTotal {
		log.Printf("session: websocket rejected, total connection limit reached")
		RecordConnectionRejected("ws_total_limit")
		http.Error(w, "too many connections", http.StatusServiceUnavailable)
		return
	}
	if !h.limiter.Allow(ip) {
		log.Printf("session: websocket rejected from %s, per-IP limit reached", ip)
		RecordConnectionRejected("ws_ip_limit")
		http.Error(w, "too many connections from your IP", http.StatusTooManyRequests)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("session: websocket upgrade error: %v", err)
		h.limiter.Release(ip)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		id = generateClientID()
	}

	client := newClient(id, ip, conn)
	h.register(client)
	go client.writePump()
	go h.readPump(client)
}

func (h *Hub) readPump(c *Client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
		close(c.send)
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if !c.AllowEvent() {
			RecordConnectionRejected("event_rate_limit")
			continue
		}

		var env inboundEnvelope
		if err := json.Unmarshal(message, &env); err != nil {
			log.Printf("session: malformed message from %s: %v", c.ID, err)
			continue
		}
		h.dispatch(c, env.Event, env.Data)
	}
}

func generateClientID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "client-0"
	}
	return "client-" + hex.EncodeToString(buf)
}
