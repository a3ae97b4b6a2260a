// Package session owns the client registry, inbound event parsing, and the
// delta/full snapshot broadcaster — the network-facing half of the arena
// that never touches GameState directly, only through engine.Command.
package session

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// Client is one connected socket. Its id comes from the upgrade request's
// `?id=` query parameter (or is generated when absent); a reconnect is
// detected when that id matches an existing player.
type Client struct {
	ID   string
	IP   string
	conn *websocket.Conn
	send chan []byte

	limiter *rate.Limiter
}

func newClient(id, ip string, conn *websocket.Conn) *Client {
	return newClientWithEventLimit(id, ip, conn, DefaultSocketEventRateLimit)
}

func newClientWithEventLimit(id, ip string, conn *websocket.Conn, limit SocketEventRateLimit) *Client {
	return &Client{
		ID:      id,
		IP:      ip,
		conn:    conn,
		send:    make(chan []byte, 64),
		limiter: rate.NewLimiter(rate.Limit(limit.EventsPerSecond), limit.Burst),
	}
}

// AllowEvent reports whether the caller may process one more inbound event
// from this socket, consuming one token from its per-socket bucket.
func (c *Client) AllowEvent() bool {
	return c.limiter.Allow()
}

// Emit queues an outbound {event, data} message for this client only.
// Non-blocking; a full send buffer drops the message (transient) rather
// than stalling the hub.
func (c *Client) Emit(event string, data interface{}) {
	payload, err := json.Marshal(map[string]interface{}{"event": event, "data": data})
	if err != nil {
		log.Printf("session: marshal error for event %s: %v", event, err)
		return
	}
	select {
	case c.send <- payload:
	default:
		log.Printf("session: client %s send buffer full, dropping %s", c.ID, event)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
