package session

import (
	"testing"

	"tankarena/internal/config"
	"tankarena/internal/engine"
)

func newTestHub() *Hub {
	eng := engine.New(config.Load())
	return NewHub(eng)
}

func TestHubRegisterIncrementsClientCount(t *testing.T) {
	h := newTestHub()
	c := newClient("c1", "1.2.3.4", nil)

	h.register(c)
	if h.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", h.ClientCount())
	}
}

func TestHubUnregisterRemovesClientAndReleasesSlot(t *testing.T) {
	h := newTestHub()
	c := newClient("c1", "9.9.9.9", nil)
	h.limiter.Allow("9.9.9.9") // simulate the slot HandleWebSocket would have taken
	h.register(c)

	h.unregister(c)
	if h.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0 after unregister", h.ClientCount())
	}
	if h.clientByID("c1") != nil {
		t.Error("clientByID should return nil after unregister")
	}
}

func TestHubUnregisterStaleClientIsNoop(t *testing.T) {
	h := newTestHub()
	original := newClient("c1", "1.1.1.1", nil)
	replacement := newClient("c1", "1.1.1.1", nil)
	h.register(original)
	h.register(replacement) // same ID overwrites the map entry

	h.unregister(original) // stale reference, should not evict replacement
	if h.clientByID("c1") != replacement {
		t.Error("unregister of a stale client reference should not remove the current client")
	}
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	h := newTestHub()
	a := newClient("a", "1.1.1.1", nil)
	b := newClient("b", "2.2.2.2", nil)
	h.register(a)
	h.register(b)

	h.Broadcast("tick", map[string]int{"n": 1})

	for _, c := range []*Client{a, b} {
		select {
		case <-c.send:
		default:
			t.Errorf("client %s did not receive the broadcast", c.ID)
		}
	}
}

func TestHubBroadcastExceptSkipsExcludedClient(t *testing.T) {
	h := newTestHub()
	a := newClient("a", "1.1.1.1", nil)
	b := newClient("b", "2.2.2.2", nil)
	h.register(a)
	h.register(b)

	h.BroadcastExcept("a", "tick", nil)

	select {
	case <-a.send:
		t.Error("excluded client should not have received the broadcast")
	default:
	}
	select {
	case <-b.send:
	default:
		t.Error("non-excluded client should have received the broadcast")
	}
}

func TestClientByIDUnknownReturnsNil(t *testing.T) {
	h := newTestHub()
	if h.clientByID("missing") != nil {
		t.Error("clientByID for unknown id should return nil")
	}
}

func TestGenerateClientIDProducesDistinctValues(t *testing.T) {
	a := generateClientID()
	b := generateClientID()
	if a == b {
		t.Error("generateClientID should not repeat across calls")
	}
}
