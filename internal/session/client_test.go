package session

import (
	"encoding/json"
	"testing"
)

func TestEmitQueuesPayloadOnSendChannel(t *testing.T) {
	c := newClient("c1", "1.2.3.4", nil)
	c.Emit("hello", map[string]int{"x": 1})

	select {
	case msg := <-c.send:
		var decoded map[string]interface{}
		if err := json.Unmarshal(msg, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if decoded["event"] != "hello" {
			t.Errorf("event = %v, want hello", decoded["event"])
		}
	default:
		t.Fatal("expected a message queued on send channel")
	}
}

func TestEmitDropsWhenSendBufferFull(t *testing.T) {
	c := newClient("c1", "1.2.3.4", nil)
	for i := 0; i < cap(c.send); i++ {
		c.Emit("fill", i)
	}
	// Buffer is now full; one more Emit should drop rather than block.
	done := make(chan struct{})
	go func() {
		c.Emit("overflow", nil)
		close(done)
	}()
	<-done // would hang forever if Emit blocked instead of dropping
}

func TestAllowEventCapsAtBurst(t *testing.T) {
	c := newClientWithEventLimit("c1", "1.2.3.4", nil, SocketEventRateLimit{EventsPerSecond: 1, Burst: 2})

	if !c.AllowEvent() || !c.AllowEvent() {
		t.Fatal("first two events should be allowed within burst")
	}
	if c.AllowEvent() {
		t.Error("third event beyond burst should be rejected")
	}
}

