package session

import (
	"encoding/json"
	"testing"

	"tankarena/internal/config"
)

// flush starts and immediately stops the engine so any commands enqueued
// since the last flush run exactly once, synchronously, before returning.
func flush(h *Hub) {
	h.engine.Start()
	h.engine.Stop()
}

func TestDispatchJoinCreatesPlayerAndEmitsJoined(t *testing.T) {
	h := newTestHub()
	c := newClient("p1", "1.1.1.1", nil)
	h.register(c)

	payload, _ := json.Marshal(joinPayload{Callname: "Ace", TankColor: "red", TankCamo: "woodland", TeamName: "NATO"})
	h.dispatch(c, "join", payload)
	flush(h)

	if h.engine.Counts().Players != 1 {
		t.Errorf("Players = %d, want 1 after join", h.engine.Counts().Players)
	}
	select {
	case msg := <-c.send:
		var decoded map[string]interface{}
		json.Unmarshal(msg, &decoded)
		if decoded["event"] != "joined" {
			t.Errorf("event = %v, want joined", decoded["event"])
		}
	default:
		t.Fatal("expected a joined message queued for the client")
	}
}

func TestDispatchJoinUnknownTeamEmitsError(t *testing.T) {
	h := newTestHub()
	c := newClient("p1", "1.1.1.1", nil)
	h.register(c)

	payload, _ := json.Marshal(joinPayload{Callname: "Ace", TeamName: "ROGUE"})
	h.dispatch(c, "join", payload)

	select {
	case msg := <-c.send:
		var decoded map[string]interface{}
		json.Unmarshal(msg, &decoded)
		data := decoded["data"].(map[string]interface{})
		if data["success"] != false {
			t.Error("expected success=false for an unknown team")
		}
	default:
		t.Fatal("expected an immediate settingsApplied error, no engine round-trip needed")
	}
}

func TestDispatchJoinReconnectEmitsReconnected(t *testing.T) {
	h := newTestHub()
	cfg := config.Load()
	h.engine.State().AddPlayer("p1", "Ace", "red", "woodland", config.Teams["NATO"], cfg.AttributeLimits, cfg.Arena)

	c := newClient("p1", "1.1.1.1", nil)
	h.register(c)
	payload, _ := json.Marshal(joinPayload{Callname: "Ace", TeamName: "NATO"})
	h.dispatch(c, "join", payload)
	flush(h)

	select {
	case msg := <-c.send:
		var decoded map[string]interface{}
		json.Unmarshal(msg, &decoded)
		if decoded["event"] != "reconnected" {
			t.Errorf("event = %v, want reconnected", decoded["event"])
		}
	default:
		t.Fatal("expected a reconnected message")
	}
}

func TestDispatchPlayerInputSetsTargetVelocity(t *testing.T) {
	h := newTestHub()
	cfg := config.Load()
	h.engine.State().AddPlayer("p1", "Ace", "red", "woodland", config.Teams["NATO"], cfg.AttributeLimits, cfg.Arena)
	c := newClient("p1", "1.1.1.1", nil)

	payload, _ := json.Marshal(playerInputPayload{Movement: struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}{X: 1, Y: 0}})
	h.dispatch(c, "playerInput", payload)
	flush(h)

	tank := h.engine.State().Tanks["p1"]
	if tank.TargetVelocity.X <= 0 {
		t.Errorf("TargetVelocity.X = %v, want > 0 after forward input", tank.TargetVelocity.X)
	}
}

func TestDispatchPlayerInputUnknownTankIsNoop(t *testing.T) {
	h := newTestHub()
	c := newClient("ghost", "1.1.1.1", nil)

	payload, _ := json.Marshal(playerInputPayload{})
	h.dispatch(c, "playerInput", payload)
	flush(h) // should not panic despite no matching tank
}

func TestDispatchUnknownEventIsIgnored(t *testing.T) {
	h := newTestHub()
	c := newClient("p1", "1.1.1.1", nil)
	h.dispatch(c, "somethingMadeUp", json.RawMessage(`{}`))
	// No panic, no emitted message, no enqueued command.
	select {
	case <-c.send:
		t.Error("unknown event should not emit anything")
	default:
	}
}

func TestDispatchResetGameClearsEntities(t *testing.T) {
	h := newTestHub()
	cfg := config.Load()
	h.engine.State().AddPlayer("p1", "Ace", "red", "woodland", config.Teams["NATO"], cfg.AttributeLimits, cfg.Arena)
	c := newClient("p1", "1.1.1.1", nil)

	h.dispatch(c, "resetGame", nil)
	flush(h)

	if h.engine.Counts().Players != 0 {
		t.Errorf("Players = %d, want 0 after resetGame", h.engine.Counts().Players)
	}
}

func TestApplyAttributeLimitBoundUnknownAttributeFails(t *testing.T) {
	limits := config.DefaultAttributeLimits()
	_, ok := applyAttributeLimitBound(&limits, config.UpgradeKind("bogus"), "max", 100)
	if ok {
		t.Error("expected applyAttributeLimitBound to fail for an unrecognized attribute")
	}
}

func TestApplyAttributeLimitBoundSetsMaxAndMin(t *testing.T) {
	limits := config.DefaultAttributeLimits()

	if _, ok := applyAttributeLimitBound(&limits, config.UpgradeHealth, "max", 500); !ok {
		t.Fatal("expected applyAttributeLimitBound to succeed for health/max")
	}
	if limits.Health.Max != 500 {
		t.Errorf("Health.Max = %v, want 500", limits.Health.Max)
	}

	if _, ok := applyAttributeLimitBound(&limits, config.UpgradeHealth, "min", 10); !ok {
		t.Fatal("expected applyAttributeLimitBound to succeed for health/min")
	}
	if limits.Health.Min != 10 {
		t.Errorf("Health.Min = %v, want 10", limits.Health.Min)
	}
}
