package session

import (
	"encoding/json"
	"testing"

	"tankarena/internal/config"
	"tankarena/internal/game"
)

func TestBroadcastSnapshotFirstCallSendsFull(t *testing.T) {
	h := newTestHub()
	cfg := config.Load()
	h.engine.State().AddPlayer("p1", "Ace", "red", "woodland", config.Teams["NATO"], cfg.AttributeLimits, cfg.Arena)
	c := newClient("p1", "1.1.1.1", nil)
	h.register(c)

	h.broadcastSnapshot(0)

	select {
	case msg := <-c.send:
		var decoded map[string]interface{}
		json.Unmarshal(msg, &decoded)
		data := decoded["data"].(map[string]interface{})
		if data["type"] != "full" {
			t.Errorf("type = %v, want full on first snapshot", data["type"])
		}
	default:
		t.Fatal("expected a gameState message on the first snapshot")
	}
}

func TestBroadcastSnapshotNoClientsIsNoop(t *testing.T) {
	h := newTestHub()
	h.broadcastSnapshot(0) // should not panic with zero connected clients
}

func TestBroadcastSnapshotSecondCallSendsDeltaOnChange(t *testing.T) {
	h := newTestHub()
	cfg := config.Load()
	_, tank, _ := h.engine.State().AddPlayer("p1", "Ace", "red", "woodland", config.Teams["NATO"], cfg.AttributeLimits, cfg.Arena)
	c := newClient("p1", "1.1.1.1", nil)
	h.register(c)

	h.broadcastSnapshot(0)
	<-c.send // drain the initial full snapshot

	tank.Position.X += 50
	h.broadcastSnapshot(100)

	select {
	case msg := <-c.send:
		var decoded map[string]interface{}
		json.Unmarshal(msg, &decoded)
		data := decoded["data"].(map[string]interface{})
		if data["type"] != "delta" {
			t.Errorf("type = %v, want delta on second snapshot", data["type"])
		}
	default:
		t.Fatal("expected a delta gameState message after a tank moved")
	}
}

func TestBroadcastSnapshotSkipsEmptyDelta(t *testing.T) {
	h := newTestHub()
	c := newClient("p1", "1.1.1.1", nil)
	h.register(c)

	h.broadcastSnapshot(0)
	<-c.send // initial full, always sent

	h.broadcastSnapshot(100) // nothing changed, no players/tanks at all
	select {
	case <-c.send:
		t.Error("expected no second message when nothing changed")
	default:
	}
}

func TestHandleDamageBroadcastsFeedback(t *testing.T) {
	h := newTestHub()
	c := newClient("p1", "1.1.1.1", nil)
	h.register(c)

	h.handleDamage([]game.DamageEvent{{TargetID: "p1", ShooterID: "p2", Killed: true}})

	select {
	case msg := <-c.send:
		var decoded map[string]interface{}
		json.Unmarshal(msg, &decoded)
		if decoded["event"] != "damageFeedback" {
			t.Errorf("event = %v, want damageFeedback", decoded["event"])
		}
	default:
		t.Fatal("expected a damageFeedback broadcast")
	}
}

func TestHandleDamageEmptyEventsIsNoop(t *testing.T) {
	h := newTestHub()
	c := newClient("p1", "1.1.1.1", nil)
	h.register(c)

	h.handleDamage(nil)

	select {
	case <-c.send:
		t.Error("expected no broadcast for an empty damage event list")
	default:
	}
}
