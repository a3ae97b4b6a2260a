package game

import (
	"testing"

	"tankarena/internal/mathutil"
)

func TestNewPatchFieldsRoundTrip(t *testing.T) {
	p := NewPatch("p1", mathutil.Vector2{X: 10, Y: 20}, 30, "mud", 1.5)
	if p.ID != "p1" || p.Position.X != 10 || p.Position.Y != 20 || p.Size != 30 || p.Type != "mud" || p.Rotation != 1.5 {
		t.Errorf("NewPatch = %+v, fields did not round-trip", p)
	}
}
