package game

import (
	"testing"

	"tankarena/internal/config"
	"tankarena/internal/mathutil"
)

func TestNewUpgradeStartsUncollected(t *testing.T) {
	u := NewUpgrade("u1", config.UpgradeSpeed, mathutil.Vector2{X: 50, Y: 50})
	if u.Collected {
		t.Error("a freshly spawned upgrade should not be collected")
	}
	if !u.Bounds.Contains(mathutil.Vector2{X: 50, Y: 50}) {
		t.Error("upgrade bounds should contain its own position")
	}
}

func TestNewUpgradeRotationInRange(t *testing.T) {
	u := NewUpgrade("u1", config.UpgradeHealth, mathutil.Vector2{})
	if u.Rotation < 0 || u.Rotation > 2*3.141592653589793 {
		t.Errorf("Rotation = %v, want within [0, 2pi)", u.Rotation)
	}
}
