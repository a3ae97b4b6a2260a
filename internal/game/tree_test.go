package game

import (
	"math"
	"testing"

	"tankarena/internal/mathutil"
)

func TestTreeBoundsCenteredAtTrunkBase(t *testing.T) {
	tree := NewTree("t1", mathutil.Vector2{X: 100, Y: 100}, 80, "pine", 0)
	b := tree.Bounds()
	center := b.Center()
	if center.X != 100 || center.Y != 60 {
		t.Errorf("trunk bounds center = %+v, want (100, 60)", center)
	}
}

func TestTreeImpactSetsBoostWindow(t *testing.T) {
	tree := NewTree("t1", mathutil.Vector2{}, 80, "pine", 0)
	tree.Update(16, 1000) // establishes gameTimeMs = 1000
	tree.Impact(mathutil.Vector2{X: 1, Y: 0}, 10)

	if tree.BoostFactor != 1.8 {
		t.Errorf("BoostFactor = %v, want 1.8 immediately after impact", tree.BoostFactor)
	}
	if tree.FrequencyBoostUntil != 1000+1200 {
		t.Errorf("FrequencyBoostUntil = %v, want 2200", tree.FrequencyBoostUntil)
	}
}

func TestTreeUpdateDecaysAfterBoostWindow(t *testing.T) {
	tree := NewTree("t1", mathutil.Vector2{}, 80, "pine", 0)
	tree.Update(16, 0)
	tree.Impact(mathutil.Vector2{X: 1, Y: 0}, 10)

	tree.Update(16, 5000) // at treeImpactRecentMs, long after the 1.2s boost window expired
	if tree.BoostFactor != 1 {
		t.Errorf("BoostFactor = %v, want reset to 1 once boost window passes", tree.BoostFactor)
	}
}

func TestTreeSwingAngleStaysClamped(t *testing.T) {
	tree := NewTree("t1", mathutil.Vector2{}, 80, "pine", 0)
	tree.Update(16, 0)
	for i := 0; i < 200; i++ {
		tree.Impact(mathutil.Vector2{X: 1, Y: 0}, 100)
		tree.Update(16, float64(i)*16)
	}
	if math.Abs(tree.SwingAngle) > 1.0+1e-9 {
		t.Errorf("SwingAngle = %v, want within [-1, 1]", tree.SwingAngle)
	}
}
