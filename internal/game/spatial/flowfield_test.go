package spatial

import (
	"math"
	"testing"
)

func TestFlowFieldGenerateProducesFlowTowardGoal(t *testing.T) {
	f := NewFlowField(500, 500, 50)
	f.Generate(450, 250) // goal near the east edge, agent starts west of it

	vx, vy := f.Lookup(50, 250)
	if vx <= 0 {
		t.Errorf("Lookup near west edge = (%v, %v), want positive X toward the eastward goal", vx, vy)
	}
}

func TestFlowFieldLookupOutOfBoundsReturnsZero(t *testing.T) {
	f := NewFlowField(500, 500, 50)
	f.Generate(100, 100)

	vx, vy := f.Lookup(-100, -100)
	if vx != 0 || vy != 0 {
		t.Errorf("Lookup out of bounds = (%v, %v), want (0, 0)", vx, vy)
	}
}

func TestFlowFieldBlockedGoalLeavesFieldUngenerated(t *testing.T) {
	f := NewFlowField(200, 200, 50)
	f.SetCellBlocked(100, 100, true)
	f.Generate(100, 100)

	cost := f.GetCost(100, 100)
	if cost != float32(math.MaxFloat32) {
		t.Errorf("GetCost(blocked goal) = %v, want MaxFloat32 (Generate should bail out)", cost)
	}
}

func TestFlowFieldRoutesAroundBlockedCell(t *testing.T) {
	f := NewFlowField(300, 100, 50)
	// Block only the top-row middle cell; the bottom row stays open as a detour.
	f.SetCellBlocked(125, 25, true)
	f.Generate(275, 25)

	cost := f.GetCost(25, 25)
	if cost == float32(math.MaxFloat32) {
		t.Error("expected a reachable cost when a detour around the blocked cell exists")
	}
}

func TestFlowFieldDimensions(t *testing.T) {
	f := NewFlowField(200, 100, 50)
	cols, rows, cellSize := f.Dimensions()
	if cols != 4 || rows != 2 || cellSize != 50 {
		t.Errorf("Dimensions() = (%d, %d, %v), want (4, 2, 50)", cols, rows, cellSize)
	}
}

func TestFlowFieldSetBlockedWrongLengthIsNoop(t *testing.T) {
	f := NewFlowField(100, 100, 50)
	f.SetBlocked([]bool{true}) // wrong length for a 2x2 grid
	f.Generate(25, 25)

	if f.GetCost(25, 25) != 0 {
		t.Error("mismatched SetBlocked call should be ignored, goal cell should remain reachable at cost 0")
	}
}
