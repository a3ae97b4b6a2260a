package spatial

import "testing"

func TestSpatialGridInsertAndQueryRadius(t *testing.T) {
	g := NewSpatialGrid(1000, 1000, 50, 16)
	g.Insert(0, 100, 100)
	g.Insert(1, 900, 900)

	found := g.QueryRadius(100, 100, 60)
	if !containsID(found, 0) {
		t.Errorf("QueryRadius near (100,100) should include entity 0, got %v", found)
	}
	if containsID(found, 1) {
		t.Errorf("QueryRadius near (100,100) should not include the far entity 1, got %v", found)
	}
}

func TestSpatialGridClearEmptiesCells(t *testing.T) {
	g := NewSpatialGrid(1000, 1000, 50, 16)
	g.Insert(0, 10, 10)
	g.Clear()

	found := g.QueryCell(10, 10)
	if len(found) != 0 {
		t.Errorf("QueryCell after Clear = %v, want empty", found)
	}
}

func TestSpatialGridQueryCellReturnsSameCellOnly(t *testing.T) {
	g := NewSpatialGrid(200, 200, 50, 16)
	g.Insert(0, 10, 10)
	g.Insert(1, 190, 190)

	found := g.QueryCell(10, 10)
	if !containsID(found, 0) || containsID(found, 1) {
		t.Errorf("QueryCell(10,10) = %v, want only entity 0", found)
	}
}

func TestSpatialGridInsertClampsOutOfBoundsPosition(t *testing.T) {
	g := NewSpatialGrid(100, 100, 50, 4)
	g.Insert(0, -50, -50) // should clamp into cell (0,0), not panic
	g.Insert(1, 10000, 10000)

	stats := g.Stats()
	if stats.TotalEntities != 2 {
		t.Errorf("Stats().TotalEntities = %d, want 2", stats.TotalEntities)
	}
}

func TestSpatialGridDimensions(t *testing.T) {
	g := NewSpatialGrid(200, 100, 50, 4)
	cols, rows, cellSize := g.Dimensions()
	if cols != 4 || rows != 2 || cellSize != 50 {
		t.Errorf("Dimensions() = (%d, %d, %v), want (4, 2, 50)", cols, rows, cellSize)
	}
}

func containsID(ids []uint32, target uint32) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
