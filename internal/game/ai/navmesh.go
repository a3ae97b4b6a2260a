package ai

import (
	"fmt"

	"tankarena/internal/game"
	"tankarena/internal/game/spatial"
	"tankarena/internal/mathutil"
)

// longRangeDist is the distance beyond which a controller trusts the flow
// field's routing over a straight line to its goal. Below it, the cheap
// local tree-repulsion in approach() already handles dodging fine and a
// coarse BFS field adds nothing.
const longRangeDist = 150

// navMesh caches one flow field per goal cell for one AI frame so every
// controller heading toward the same upgrade or wander waypoint shares a
// single BFS pass instead of each running its own.
type navMesh struct {
	worldW, worldH, cellSize float64
	trees                    []*game.Tree
	fields                   map[string]*spatial.FlowField
}

func newNavMesh(trees []*game.Tree, worldW, worldH, cellSize float64) *navMesh {
	return &navMesh{
		worldW:   worldW,
		worldH:   worldH,
		cellSize: cellSize,
		trees:    trees,
		fields:   make(map[string]*spatial.FlowField),
	}
}

func (n *navMesh) fieldFor(goal mathutil.Vector2) *spatial.FlowField {
	key := fmt.Sprintf("%d_%d", int(goal.X/n.cellSize), int(goal.Y/n.cellSize))
	if f, ok := n.fields[key]; ok {
		return f
	}
	f := spatial.NewFlowField(n.worldW, n.worldH, n.cellSize)
	for _, t := range n.trees {
		f.SetCellBlocked(t.Position.X, t.Position.Y, true)
	}
	f.Generate(goal.X, goal.Y)
	n.fields[key] = f
	return f
}

// direction returns the flow field's routing vector at pos toward goal,
// or the straight-line direction if pos/goal fall outside the field or
// the goal cell is itself blocked (BFS never reached it).
func (n *navMesh) direction(pos, goal mathutil.Vector2) mathutil.Vector2 {
	field := n.fieldFor(goal)
	vx, vy := field.Lookup(pos.X, pos.Y)
	if vx == 0 && vy == 0 {
		straight := mathutil.SubVec(goal, pos)
		if straight.Magnitude() < 1e-6 {
			return mathutil.Vector2{}
		}
		return straight.Normalized()
	}
	return mathutil.Vector2{X: float64(vx), Y: float64(vy)}
}
