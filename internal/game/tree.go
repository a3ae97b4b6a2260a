package game

import (
	"math"

	"tankarena/internal/mathutil"
)

const treeImpactRecentMs = 5000

// Tree carries a damped pendulum (swing) and a 2D spring-damper (foliage),
// both purely cosmetic but replicated for client-side rendering continuity.
type Tree struct {
	ID       string
	Position mathutil.Vector2
	Size     float64
	Type     string

	SwingAngle          float64
	SwingVelocity       float64
	LastImpactAtMs      float64
	FrequencyBoostUntil float64
	BoostFactor         float64

	FoliageOffset   mathutil.Vector2
	FoliageVelocity mathutil.Vector2

	LeafRotation float64
	gameTimeMs   float64 // last tick's now, set by Update for Impact's boost window check
}

// NewTree constructs a tree at pos with the given size and cosmetic type.
func NewTree(id string, pos mathutil.Vector2, size float64, treeType string, leafRotation float64) *Tree {
	return &Tree{
		ID:           id,
		Position:     pos,
		Size:         size,
		Type:         treeType,
		BoostFactor:  1,
		LeafRotation: leafRotation,
	}
}

// Bounds returns the trunk AABB used for collision — a small box centered
// at the trunk base, not the visual canopy.
func (t *Tree) Bounds() mathutil.Bounds {
	trunkSize := t.Size / 8
	return mathutil.NewBoundsCentered(t.Position.X, t.Position.Y-t.Size/2, trunkSize, trunkSize)
}

// Impact deposits an impulse on the pendulum and foliage spring proportional
// to force, and boosts swing frequency for 1.2s by 1.8x.
func (t *Tree) Impact(dir mathutil.Vector2, force float64) {
	forceScale := math.Min(force/10, 5)
	impactAngle := math.Atan2(dir.Y, dir.X)

	t.SwingVelocity += -impactAngle * forceScale * 0.02
	t.FoliageVelocity.X += -dir.X * forceScale * 1.0
	t.FoliageVelocity.Y += -dir.Y * forceScale * 1.0

	t.LastImpactAtMs = t.gameTimeMs
	t.FrequencyBoostUntil = t.gameTimeMs + 1200
	t.BoostFactor = 1.8
}

// Update advances the pendulum and foliage oscillator by one fixed step.
func (t *Tree) Update(dtMs float64, now float64) {
	t.gameTimeMs = now
	dt := dtMs / 1000

	if now >= t.FrequencyBoostUntil {
		t.BoostFactor = 1
	}

	recent := now-t.LastImpactAtMs < treeImpactRecentMs
	if recent {
		g := 2.0 * t.BoostFactor
		const c = 0.3
		angularAccel := -g*math.Sin(t.SwingAngle) - c*t.SwingVelocity
		t.SwingVelocity += angularAccel * dt
		t.SwingAngle += t.SwingVelocity * dt
		t.SwingAngle = mathutil.Clamp(t.SwingAngle, -1.0, 1.0)

		const k = 0.2
		const damping = 0.2
		accelX := -k*t.FoliageOffset.X - damping*t.FoliageVelocity.X
		accelY := -k*t.FoliageOffset.Y - damping*t.FoliageVelocity.Y
		t.FoliageVelocity.X += accelX * dt
		t.FoliageVelocity.Y += accelY * dt
		t.FoliageOffset.X += t.FoliageVelocity.X * dt
		t.FoliageOffset.Y += t.FoliageVelocity.Y * dt
		t.FoliageOffset.X = mathutil.Clamp(t.FoliageOffset.X, -5, 5)
		t.FoliageOffset.Y = mathutil.Clamp(t.FoliageOffset.Y, -5, 5)
	} else {
		t.SwingVelocity *= 0.95
		t.SwingAngle *= 0.98
		t.FoliageVelocity.Scale(0.95)
		t.FoliageOffset.Scale(0.98)
		if math.Abs(t.SwingAngle) < 1e-4 {
			t.SwingAngle = 0
		}
		if math.Abs(t.SwingVelocity) < 1e-4 {
			t.SwingVelocity = 0
		}
		if t.FoliageOffset.Magnitude() < 1e-4 {
			t.FoliageOffset = mathutil.Vector2{}
		}
	}
}
