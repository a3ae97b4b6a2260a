package game

import (
	"math/rand"

	"tankarena/internal/config"
	"tankarena/internal/mathutil"
)

const upgradeRadius = 12

// Upgrade is a pickup of a single kind; the spawner guarantees the live
// count of each kind equals its configured target.
type Upgrade struct {
	ID        string
	Kind      config.UpgradeKind
	Position  mathutil.Vector2
	Rotation  float64 // cosmetic only
	Collected bool
	Bounds    mathutil.Bounds
}

// NewUpgrade constructs an uncollected upgrade of kind at pos.
func NewUpgrade(id string, kind config.UpgradeKind, pos mathutil.Vector2) *Upgrade {
	u := &Upgrade{
		ID:       id,
		Kind:     kind,
		Position: pos,
		Rotation: rand.Float64() * 2 * 3.141592653589793,
	}
	u.Bounds = mathutil.NewBoundsCentered(pos.X, pos.Y, upgradeRadius*2, upgradeRadius*2)
	return u
}
