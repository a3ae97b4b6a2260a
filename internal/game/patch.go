package game

import "tankarena/internal/mathutil"

// Patch is a purely cosmetic decorative decal; it never participates in
// collision.
type Patch struct {
	ID       string
	Position mathutil.Vector2
	Size     float64
	Type     string
	Rotation float64
}

// NewPatch constructs a patch at pos.
func NewPatch(id string, pos mathutil.Vector2, size float64, patchType string, rotation float64) *Patch {
	return &Patch{ID: id, Position: pos, Size: size, Type: patchType, Rotation: rotation}
}
