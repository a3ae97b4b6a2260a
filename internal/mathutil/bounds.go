package mathutil

import "math"

// Bounds is an axis-aligned bounding box. Invariant: W >= 0, H >= 0.
type Bounds struct {
	X, Y, W, H float64
}

// NewBoundsCentered builds an AABB of the given width/height centered at (cx, cy).
func NewBoundsCentered(cx, cy, w, h float64) Bounds {
	return Bounds{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Center returns the AABB's center point.
func (b Bounds) Center() Vector2 {
	return Vector2{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Overlaps reports whether two AABBs intersect (edge-touching counts as overlap).
func (b Bounds) Overlaps(o Bounds) bool {
	return b.X <= o.X+o.W && b.X+b.W >= o.X &&
		b.Y <= o.Y+o.H && b.Y+b.H >= o.Y
}

// Contains reports whether point p lies within the AABB.
func (b Bounds) Contains(p Vector2) bool {
	return p.X >= b.X && p.X <= b.X+b.W && p.Y >= b.Y && p.Y <= b.Y+b.H
}

// Expanded returns a copy of b grown by margin on every side (used for
// broad-phase search radii).
func (b Bounds) Expanded(margin float64) Bounds {
	return Bounds{
		X: b.X - margin,
		Y: b.Y - margin,
		W: b.W + margin*2,
		H: b.H + margin*2,
	}
}

// OBB is an oriented bounding box used for the tank-pickup proximity test.
// Rotation is in radians.
type OBB struct {
	Center   Vector2
	HalfW    float64
	HalfH    float64
	Rotation float64
}

// ContainsPoint tests whether p lies within the oriented box by rotating p
// into the box's local frame.
func (o OBB) ContainsPoint(p Vector2) bool {
	local := SubVec(p, o.Center)
	local = local.Rotated(-o.Rotation)
	return math.Abs(local.X) <= o.HalfW && math.Abs(local.Y) <= o.HalfH
}

// CircleOverlap reports whether two circles (given by center + radius)
// overlap, used throughout narrow-phase collision.
func CircleOverlap(aCenter Vector2, aRadius float64, bCenter Vector2, bRadius float64) bool {
	limit := aRadius + bRadius
	return DistanceSq(aCenter, bCenter) <= limit*limit
}
