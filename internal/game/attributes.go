package game

import "tankarena/internal/config"

// Attributes holds the six numeric fields every tank carries. Limits live
// separately in config.AttributeLimits — an Attributes value is meaningless
// without the limits it was clamped against.
type Attributes struct {
	Health     float64
	Speed      float64
	Gasoline   float64
	Rotation   float64
	Ammunition float64
	Kinetics   float64
}

// MaxAttributes returns starting attributes equal to every configured
// maximum. AI and player tanks both start here — difficulty never alters
// starting stats.
func MaxAttributes(limits config.AttributeLimits) Attributes {
	return Attributes{
		Health:     limits.Health.Max,
		Speed:      limits.Speed.Max,
		Gasoline:   limits.Gasoline.Max,
		Rotation:   limits.Rotation.Max,
		Ammunition: limits.Ammunition.Max,
		Kinetics:   limits.Kinetics.Max,
	}
}

// clampTo restricts v to [lim.Min, lim.Max].
func clampTo(v float64, lim config.Limit) float64 {
	if v < lim.Min {
		return lim.Min
	}
	if v > lim.Max {
		return lim.Max
	}
	return v
}

// Clamp restricts every field to its configured limit in place.
func (a *Attributes) Clamp(limits config.AttributeLimits) {
	a.Health = clampTo(a.Health, limits.Health)
	a.Speed = clampTo(a.Speed, limits.Speed)
	a.Gasoline = clampTo(a.Gasoline, limits.Gasoline)
	a.Rotation = clampTo(a.Rotation, limits.Rotation)
	a.Ammunition = clampTo(a.Ammunition, limits.Ammunition)
	a.Kinetics = clampTo(a.Kinetics, limits.Kinetics)
}

// Get returns the named attribute's value, and false for an unknown name.
func (a *Attributes) Get(name config.UpgradeKind) (float64, bool) {
	switch name {
	case config.UpgradeSpeed:
		return a.Speed, true
	case config.UpgradeGasoline:
		return a.Gasoline, true
	case config.UpgradeRotation:
		return a.Rotation, true
	case config.UpgradeAmmunition:
		return a.Ammunition, true
	case config.UpgradeKinetics:
		return a.Kinetics, true
	case config.UpgradeHealth:
		return a.Health, true
	}
	return 0, false
}

// ApplyDelta adds delta to the named attribute and clamps it to limits' max,
// returning false for an unknown name.
func (a *Attributes) ApplyDelta(name config.UpgradeKind, delta float64, limits config.AttributeLimits) bool {
	switch name {
	case config.UpgradeSpeed:
		a.Speed = clampTo(a.Speed+delta, limits.Speed)
	case config.UpgradeGasoline:
		a.Gasoline = clampTo(a.Gasoline+delta, limits.Gasoline)
	case config.UpgradeRotation:
		a.Rotation = clampTo(a.Rotation+delta, limits.Rotation)
	case config.UpgradeAmmunition:
		a.Ammunition = clampTo(a.Ammunition+delta, limits.Ammunition)
	case config.UpgradeKinetics:
		a.Kinetics = clampTo(a.Kinetics+delta, limits.Kinetics)
	case config.UpgradeHealth:
		a.Health = clampTo(a.Health+delta, limits.Health)
	default:
		return false
	}
	return true
}

// ApplyDamage decrements every field of d from a, clamping each to its
// configured minimum, never below.
func (a *Attributes) ApplyDamage(d config.DamageParams, limits config.AttributeLimits) {
	a.Health = clampTo(a.Health-d.Health, limits.Health)
	a.Speed = clampTo(a.Speed-d.Speed, limits.Speed)
	a.Rotation = clampTo(a.Rotation-d.Rotation, limits.Rotation)
	a.Kinetics = clampTo(a.Kinetics-d.Kinetics, limits.Kinetics)
	a.Gasoline = clampTo(a.Gasoline-d.Gasoline, limits.Gasoline)
}
