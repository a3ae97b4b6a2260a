package game

import (
	"math"

	"tankarena/internal/config"
	"tankarena/internal/mathutil"
)

const (
	tankCollisionRadius = 20 // circle radius used for tank<->tree resolution
	velocityEpsilon     = 1e-3
	rotationDeadzone    = 0.005
	velocityLerpFactor  = 0.12
	frictionFactor      = 0.7
	frictionSnap        = 0.1
)

// RecoilState is advisory animation state: replicated to clients but never
// consulted by gameplay logic.
type RecoilState struct {
	BodyOffset   mathutil.Vector2
	TurretOffset mathutil.Vector2
	PendulumT    float64 // seconds since last shot, drives the turret sine
}

// Tank is exclusively owned by GameState.Tanks, keyed by id.
type Tank struct {
	ID    string
	IsAI  bool
	Alive bool

	Position      mathutil.Vector2
	Angle         float64
	Velocity      mathutil.Vector2
	TargetVelocity mathutil.Vector2

	Attributes Attributes

	RespawnMs           float64
	ReloadMs            float64
	FiringImmunityUntil float64
	LastShotMs          float64

	Recoil RecoilState

	Bounds           mathutil.Bounds
	CollisionWidth   float64
	CollisionHeight  float64

	distanceSinceGasBurn float64 // accumulated this step, for telemetry only
}

// NewTank creates a tank at pos with full starting attributes.
func NewTank(id string, isAI bool, pos mathutil.Vector2, limits config.AttributeLimits) *Tank {
	t := &Tank{
		ID:              id,
		IsAI:            isAI,
		Alive:           true,
		Position:        pos,
		Attributes:      MaxAttributes(limits),
		CollisionWidth:  32,
		CollisionHeight: 24,
	}
	t.refreshBounds()
	return t
}

func (t *Tank) refreshBounds() {
	t.Bounds = mathutil.NewBoundsCentered(t.Position.X, t.Position.Y, t.CollisionWidth, t.CollisionHeight)
}

// CanShoot reports whether t may fire right now.
func (t *Tank) CanShoot() bool {
	return t.Alive && t.Attributes.Ammunition > 0 && t.ReloadMs <= 0
}

// Update advances tank physics by one fixed step of dtMs milliseconds.
// trees is the candidate set already narrowed by the caller's spatial query.
func (t *Tank) Update(dtMs float64, now float64, arena config.ArenaConfig, gp config.GameParams, limits config.AttributeLimits, nearbyTrees []*Tree) {
	if !t.Alive {
		t.RespawnMs -= dtMs
		if t.RespawnMs <= 0 {
			t.respawn(arena, limits)
		}
		return
	}

	if t.ReloadMs > 0 {
		t.ReloadMs -= dtMs
	}

	effectiveSpeed := t.Attributes.Speed
	if t.Attributes.Gasoline <= 0 {
		effectiveSpeed *= gp.GasolineSpeedPenalty
	}

	if t.TargetVelocity.Magnitude() > velocityEpsilon {
		targetAngle := math.Atan2(t.TargetVelocity.Y, t.TargetVelocity.X)
		maxDelta := t.Attributes.Rotation * 0.06 * dtMs / 1000
		diff := mathutil.NormalizeAngle(targetAngle - t.Angle)
		if math.Abs(diff) > rotationDeadzone {
			t.Angle = mathutil.RotateTowards(t.Angle, targetAngle, maxDelta)
		}

		dir := t.TargetVelocity.Normalized()
		dot := math.Cos(t.Angle)*dir.X + math.Sin(t.Angle)*dir.Y
		forward := math.Abs(dot) * effectiveSpeed
		sign := 1.0
		if dot < 0 {
			sign = -1.0
		}
		facing := mathutil.FromAngle(t.Angle)
		target := mathutil.ScaleVec(facing, forward*sign)
		t.Velocity = mathutil.Lerp(t.Velocity, target, velocityLerpFactor)
	} else {
		t.Velocity.Scale(frictionFactor)
		if t.Velocity.Magnitude() < frictionSnap {
			t.Velocity = mathutil.Vector2{}
		}
	}

	before := t.Position
	t.Position.Add(mathutil.ScaleVec(t.Velocity, dtMs/1000))

	t.resolveTreeCollisions(nearbyTrees)

	moved := mathutil.DistanceTo(before, t.Position)
	t.distanceSinceGasBurn = moved
	t.Attributes.Gasoline = clampTo(t.Attributes.Gasoline-moved*gp.GasolinePerUnit, limits.Gasoline)

	t.clampToArena(arena)
	t.refreshBounds()

	t.advanceRecoil(now)
}

func (t *Tank) clampToArena(arena config.ArenaConfig) {
	t.Position.X = mathutil.Clamp(t.Position.X, arena.TankMargin, arena.Width-arena.TankMargin)
	t.Position.Y = mathutil.Clamp(t.Position.Y, arena.TankMargin, arena.Height-arena.TankMargin)
}

// resolveTreeCollisions runs the continuous tank<->tree circle test:
// reflect the inward velocity component, apply friction, and trigger a
// tree impact.
func (t *Tank) resolveTreeCollisions(nearby []*Tree) {
	for _, tree := range nearby {
		trunkCenter := mathutil.Vector2{X: tree.Position.X, Y: tree.Position.Y - tree.Size/2}
		trunkRadius := tree.Size / 16
		delta := mathutil.SubVec(t.Position, trunkCenter)
		dist := delta.Magnitude()
		limit := tankCollisionRadius + trunkRadius
		if dist >= limit || dist < 1e-6 {
			continue
		}

		normal := mathutil.ScaleVec(delta, 1/dist)
		overlap := limit - dist
		t.Position.Add(mathutil.ScaleVec(normal, overlap))

		inward := normal.X*t.Velocity.X + normal.Y*t.Velocity.Y
		if inward < 0 {
			reflected := mathutil.ScaleVec(normal, -inward*1.8) // remove inward, add restitution back out
			t.Velocity.Add(reflected)
			t.Velocity.Scale(0.95) // 5% friction on both components
		}

		force := math.Min(math.Abs(inward)/10, 5)
		tree.Impact(normal, force)
	}
}

func (t *Tank) advanceRecoil(now float64) {
	elapsed := (now - t.LastShotMs) / 1000
	if elapsed < 0 {
		elapsed = 0
	}
	t.Recoil.PendulumT = elapsed

	const recoilDuration = 1.0
	progress := elapsed / recoilDuration
	if progress > 1 {
		progress = 1
	}
	ease := 1 - math.Pow(1-progress, 3) // easeOutCubic
	decay := 1 - ease

	facing := mathutil.FromAngle(t.Angle)
	t.Recoil.BodyOffset = mathutil.ScaleVec(facing, -4*decay)
	pendulum := math.Sin(elapsed*18) * decay * 0.15
	t.Recoil.TurretOffset = mathutil.Vector2{X: pendulum, Y: 0}
}

// Fire attempts to shoot. On success it returns the new shell and true,
// mutating ammo/reload/timers. On failure (can't shoot) it returns false.
func (t *Tank) Fire(now float64, gp config.GameParams, shellID string) (*Shell, bool) {
	if !t.CanShoot() {
		return nil, false
	}
	t.Attributes.Ammunition--
	t.ReloadMs = gp.ReloadTimeMs
	t.LastShotMs = now
	t.FiringImmunityUntil = now + gp.FiringImmunityMs

	facing := mathutil.FromAngle(t.Angle)
	muzzle := mathutil.AddVec(t.Position, mathutil.ScaleVec(facing, 20))
	vel := mathutil.ScaleVec(facing, t.Attributes.Kinetics)

	shell := NewShell(shellID, t.ID, muzzle, vel, now, t.FiringImmunityUntil)
	return shell, true
}

// TakeDamage applies the damage vector if all domain rules allow it
// (alive, past own firing immunity, shell not still immune if it is the
// tank's own). Returns true if damage was applied, false for a silently
// ignored stateful outcome (self-damage during immunity, already dead).
func (t *Tank) TakeDamage(now float64, shooterID string, shellImmunityUntil float64, d config.DamageParams, limits config.AttributeLimits, respawnMs float64) bool {
	if !t.Alive {
		return false
	}
	if now < t.FiringImmunityUntil {
		return false
	}
	if shooterID == t.ID && now < shellImmunityUntil {
		return false
	}

	t.Attributes.ApplyDamage(d, limits)
	if t.Attributes.Health <= 0 {
		t.die(respawnMs)
	}
	return true
}

func (t *Tank) die(respawnMs float64) {
	t.Alive = false
	t.Velocity = mathutil.Vector2{}
	t.TargetVelocity = mathutil.Vector2{}
	t.RespawnMs = respawnMs
}

func (t *Tank) respawn(arena config.ArenaConfig, limits config.AttributeLimits) {
	t.Alive = true
	t.Attributes = MaxAttributes(limits)
	t.Velocity = mathutil.Vector2{}
	t.TargetVelocity = mathutil.Vector2{}
	t.ReloadMs = 0
	t.Position = randomArenaPosition(arena)
	t.refreshBounds()
}
