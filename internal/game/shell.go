package game

import (
	"tankarena/internal/config"
	"tankarena/internal/mathutil"
)

const shellCollisionRadius = 4

// Shell is owned by GameState.Shells; destroyed on any collision or when it
// leaves the arena.
type Shell struct {
	ID                   string
	ShooterID            string
	Position             mathutil.Vector2
	Velocity             mathutil.Vector2
	CreatedAtMs          float64
	ShooterImmunityUntil float64
	Bounds               mathutil.Bounds
}

// NewShell constructs a shell at pos traveling at vel, inheriting the
// shooter's firing-immunity timestamp so it cannot damage its own tank
// while clearing the barrel.
func NewShell(id, shooterID string, pos, vel mathutil.Vector2, now, shooterImmunityUntil float64) *Shell {
	s := &Shell{
		ID:                   id,
		ShooterID:            shooterID,
		Position:             pos,
		Velocity:             vel,
		CreatedAtMs:          now,
		ShooterImmunityUntil: shooterImmunityUntil,
	}
	s.refreshBounds()
	return s
}

func (s *Shell) refreshBounds() {
	s.Bounds = mathutil.NewBoundsCentered(s.Position.X, s.Position.Y, shellCollisionRadius*2, shellCollisionRadius*2)
}

// Update integrates position by one fixed step.
func (s *Shell) Update(dtMs float64) {
	s.Position.Add(mathutil.ScaleVec(s.Velocity, dtMs/1000))
	s.refreshBounds()
}

// OutOfArena reports whether the shell has left the playfield and should be
// culled.
func (s *Shell) OutOfArena(arena config.ArenaConfig) bool {
	return s.Position.X < 0 || s.Position.X > arena.Width ||
		s.Position.Y < 0 || s.Position.Y > arena.Height
}

// IsFast reports whether the shell is moving fast enough to require the
// anti-tunneling fallback test.
func (s *Shell) IsFast() bool {
	return s.Velocity.Magnitude() > 10
}
