package game

import (
	"testing"

	"tankarena/internal/config"
	"tankarena/internal/mathutil"
)

func TestNewTankStartsAtMaxAttributes(t *testing.T) {
	limits := config.DefaultAttributeLimits()
	tank := NewTank("t1", false, mathutil.Vector2{X: 100, Y: 100}, limits)
	if !tank.Alive {
		t.Error("a fresh tank should be alive")
	}
	if tank.Attributes.Health != limits.Health.Max {
		t.Errorf("Health = %v, want max %v", tank.Attributes.Health, limits.Health.Max)
	}
}

func TestCanShootRequiresAmmoAliveAndReload(t *testing.T) {
	limits := config.DefaultAttributeLimits()
	tank := NewTank("t1", false, mathutil.Vector2{}, limits)

	if !tank.CanShoot() {
		t.Error("a fresh tank with ammo and no reload timer should be able to shoot")
	}

	tank.ReloadMs = 500
	if tank.CanShoot() {
		t.Error("a tank mid-reload should not be able to shoot")
	}
	tank.ReloadMs = 0

	tank.Attributes.Ammunition = 0
	if tank.CanShoot() {
		t.Error("a tank with no ammo should not be able to shoot")
	}
	tank.Attributes.Ammunition = limits.Ammunition.Max

	tank.Alive = false
	if tank.CanShoot() {
		t.Error("a dead tank should not be able to shoot")
	}
}

func TestFireConsumesAmmoAndStartsReload(t *testing.T) {
	limits := config.DefaultAttributeLimits()
	tank := NewTank("t1", false, mathutil.Vector2{}, limits)
	gp := config.DefaultGameParams()
	before := tank.Attributes.Ammunition

	shell, ok := tank.Fire(1000, gp, "shell-1")
	if !ok {
		t.Fatal("Fire should succeed on a fresh tank")
	}
	if shell.ShooterID != tank.ID {
		t.Errorf("shell.ShooterID = %q, want %q", shell.ShooterID, tank.ID)
	}
	if tank.Attributes.Ammunition != before-1 {
		t.Errorf("Ammunition = %v, want %v", tank.Attributes.Ammunition, before-1)
	}
	if tank.ReloadMs != gp.ReloadTimeMs {
		t.Errorf("ReloadMs = %v, want %v", tank.ReloadMs, gp.ReloadTimeMs)
	}
}

func TestFireFailsWhenCannotShoot(t *testing.T) {
	limits := config.DefaultAttributeLimits()
	tank := NewTank("t1", false, mathutil.Vector2{}, limits)
	tank.Attributes.Ammunition = 0
	gp := config.DefaultGameParams()

	_, ok := tank.Fire(1000, gp, "shell-1")
	if ok {
		t.Error("Fire should fail with no ammunition")
	}
}

func TestTakeDamageIgnoredDuringOwnFiringImmunity(t *testing.T) {
	limits := config.DefaultAttributeLimits()
	tank := NewTank("t1", false, mathutil.Vector2{}, limits)
	tank.FiringImmunityUntil = 1000
	dmg := config.DefaultDamageParams()

	applied := tank.TakeDamage(500, "other", 0, dmg, limits, 2000)
	if applied {
		t.Error("damage during own firing immunity should be ignored")
	}
	if tank.Attributes.Health != limits.Health.Max {
		t.Error("health should be unchanged when damage is ignored")
	}
}

func TestTakeDamageIgnoredOnSelfDamageDuringShellImmunity(t *testing.T) {
	limits := config.DefaultAttributeLimits()
	tank := NewTank("t1", false, mathutil.Vector2{}, limits)
	dmg := config.DefaultDamageParams()

	applied := tank.TakeDamage(500, tank.ID, 1000, dmg, limits, 2000)
	if applied {
		t.Error("self-damage during the shell's own immunity window should be ignored")
	}
}

func TestTakeDamageKillsAtZeroHealth(t *testing.T) {
	limits := config.DefaultAttributeLimits()
	tank := NewTank("t1", false, mathutil.Vector2{}, limits)
	tank.Attributes.Health = 1
	dmg := config.DefaultDamageParams()

	applied := tank.TakeDamage(500, "other", 0, dmg, limits, 3000)
	if !applied {
		t.Fatal("damage should apply to a tank outside any immunity window")
	}
	if tank.Alive {
		t.Error("tank should die once health reaches zero")
	}
	if tank.RespawnMs != 3000 {
		t.Errorf("RespawnMs = %v, want 3000", tank.RespawnMs)
	}
}

func TestTakeDamageOnDeadTankIsNoop(t *testing.T) {
	limits := config.DefaultAttributeLimits()
	tank := NewTank("t1", false, mathutil.Vector2{}, limits)
	tank.Alive = false
	dmg := config.DefaultDamageParams()

	if tank.TakeDamage(500, "other", 0, dmg, limits, 3000) {
		t.Error("damage to an already-dead tank should be a no-op")
	}
}

func TestUpdateRespawnsTankAfterTimer(t *testing.T) {
	limits := config.DefaultAttributeLimits()
	arena := config.DefaultArena()
	gp := config.DefaultGameParams()
	tank := NewTank("t1", false, mathutil.Vector2{}, limits)
	tank.die(100)

	tank.Update(50, 50, arena, gp, limits, nil)
	if tank.Alive {
		t.Error("tank should still be dead before the respawn timer elapses")
	}

	tank.Update(60, 110, arena, gp, limits, nil)
	if !tank.Alive {
		t.Error("tank should respawn once RespawnMs reaches zero")
	}
}

func TestUpdateClampsPositionToArena(t *testing.T) {
	limits := config.DefaultAttributeLimits()
	arena := config.DefaultArena()
	gp := config.DefaultGameParams()
	tank := NewTank("t1", false, mathutil.Vector2{X: arena.TankMargin, Y: arena.TankMargin}, limits)
	tank.TargetVelocity = mathutil.Vector2{X: -1000, Y: -1000}

	for i := 0; i < 50; i++ {
		tank.Update(16, float64(i)*16, arena, gp, limits, nil)
	}

	if tank.Position.X < arena.TankMargin-1e-6 || tank.Position.Y < arena.TankMargin-1e-6 {
		t.Errorf("Position = %+v, want clamped at >= margin %v", tank.Position, arena.TankMargin)
	}
}
