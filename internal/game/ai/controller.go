package ai

import (
	"math"
	"math/rand"

	"tankarena/internal/config"
	"tankarena/internal/game"
	"tankarena/internal/mathutil"
)

// TargetKind tags what a Controller is currently pursuing.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetEnemy
	TargetUpgrade
)

const (
	treeAvoidRadius    = 80
	strafeRange        = 150
	upgradeReleaseDist = 25
	stuckWindowMs      = 3000
	stuckDistance      = 20
	wanderSpeedScale   = 0.4
)

// Controller drives one AI tank. One instance per AI tank, held by the
// engine and stepped every aiStepEveryNFrames-th frame (path-following)
// with decisions gated to DecisionIntervalMs.
type Controller struct {
	TankID  string
	Level   Level
	Profile Profile

	TargetID   string
	TargetKind TargetKind

	LastDecisionMs float64
	LastShotMs     float64

	WanderWaypoint mathutil.Vector2
	hasWaypoint    bool

	stuckCheckAtMs  float64
	stuckCheckedPos mathutil.Vector2
}

// NewController creates a controller for tankID at the given difficulty.
func NewController(tankID string, level Level) *Controller {
	return &Controller{
		TankID:  tankID,
		Level:   level,
		Profile: ProfileFor(level),
	}
}

func (c *Controller) invalidateTarget() {
	c.TargetID = ""
	c.TargetKind = TargetNone
}

// Step runs one tick of this controller: gated decision-making plus
// every-step path execution. Returns a fired shell, or nil.
func (c *Controller) Step(dtMs, now float64, gs *game.GameState, cfg config.AppConfig, nav *navMesh) *game.Shell {
	tank, ok := gs.Tanks[c.TankID]
	if !ok || !tank.Alive {
		return nil
	}

	if now-c.LastDecisionMs >= c.Profile.DecisionIntervalMs {
		c.decide(now, tank, gs, cfg)
		c.LastDecisionMs = now
	}

	c.checkStuck(now, tank)

	return c.execute(dtMs, now, tank, gs, cfg, nav)
}

// decide implements the target-selection priority chain.
func (c *Controller) decide(now float64, tank *game.Tank, gs *game.GameState, cfg config.AppConfig) {
	limits := cfg.AttributeLimits
	a := tank.Attributes

	ratio := func(v, max float64) float64 {
		if max <= 0 {
			return 0
		}
		return v / max
	}

	healthRatio := ratio(a.Health, limits.Health.Max)
	ammoRatio := ratio(a.Ammunition, limits.Ammunition.Max)

	prevTarget, prevKind := c.TargetID, c.TargetKind
	defer func() {
		if c.TargetID != prevTarget || c.TargetKind != prevKind {
			c.hasWaypoint = false
		}
	}()

	if a.Ammunition <= 0 {
		if u := nearestUpgrade(gs, tank.Position, config.UpgradeAmmunition); u != nil {
			c.TargetID, c.TargetKind = u.ID, TargetUpgrade
			return
		}
	}

	mostNeeded, needRatio := mostNeededAttribute(a, limits)
	if needRatio < 0.25 {
		if u := nearestUpgrade(gs, tank.Position, mostNeeded); u != nil {
			c.TargetID, c.TargetKind = u.ID, TargetUpgrade
			return
		}
	}

	if a.Gasoline < 30 {
		if u := nearestUpgrade(gs, tank.Position, config.UpgradeGasoline); u != nil {
			c.TargetID, c.TargetKind = u.ID, TargetUpgrade
			return
		}
	}

	if a.Ammunition < 5 {
		if u := nearestUpgrade(gs, tank.Position, config.UpgradeAmmunition); u != nil {
			c.TargetID, c.TargetKind = u.ID, TargetUpgrade
			return
		}
	}

	retreating := healthRatio < c.Profile.RetreatHealthRatio

	if a.Ammunition > 3 && !retreating {
		if enemy := bestEnemyTarget(gs, tank, limits); enemy != nil {
			c.TargetID, c.TargetKind = enemy.ID, TargetEnemy
			return
		}
	}

	if retreating || needRatio < 0.5 || ammoRatio < 0.3 {
		if u := nearestUpgrade(gs, tank.Position, mostNeeded); u != nil {
			c.TargetID, c.TargetKind = u.ID, TargetUpgrade
			return
		}
	}

	c.invalidateTarget()
}

func mostNeededAttribute(a game.Attributes, limits config.AttributeLimits) (config.UpgradeKind, float64) {
	type entry struct {
		kind  config.UpgradeKind
		ratio float64
	}
	entries := []entry{
		{config.UpgradeHealth, a.Health / limits.Health.Max},
		{config.UpgradeSpeed, a.Speed / limits.Speed.Max},
		{config.UpgradeGasoline, a.Gasoline / limits.Gasoline.Max},
		{config.UpgradeRotation, a.Rotation / limits.Rotation.Max},
		{config.UpgradeAmmunition, a.Ammunition / limits.Ammunition.Max},
		{config.UpgradeKinetics, a.Kinetics / limits.Kinetics.Max},
	}
	best := entries[0]
	for _, e := range entries[1:] {
		if e.ratio < best.ratio {
			best = e
		}
	}
	return best.kind, best.ratio
}

func nearestUpgrade(gs *game.GameState, from mathutil.Vector2, kind config.UpgradeKind) *game.Upgrade {
	var best *game.Upgrade
	bestDist := math.MaxFloat64
	for _, u := range gs.Upgrades {
		if u.Collected || u.Kind != kind {
			continue
		}
		d := mathutil.DistanceSq(from, u.Position)
		if d < bestDist {
			bestDist = d
			best = u
		}
	}
	return best
}

// bestEnemyTarget scores every other alive tank by 100/distance +
// (1-healthRatio)*50 and returns the highest scorer.
func bestEnemyTarget(gs *game.GameState, self *game.Tank, limits config.AttributeLimits) *game.Tank {
	var best *game.Tank
	bestScore := -math.MaxFloat64
	for id, t := range gs.Tanks {
		if id == self.ID || !t.Alive {
			continue
		}
		dist := mathutil.DistanceTo(self.Position, t.Position)
		if dist < 1e-6 {
			dist = 1e-6
		}
		healthRatio := 0.0
		if t.Attributes.Health > 0 && limits.Health.Max > 0 {
			healthRatio = t.Attributes.Health / limits.Health.Max
		}
		score := 100/dist + (1-healthRatio)*50
		if score > bestScore {
			bestScore = score
			best = t
		}
	}
	return best
}

func (c *Controller) checkStuck(now float64, tank *game.Tank) {
	if now-c.stuckCheckAtMs < stuckWindowMs {
		return
	}
	moved := mathutil.DistanceTo(tank.Position, c.stuckCheckedPos)
	if c.stuckCheckAtMs > 0 && moved < stuckDistance {
		angle := rand.Float64() * 2 * math.Pi
		tank.TargetVelocity = mathutil.ScaleVec(mathutil.FromAngle(angle), tank.Attributes.Speed*0.8)
		c.invalidateTarget()
	}
	c.stuckCheckAtMs = now
	c.stuckCheckedPos = tank.Position
}

// execute runs every-step path following plus interval-gated firing.
func (c *Controller) execute(dtMs, now float64, tank *game.Tank, gs *game.GameState, cfg config.AppConfig, nav *navMesh) *game.Shell {
	switch c.TargetKind {
	case TargetEnemy:
		enemy, ok := gs.Tanks[c.TargetID]
		if !ok || !enemy.Alive {
			c.invalidateTarget()
			return c.wander(tank, gs, cfg, nav)
		}
		return c.pursueEnemy(now, tank, enemy, gs, cfg, nav)
	case TargetUpgrade:
		up := findUpgrade(gs, c.TargetID)
		if up == nil || up.Collected {
			c.invalidateTarget()
			return c.wander(tank, gs, cfg, nav)
		}
		c.approach(tank, up.Position, 1.0, gs, cfg, nav)
		if mathutil.DistanceTo(tank.Position, up.Position) <= upgradeReleaseDist {
			c.invalidateTarget()
		}
		return nil
	default:
		return c.wander(tank, gs, cfg, nav)
	}
}

func findUpgrade(gs *game.GameState, id string) *game.Upgrade {
	for _, u := range gs.Upgrades {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (c *Controller) wander(tank *game.Tank, gs *game.GameState, cfg config.AppConfig, nav *navMesh) *game.Shell {
	if !c.hasWaypoint || mathutil.DistanceTo(tank.Position, c.WanderWaypoint) < 40 {
		c.WanderWaypoint = randomWaypoint(cfg.Arena)
		c.hasWaypoint = true
	}
	c.approach(tank, c.WanderWaypoint, wanderSpeedScale, gs, cfg, nav)
	return nil
}

func randomWaypoint(arena config.ArenaConfig) mathutil.Vector2 {
	return mathutil.Vector2{X: rand.Float64() * arena.Width, Y: rand.Float64() * arena.Height}
}

// approach sets targetVelocity toward goal. Past longRangeDist it follows
// the shared flow field's routing around tree clusters rather than a
// straight line; either way the result is blended with close-range local
// tree repulsion, scaled by speedScale.
func (c *Controller) approach(tank *game.Tank, goal mathutil.Vector2, speedScale float64, gs *game.GameState, cfg config.AppConfig, nav *navMesh) {
	toGoal := mathutil.SubVec(goal, tank.Position)
	dist := toGoal.Magnitude()
	if dist < 1e-6 {
		tank.TargetVelocity = mathutil.Vector2{}
		return
	}

	goalDir := mathutil.ScaleVec(toGoal, 1/dist)
	if nav != nil && dist > longRangeDist {
		if routed := nav.direction(tank.Position, goal); routed.Magnitude() > 1e-6 {
			goalDir = routed
		}
	}

	avoidance := obstacleAvoidance(tank.Position, gs.Trees)
	if dist < 50 {
		avoidance = mathutil.Vector2{}
	}

	blended := mathutil.AddVec(goalDir, mathutil.ScaleVec(avoidance, 0.5)).Normalized()
	tank.TargetVelocity = mathutil.ScaleVec(blended, tank.Attributes.Speed*speedScale)
}

func obstacleAvoidance(pos mathutil.Vector2, trees []*game.Tree) mathutil.Vector2 {
	sum := mathutil.Vector2{}
	for _, tree := range trees {
		d := mathutil.DistanceTo(pos, tree.Position)
		if d >= treeAvoidRadius || d < 1e-6 {
			continue
		}
		away := mathutil.ScaleVec(mathutil.SubVec(pos, tree.Position), 1/d)
		weight := treeAvoidRadius / d
		sum.Add(mathutil.ScaleVec(away, weight))
	}
	return sum
}

func (c *Controller) pursueEnemy(now float64, tank *game.Tank, enemy *game.Tank, gs *game.GameState, cfg config.AppConfig, nav *navMesh) *game.Shell {
	dist := mathutil.DistanceTo(tank.Position, enemy.Position)
	toEnemy := mathutil.SubVec(enemy.Position, tank.Position)
	facing := toEnemy.Normalized()

	switch {
	case dist < strafeRange:
		sign := 1.0
		if rand.Float64() < 0.5 {
			sign = -1.0
		}
		side := mathutil.Vector2{X: -facing.Y, Y: facing.X}
		tank.TargetVelocity = mathutil.ScaleVec(side, tank.Attributes.Speed*sign)
	case dist > c.Profile.EngagementRange:
		c.approach(tank, enemy.Position, 1.0, gs, cfg, nav)
	default:
		roll := rand.Float64()
		switch {
		case roll < 0.4:
			tank.TargetVelocity = mathutil.Vector2{}
		case roll < 0.7:
			c.approach(tank, enemy.Position, 0.6, gs, cfg, nav)
		default:
			side := mathutil.Vector2{X: -facing.Y, Y: facing.X}
			sign := 1.0
			if rand.Float64() < 0.5 {
				sign = -1.0
			}
			tank.TargetVelocity = mathutil.ScaleVec(side, tank.Attributes.Speed*sign)
		}
	}
	tank.Angle = mathutil.RotateTowards(tank.Angle, math.Atan2(toEnemy.Y, toEnemy.X), math.Pi)

	return c.tryFire(now, tank, enemy, dist, gs, cfg)
}

// tryFire applies the predictive-aim, accuracy-roll firing gate.
func (c *Controller) tryFire(now float64, tank *game.Tank, enemy *game.Tank, dist float64, gs *game.GameState, cfg config.AppConfig) *game.Shell {
	if now-c.LastShotMs < c.Profile.MinShotIntervalMs {
		return nil
	}
	if dist < 30 || dist > 400 {
		return nil
	}
	if !tank.CanShoot() {
		return nil
	}

	toEnemy := mathutil.SubVec(enemy.Position, tank.Position)
	perpSpeed := perpendicularSpeed(toEnemy, enemy.Velocity)
	if perpSpeed >= 8 {
		return nil
	}

	predictionFactor := 0.8 + rand.Float64()*0.4
	timeToTarget := dist / math.Max(tank.Attributes.Kinetics, 1)
	predicted := mathutil.AddVec(enemy.Position, mathutil.ScaleVec(enemy.Velocity, timeToTarget*predictionFactor))
	aimDir := mathutil.SubVec(predicted, tank.Position).Normalized()
	aimAngle := math.Atan2(aimDir.Y, aimDir.X)
	angleErr := math.Abs(mathutil.NormalizeAngle(aimAngle - tank.Angle))

	threshold := 0.8
	if enemy.Velocity.Magnitude() < 10 {
		threshold = 1.2
	}
	if angleErr > threshold {
		return nil
	}
	if rand.Float64() > c.Profile.Accuracy {
		return nil
	}

	tank.Angle = aimAngle
	shell, fired := tank.Fire(now, cfg.GameParams, gs.NewShellID())
	if !fired {
		return nil
	}
	c.LastShotMs = now
	return shell
}

func perpendicularSpeed(toTarget, velocity mathutil.Vector2) float64 {
	dir := toTarget.Normalized()
	perp := mathutil.Vector2{X: -dir.Y, Y: dir.X}
	return math.Abs(perp.X*velocity.X + perp.Y*velocity.Y)
}
