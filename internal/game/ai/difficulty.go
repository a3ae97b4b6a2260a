// Package ai implements the per-tank opponent controller: target selection,
// frame-skipped decision making, obstacle-avoided movement, and predictive
// firing.
package ai

// Level names a difficulty tier. Difficulty never alters starting
// attributes — only decision and shot cadence, accuracy, retreat threshold,
// and preferred range.
type Level string

const (
	Easy         Level = "easy"
	Intermediate Level = "intermediate"
	Hard         Level = "hard"
	Insane       Level = "insane"
)

// Profile is the tuning bundle selected by Level.
type Profile struct {
	DecisionIntervalMs float64
	MinShotIntervalMs  float64
	Accuracy           float64
	RetreatHealthRatio float64
	EngagementRange    float64
}

// Profiles maps every difficulty tier to its tuning.
var Profiles = map[Level]Profile{
	Easy:         {DecisionIntervalMs: 1200, MinShotIntervalMs: 1400, Accuracy: 0.35, RetreatHealthRatio: 0.35, EngagementRange: 180},
	Intermediate: {DecisionIntervalMs: 800, MinShotIntervalMs: 1000, Accuracy: 0.55, RetreatHealthRatio: 0.3, EngagementRange: 220},
	Hard:         {DecisionIntervalMs: 500, MinShotIntervalMs: 700, Accuracy: 0.75, RetreatHealthRatio: 0.25, EngagementRange: 260},
	Insane:       {DecisionIntervalMs: 300, MinShotIntervalMs: 450, Accuracy: 0.92, RetreatHealthRatio: 0.2, EngagementRange: 300},
}

// ProfileFor returns the tuning for level, falling back to Intermediate for
// an unrecognized name (configuration error, not fatal).
func ProfileFor(level Level) Profile {
	if p, ok := Profiles[level]; ok {
		return p
	}
	return Profiles[Intermediate]
}
