package engine

// Category names one of the four broadcast cadences from the tick
// scheduler: critical 60/s, standard 30/s, low 10/s, static 1/s.
type Category string

const (
	Critical Category = "critical"
	Standard Category = "standard"
	Low      Category = "low"
	Static   Category = "static"
)

var categoryIntervalMs = map[Category]float64{
	Critical: 1000.0 / 60,
	Standard: 1000.0 / 30,
	Low:      1000.0 / 10,
	Static:   1000.0 / 1,
}

// Scheduler fires registered callbacks at their category's cadence, driven
// off the tick thread's wall clock rather than its own timer — it never
// sleeps, it only checks "has enough time passed" once per tick.
type Scheduler struct {
	lastFiredMs map[Category]float64
	callbacks   map[Category][]func(nowMs float64)
}

// NewScheduler creates a scheduler whose categories first fire once their
// interval has elapsed since gameTime 0.
func NewScheduler() *Scheduler {
	return &Scheduler{
		lastFiredMs: make(map[Category]float64),
		callbacks:   make(map[Category][]func(nowMs float64)),
	}
}

// On registers fn to run every time cat's cadence elapses.
func (s *Scheduler) On(cat Category, fn func(nowMs float64)) {
	s.callbacks[cat] = append(s.callbacks[cat], fn)
}

// Tick checks every category against nowMs and fires any callback whose
// interval has elapsed.
func (s *Scheduler) Tick(nowMs float64) {
	for cat, interval := range categoryIntervalMs {
		if nowMs-s.lastFiredMs[cat] < interval {
			continue
		}
		s.lastFiredMs[cat] = nowMs
		for _, fn := range s.callbacks[cat] {
			fn(nowMs)
		}
	}
}
