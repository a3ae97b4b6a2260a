// Package engine runs the authoritative fixed-timestep simulation: the
// accumulator-driven tick loop, per-step update ordering, the AI
// frame-skip cadence, and the broadcast scheduler. All GameState mutation
// happens on the tick goroutine; every other goroutine talks to it only by
// enqueuing a Command.
package engine

import (
	"log"
	"sync"
	"time"

	"tankarena/internal/config"
	"tankarena/internal/game"
	"tankarena/internal/game/ai"
	"tankarena/internal/game/spatial"
)

const (
	stepMs           = 1000.0 / 60 // Δ = 16.667ms, fixed 60Hz step
	maxCatchUpSteps  = 5
	aiStepEveryNFrames = 3
	inputQueueCapacity = 4096
)

// Command mutates GameState and the AI manager on the tick goroutine. All
// cross-goroutine requests (client input, admin events) are funneled
// through Command values so no lock is needed on the entity tables
// themselves.
type Command func(gs *game.GameState, aiMgr *ai.Manager, cfg *config.AppConfig)

// Engine owns the one GameState singleton for this arena and advances it on
// a dedicated goroutine.
type Engine struct {
	mu  sync.RWMutex
	cfg config.AppConfig

	state *game.GameState
	ai    *ai.Manager

	inputQueue *spatial.LockFreeQueue[Command]

	scheduler *Scheduler

	running  bool
	ticker   *time.Ticker
	stopChan chan struct{}

	accumulatorMs float64
	lastWake      time.Time
	gameTimeMs    float64
	stepCount     uint64
	skippedFrames uint64
	aiFrame       uint64

	onDamage func([]game.DamageEvent)
	onTick   func(time.Duration)
}

// New creates an engine with a freshly generated arena.
func New(cfg config.AppConfig) *Engine {
	return &Engine{
		cfg:        cfg,
		state:      game.NewGameState(cfg),
		ai:         ai.NewManager(),
		inputQueue: spatial.NewLockFreeQueue[Command](inputQueueCapacity),
		scheduler:  NewScheduler(),
		stopChan:   make(chan struct{}),
	}
}

// OnDamage registers a callback invoked with the damage events from each
// collision pass, used by the session layer to build damageFeedback events.
func (e *Engine) OnDamage(fn func([]game.DamageEvent)) {
	e.onDamage = fn
}

// OnTick registers a callback invoked with the wall-clock duration of
// every simulation step, used to feed the tick-duration metric.
func (e *Engine) OnTick(fn func(time.Duration)) {
	e.onTick = fn
}

// Scheduler exposes the broadcast-cadence scheduler so the session layer
// can register its snapshot callbacks.
func (e *Engine) Scheduler() *Scheduler {
	return e.scheduler
}

// Enqueue submits a command for the tick goroutine to run before its next
// step. Non-blocking; a full queue drops the command and logs (transient).
func (e *Engine) Enqueue(cmd Command) {
	if !e.inputQueue.TryPush(cmd) {
		log.Printf("engine: input queue full, dropping command")
	}
}

// Start begins the tick loop on a new goroutine.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.lastWake = time.Now()
	e.mu.Unlock()

	e.ticker = time.NewTicker(time.Millisecond * 4)

	go func() {
		for {
			select {
			case <-e.ticker.C:
				e.wake()
			case <-e.stopChan:
				return
			}
		}
	}()

	log.Printf("engine: tick loop started at target %.1f Hz", 1000/stepMs)
}

// Stop runs one last tick and broadcast, then halts the loop.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.running = false
	e.ticker.Stop()
	close(e.stopChan)

	e.drainCommands()
	e.safeStep()
	e.scheduler.Tick(e.gameTimeMs)

	log.Printf("engine: tick loop stopped at gameTime=%.0fms", e.gameTimeMs)
}

// wake is invoked by the wall-clock timer; it runs the fixed-Δ accumulator
// and advances as many Δ-sized steps as fit, capped to prevent spiral of
// death.
func (e *Engine) wake() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(e.lastWake).Seconds() * 1000
	e.lastWake = now
	e.accumulatorMs += elapsed

	steps := 0
	for e.accumulatorMs >= stepMs && steps < maxCatchUpSteps {
		e.drainCommands()
		e.safeStep()
		e.accumulatorMs -= stepMs
		steps++
	}
	if steps == maxCatchUpSteps && e.accumulatorMs >= stepMs {
		e.skippedFrames++
		e.accumulatorMs = 0
	}

	if steps > 0 {
		e.scheduler.Tick(e.gameTimeMs)
	}
}

func (e *Engine) drainCommands() {
	for {
		cmd, ok := e.inputQueue.TryPop()
		if !ok {
			return
		}
		cmd(e.state, e.ai, &e.cfg)
	}
}

// safeStep recovers a panic from any component, logs it, and drops the
// step rather than crashing the process.
func (e *Engine) safeStep() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("engine: recovered panic in tick step: %v", r)
		}
	}()
	start := time.Now()
	e.step()
	if e.onTick != nil {
		e.onTick(time.Since(start))
	}
}

// step runs the fixed per-tick update sequence exactly once.
func (e *Engine) step() {
	gs := e.state
	cfg := e.cfg

	gs.GameTimeMs += stepMs
	e.gameTimeMs = gs.GameTimeMs
	e.stepCount++

	treeGrid, trees := buildTreeQueryIndex(gs, cfg)
	for _, tank := range gs.Tanks {
		nearby := queryNearbyTrees(treeGrid, trees, tank.Position, 100)
		tank.Update(stepMs, gs.GameTimeMs, cfg.Arena, cfg.GameParams, cfg.AttributeLimits, nearby)
	}

	e.aiFrame++
	if e.aiFrame%aiStepEveryNFrames == 0 {
		shells := e.ai.Step(stepMs*aiStepEveryNFrames, gs.GameTimeMs, gs, cfg)
		for _, s := range shells {
			if len(gs.Shells) < cfg.Limits.MaxShells {
				gs.Shells = append(gs.Shells, s)
			}
		}
	}

	for _, shell := range gs.Shells {
		shell.Update(stepMs)
	}

	for _, tree := range gs.Trees {
		tree.Update(stepMs, gs.GameTimeMs)
	}

	events := game.CollisionPass(gs, cfg)
	if len(events) > 0 && e.onDamage != nil {
		e.onDamage(events)
	}

	game.RespawnUpgrades(gs, cfg.Arena, cfg.Upgrades)

	cullOffArenaShells(gs, cfg.Arena)
}

func cullOffArenaShells(gs *game.GameState, arena config.ArenaConfig) {
	for i := len(gs.Shells) - 1; i >= 0; i-- {
		if gs.Shells[i].OutOfArena(arena) {
			gs.RemoveShell(i)
		}
	}
}

// State returns the live GameState for read-only access from the tick
// goroutine's own callbacks (scheduler callbacks run synchronously inside
// wake/Stop, already holding e.mu).
func (e *Engine) State() *game.GameState {
	return e.state
}

// AI returns the AI manager, for admin commands that need its ID allocator.
func (e *Engine) AI() *ai.Manager {
	return e.ai
}

// Config returns the active configuration.
func (e *Engine) Config() config.AppConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg
}

// WithState runs fn with the engine's mutex held, for callers outside the
// tick goroutine that need a consistent read of the whole state.
func (e *Engine) WithState(fn func(gs *game.GameState)) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn(e.state)
}

// SkippedFrames returns the count of catch-up-cap overruns, for
// observability.
func (e *Engine) SkippedFrames() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.skippedFrames
}

// Counts is the entity-count summary the /health endpoint reports.
type Counts struct {
	Players  int
	Tanks    int
	Shells   int
	Upgrades int
	Trees    int
}

// Counts returns a point-in-time entity count summary. Safe to call from
// any goroutine other than the tick loop's own (e.g. the /health handler).
func (e *Engine) Counts() Counts {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.countsLocked()
}

// CountsUnlocked is Counts without acquiring e.mu, for use from a
// Scheduler callback: those already run on the tick goroutine with e.mu
// held by wake(), and RWMutex.RLock is not reentrant within one goroutine.
func (e *Engine) CountsUnlocked() Counts {
	return e.countsLocked()
}

func (e *Engine) countsLocked() Counts {
	return Counts{
		Players:  len(e.state.Players),
		Tanks:    len(e.state.Tanks),
		Shells:   len(e.state.Shells),
		Upgrades: len(e.state.Upgrades),
		Trees:    len(e.state.Trees),
	}
}

// SkippedFramesUnlocked is SkippedFrames without acquiring e.mu, for the
// same reason as CountsUnlocked.
func (e *Engine) SkippedFramesUnlocked() uint64 {
	return e.skippedFrames
}
