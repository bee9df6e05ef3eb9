// Package engine implements the falling-word simulation and keystroke matcher.
//
// An Engine owns a Registry of words and drives it from three sources:
//   - a motion ticker (~60 Hz) that moves words, misses deadline crossers and prunes
//   - a spawn ticker whose cadence comes from the mode x difficulty table
//   - HandleKey, fed by the caller's input loop
//
// All three are serialized by one mutex; no callback observes a half-applied
// mutation. Notifications are collected under the lock and delivered to the
// EventSink right after it is released, in mutation order.
package engine

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/samber/oops"

	"github.com/lixenwraith/word-rain/parameter"
	"github.com/lixenwraith/word-rain/status"
)

// Engine is the falling-word simulation
type Engine struct {
	// lifeMu serializes lifecycle transitions, which may wait on ticker goroutines
	lifeMu sync.Mutex

	mu           sync.Mutex
	settings     Settings
	table        parameter.Table
	row          parameter.Settings
	streakPolicy StreakPolicy
	registry     *Registry
	factory      *Factory
	rng          *rand.Rand
	clock        *PausableClock
	lastMotion   time.Time
	roundStart   uint64
	streak       int
	running      bool
	paused       bool
	stopped      bool
	pending      []pendingEvent

	sink    EventSink
	log     zerolog.Logger
	session string
	metrics engineMetrics

	motion *ClockScheduler
	spawn  *ClockScheduler
}

// engineMetrics caches status registry pointers
type engineMetrics struct {
	spawned   *atomic.Int64
	completed *atomic.Int64
	missed    *atomic.Int64
	live      *atomic.Int64
	mistypes  *atomic.Int64
	broken    *atomic.Int64
	streak    *atomic.Int64
	ticks     *atomic.Int64
}

// New validates the configuration and builds a stopped engine
// Configuration errors are returned here; the engine never starts in a degraded state
func New(cfg Config) (*Engine, error) {
	table := cfg.Table
	if table == nil {
		table = parameter.DefaultTable()
	} else {
		table = table.Clone()
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}

	settings := cfg.Settings.clone()
	row, err := settings.resolve(table)
	if err != nil {
		return nil, err
	}

	source := cfg.Clock
	if source == nil {
		source = NewMonotonicTimeProvider()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(source.Now().UnixNano()))
	}
	sink := cfg.Sink
	if sink == nil {
		sink = SinkFuncs{}
	}
	reg := cfg.Status
	if reg == nil {
		reg = status.NewRegistry()
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	session := ulid.Make().String()
	e := &Engine{
		settings:     settings,
		table:        table,
		row:          row,
		streakPolicy: cfg.StreakPolicy,
		registry:     NewRegistry(),
		rng:          rng,
		clock:        NewPausableClock(source),
		sink:         sink,
		session:      session,
		log:          logger.With().Str("component", "engine").Str("session", session).Logger(),
		metrics: engineMetrics{
			spawned:   reg.Int(status.KeyWordsSpawned),
			completed: reg.Int(status.KeyWordsCompleted),
			missed:    reg.Int(status.KeyWordsMissed),
			live:      reg.Int(status.KeyWordsLive),
			mistypes:  reg.Int(status.KeyMistypes),
			broken:    reg.Int(status.KeyMistypesBroken),
			streak:    reg.Int(status.KeyStreak),
			ticks:     reg.Int(status.KeyTicks),
		},
	}
	e.factory = NewFactory(rng, settings.Category, settings.CustomWords, row)
	motionInterval := parameter.MotionInterval
	if cfg.MotionInterval > 0 {
		motionInterval = cfg.MotionInterval
	}
	e.motion = NewClockScheduler("motion", source, motionInterval, e.Tick)
	e.spawn = NewClockScheduler("spawn", source, row.SpawnInterval, func() { e.Spawn() })

	return e, nil
}

// Session returns the unique id of this engine instance, used to correlate logs
func (e *Engine) Session() string {
	return e.session
}

// Start activates the simulation and both tickers
func (e *Engine) Start() error {
	e.lifeMu.Lock()
	defer e.lifeMu.Unlock()

	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return errStopped("start")
	}
	if e.running {
		e.mu.Unlock()
		return nil
	}
	e.running = true
	e.paused = false
	e.clock.Resume()
	e.lastMotion = e.clock.Now()
	e.mu.Unlock()

	e.motion.Start()
	e.spawn.Start()

	e.log.Info().
		Str("mode", string(e.settings.Mode)).
		Str("difficulty", string(e.settings.Difficulty)).
		Str("category", string(e.settings.Category)).
		Msg("engine started")
	return nil
}

// Pause freezes motion, spawning and keystroke handling without touching word state
func (e *Engine) Pause() {
	e.lifeMu.Lock()
	defer e.lifeMu.Unlock()

	e.mu.Lock()
	if !e.running || e.paused {
		e.mu.Unlock()
		return
	}
	e.paused = true
	e.clock.Pause()
	e.mu.Unlock()

	e.motion.Stop()
	e.spawn.Stop()
	e.log.Info().Msg("engine paused")
}

// Resume restarts both tickers fresh; paused time is not replayed
func (e *Engine) Resume() error {
	e.lifeMu.Lock()
	defer e.lifeMu.Unlock()

	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return errStopped("resume")
	}
	if !e.running || !e.paused {
		e.mu.Unlock()
		return nil
	}
	e.paused = false
	e.clock.Resume()
	e.lastMotion = e.clock.Now()
	e.mu.Unlock()

	e.motion.Start()
	e.spawn.Start()
	e.log.Info().Msg("engine resumed")
	return nil
}

// Stop tears the engine down; both tickers are stopped before it returns
// Stop is terminal and idempotent
func (e *Engine) Stop() {
	e.lifeMu.Lock()
	defer e.lifeMu.Unlock()

	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	e.running = false
	e.paused = false
	e.pending = nil
	e.mu.Unlock()

	e.motion.Stop()
	e.spawn.Stop()
	e.log.Info().Msg("engine stopped")
}

// Restart clears the registry, buffer, target and streak under the current settings
func (e *Engine) Restart() {
	e.mu.Lock()
	e.resetLocked()
	e.mu.Unlock()
	e.log.Info().Msg("engine restarted")
}

// Reconfigure validates new settings and synchronously resets the registry
// The spawn cadence switches to the new row immediately when running
func (e *Engine) Reconfigure(s Settings) error {
	s = s.clone()
	row, err := s.resolve(e.table)
	if err != nil {
		return err
	}

	e.lifeMu.Lock()
	defer e.lifeMu.Unlock()

	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return errStopped("reconfigure")
	}
	e.settings = s
	e.row = row
	e.factory = NewFactory(e.rng, s.Category, s.CustomWords, row)
	e.resetLocked()
	ticking := e.running && !e.paused
	e.mu.Unlock()

	e.spawn.Stop()
	e.spawn.SetInterval(row.SpawnInterval)
	if ticking {
		e.spawn.Start()
	}

	e.log.Info().
		Str("mode", string(s.Mode)).
		Str("difficulty", string(s.Difficulty)).
		Str("category", string(s.Category)).
		Msg("engine reconfigured")
	return nil
}

func (e *Engine) resetLocked() {
	e.registry.Reset()
	e.roundStart = e.registry.nextID + 1
	e.streak = 0
	e.pending = nil
	e.lastMotion = e.clock.Now()
	e.metrics.streak.Store(0)
	e.metrics.live.Store(0)
}

// HandleKey ingests one raw key identifier
// Accepts KeyBackspace and single characters of [a-zA-Z0-9 ]; others are ignored.
// A no-op unless the engine is running and not paused
func (e *Engine) HandleKey(key string) {
	e.mu.Lock()
	if !e.ticking() {
		e.mu.Unlock()
		return
	}
	e.handleKeyLocked(key, e.clock.Now())
	events := e.takePending()
	e.mu.Unlock()

	e.dispatch(events)
}

// Tick runs one motion pass; the motion ticker calls it, tests may call it directly
func (e *Engine) Tick() {
	e.mu.Lock()
	if !e.ticking() {
		e.mu.Unlock()
		return
	}
	e.stepLocked(e.clock.Now())
	events := e.takePending()
	e.mu.Unlock()

	e.dispatch(events)
}

// Spawn creates one word; the spawn ticker calls it, tests may call it directly
// Returns the new word id, or 0 when not running
func (e *Engine) Spawn() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ticking() {
		return 0
	}
	return e.spawnLocked(e.clock.Now()).ID
}

// RoundStart returns the first word id of the current round
// Ids below it belong to a field cleared by Restart or Reconfigure
func (e *Engine) RoundStart() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.roundStart
}

// Running reports whether the engine has been started and not stopped
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Paused reports whether the engine is paused
func (e *Engine) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// Settings returns the active settings
func (e *Engine) Settings() Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings.clone()
}

// SpawnInterval returns the active spawn cadence
func (e *Engine) SpawnInterval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.row.SpawnInterval
}

func (e *Engine) ticking() bool {
	return e.running && !e.paused && !e.stopped
}

func (e *Engine) queue(ev pendingEvent) {
	e.pending = append(e.pending, ev)
}

func (e *Engine) takePending() []pendingEvent {
	events := e.pending
	e.pending = nil
	return events
}

func (e *Engine) dispatch(events []pendingEvent) {
	for _, ev := range events {
		ev(e.sink)
	}
}

func errStopped(op string) error {
	return oops.Code("ENGINE_STOPPED").With("op", op).Errorf("engine is stopped")
}
