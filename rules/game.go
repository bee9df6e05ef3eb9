// Package rules turns engine notifications into score, life, countdown and session stats
package rules

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/word-rain/engine"
	"github.com/lixenwraith/word-rain/parameter"
	"github.com/lixenwraith/word-rain/status"
)

// OverReason explains why a session ended
type OverReason uint8

const (
	NotOver OverReason = iota
	LifeDepleted
	TimeUp
)

// String returns the reason name
func (r OverReason) String() string {
	switch r {
	case LifeDepleted:
		return "life depleted"
	case TimeUp:
		return "time up"
	default:
		return "playing"
	}
}

// State is a copy of the scoreboard
type State struct {
	Difficulty parameter.Difficulty
	Score      int
	HighScore  int
	Life       int
	Timed      bool
	TimeLeft   time.Duration
	Elapsed    time.Duration
	Over       bool
	Reason     OverReason
}

// GameConfig is the construction input of a Game
type GameConfig struct {
	Difficulty   parameter.Difficulty
	StreakPolicy engine.StreakPolicy
	Logger       *zerolog.Logger
	Status       *status.Registry
}

// Game is an engine.EventSink keeping score for one session at a time
// The high score survives Reset for the lifetime of the Game
type Game struct {
	mu           sync.Mutex
	difficulty   parameter.Difficulty
	streakPolicy engine.StreakPolicy
	score        int
	highScore    int
	life         int
	timeLeft     time.Duration
	elapsed      time.Duration
	reason       OverReason
	firstWord    uint64
	stats        tally
	over         chan struct{}

	log     zerolog.Logger
	metrics gameMetrics
}

type gameMetrics struct {
	score    *atomic.Int64
	life     *atomic.Int64
	wpm      *status.Gauge
	accuracy *status.Gauge
}

var _ engine.EventSink = (*Game)(nil)

// NewGame creates a game ready for a session at the given difficulty
func NewGame(cfg GameConfig) *Game {
	reg := cfg.Status
	if reg == nil {
		reg = status.NewRegistry()
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	g := &Game{
		streakPolicy: cfg.StreakPolicy,
		log:          logger.With().Str("component", "rules").Logger(),
		metrics: gameMetrics{
			score:    reg.Int(status.KeyScore),
			life:     reg.Int(status.KeyLife),
			wpm:      reg.Float(status.KeyWPM),
			accuracy: reg.Float(status.KeyAccuracy),
		},
	}
	g.Reset(cfg.Difficulty)
	return g
}

// Reset starts a new session; the previous Over channel stays closed if it was
func (g *Game) Reset(difficulty parameter.Difficulty) {
	g.StartRound(difficulty, 0)
}

// StartRound resets like Reset and ignores word events for ids below firstWord
// Those belong to a field the engine already cleared but may still be in flight
func (g *Game) StartRound(difficulty parameter.Difficulty, firstWord uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.difficulty = difficulty
	g.firstWord = firstWord
	g.score = 0
	g.life = parameter.LifeMax
	g.timeLeft = time.Duration(parameter.TimeLimitSeconds[difficulty]) * time.Second
	g.elapsed = 0
	g.reason = NotOver
	g.stats = tally{}
	g.over = make(chan struct{})
	g.publishLocked()
}

// Over returns a channel closed when the current session ends
func (g *Game) Over() <-chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.over
}

// State returns a copy of the scoreboard
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return State{
		Difficulty: g.difficulty,
		Score:      g.score,
		HighScore:  g.highScore,
		Life:       g.life,
		Timed:      g.timedLocked(),
		TimeLeft:   g.timeLeft,
		Elapsed:    g.elapsed,
		Over:       g.reason != NotOver,
		Reason:     g.reason,
	}
}

// Tick advances the session clock by dt of unpaused game time
func (g *Game) Tick(dt time.Duration) {
	if dt <= 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.reason != NotOver {
		return
	}

	g.elapsed += dt
	if g.timedLocked() {
		g.timeLeft -= dt
		if g.timeLeft <= 0 {
			g.timeLeft = 0
			g.endLocked(TimeUp)
		}
	}
	g.publishLocked()
}

// OnWordComplete scores the word: base points for the difficulty plus a length bonus
func (g *Game) OnWordComplete(w engine.Word) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.reason != NotOver || g.staleLocked(w.ID) {
		return
	}

	points := parameter.BasePoints[g.difficulty] + len(w.Text)/parameter.LengthBonusDivisor
	g.addScoreLocked(points)
	g.stats.word(len(w.Text))
	g.publishLocked()
}

// OnWordMiss applies the difficulty's miss damage; zen ignores misses entirely
func (g *Game) OnWordMiss(w engine.Word) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.reason != NotOver || g.staleLocked(w.ID) || g.difficulty == parameter.DifficultyZen {
		return
	}

	g.stats.miss()
	g.damageLocked(parameter.MissDamage[g.difficulty])
	g.publishLocked()
}

// OnSpecialEffect applies a completed word's effect
func (g *Game) OnSpecialEffect(effect engine.SpecialEffect, value int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.reason != NotOver {
		return
	}

	switch effect {
	case engine.EffectPowerUp:
		g.life = min(g.life+parameter.PowerUpLife, parameter.LifeMax)
	case engine.EffectBomb:
		if g.difficulty != parameter.DifficultyZen {
			g.damageLocked(parameter.BombDamage)
		}
	case engine.EffectFreeze:
		if g.timedLocked() {
			g.timeLeft += parameter.FreezeBonusSeconds * time.Second
		}
	case engine.EffectMultiplier:
		g.addScoreLocked(parameter.MultiplierPoints * value)
	}

	g.log.Debug().
		Str("effect", effect.String()).
		Int("value", value).
		Int("score", g.score).
		Int("life", g.life).
		Msg("effect applied")
	g.publishLocked()
}

// OnMistype counts the mistype against accuracy and the streak
func (g *Game) OnMistype(m engine.Mistype) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.reason != NotOver || (m.WordID != 0 && g.staleLocked(m.WordID)) {
		return
	}

	g.stats.mistype(m.Broken || g.streakPolicy == engine.StreakResetOnAnyMistype)
	g.publishLocked()
}

func (g *Game) staleLocked(id uint64) bool {
	return id < g.firstWord
}

func (g *Game) timedLocked() bool {
	return parameter.TimeLimitSeconds[g.difficulty] > 0
}

func (g *Game) addScoreLocked(points int) {
	g.score += points
	if g.score > g.highScore {
		g.highScore = g.score
	}
}

func (g *Game) damageLocked(n int) {
	if n <= 0 {
		return
	}
	g.life -= n
	if g.life <= 0 {
		g.life = 0
		g.endLocked(LifeDepleted)
	}
}

func (g *Game) endLocked(reason OverReason) {
	if g.reason != NotOver {
		return
	}
	g.reason = reason
	close(g.over)

	g.log.Info().
		Str("reason", reason.String()).
		Int("score", g.score).
		Int("high_score", g.highScore).
		Dur("elapsed", g.elapsed).
		Msg("game over")
}

func (g *Game) publishLocked() {
	s := g.stats.snapshot(g.elapsed)
	g.metrics.score.Store(int64(g.score))
	g.metrics.life.Store(int64(g.life))
	g.metrics.wpm.Set(s.WPM)
	g.metrics.accuracy.Set(s.Accuracy)
}
