package engine

import (
	"time"

	"github.com/lixenwraith/word-rain/parameter"
)

// stepLocked runs one motion pass: move all, then miss crossers, then prune
// Displacement is normalized by game time elapsed since the previous pass
func (e *Engine) stepLocked(now time.Time) {
	elapsed := now.Sub(e.lastMotion)
	e.lastMotion = now
	if elapsed < 0 {
		elapsed = 0
	}
	factor := float64(elapsed) / float64(parameter.MotionUnit)

	r := e.registry

	// 1. Positions
	for _, w := range r.words {
		if w.live() {
			w.Y += w.Speed * factor
		}
	}

	// 2. Deadline
	for _, w := range r.words {
		if !w.live() || w.Y < parameter.Deadline {
			continue
		}
		wasTarget := w.ID == r.targetID
		if !w.miss(now) {
			continue
		}
		if wasTarget {
			r.clearInput()
		}
		e.metrics.missed.Add(1)

		missed := *w
		e.queue(func(s EventSink) { s.OnWordMiss(missed) })

		e.log.Debug().
			Uint64("word_id", missed.ID).
			Str("text", missed.Text).
			Bool("targeted", wasTarget).
			Msg("word missed")
	}

	// 3. Grace period
	r.Prune(now, parameter.GracePeriod)

	e.metrics.live.Store(int64(r.LiveCount()))
	e.metrics.ticks.Add(1)
}

// spawnLocked creates one word and inserts it into the registry
func (e *Engine) spawnLocked(now time.Time) *Word {
	w := e.factory.Create(e.registry.NextID(), now)
	e.registry.Add(w)
	e.metrics.spawned.Add(1)
	e.metrics.live.Store(int64(e.registry.LiveCount()))

	e.log.Debug().
		Uint64("word_id", w.ID).
		Str("text", w.Text).
		Float64("x", w.X).
		Float64("speed", w.Speed).
		Str("effect", w.Effect.String()).
		Msg("word spawned")
	return w
}
