package engine

import "time"

// KeyBackspace is the key identifier that deletes the last typed character
const KeyBackspace = "Backspace"

// isTypeable reports whether b is accepted as a typed character: [a-zA-Z0-9 ]
func isTypeable(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == ' '
}

// handleKeyLocked routes one keystroke; caller holds e.mu
func (e *Engine) handleKeyLocked(key string, now time.Time) {
	if key == KeyBackspace {
		e.backspaceLocked()
		return
	}
	if len(key) != 1 || !isTypeable(key[0]) {
		return
	}
	e.typeLocked(key, now)
}

// backspaceLocked pops the buffer and shrinks the target in lockstep
func (e *Engine) backspaceLocked() {
	r := e.registry
	if r.typed == "" {
		return
	}
	r.typed = r.typed[:len(r.typed)-1]

	if t := r.Target(); t != nil {
		if !t.shrink() {
			r.targetID = 0
		}
	}
	if r.typed == "" {
		r.targetID = 0
	}
}

// typeLocked extends the buffer and re-selects the target
func (e *Engine) typeLocked(key string, now time.Time) {
	r := e.registry
	candidate := r.typed + key
	prev := r.Target()
	best := r.BestMatch(candidate)

	if best == nil {
		m := Mistype{Key: key}
		if prev != nil {
			prev.release()
			m.WordID = prev.ID
			m.Broken = true
		}
		r.clearInput()
		e.mistypeLocked(m)
		return
	}

	if prev != nil && prev.ID != best.ID {
		prev.release()
	}
	best.claim(len(candidate))
	r.typed = candidate
	r.targetID = best.ID

	if len(candidate) == len(best.Text) {
		e.completeLocked(best, now)
	}
}

// completeLocked resolves a fully typed word and queues its events
func (e *Engine) completeLocked(w *Word, now time.Time) {
	if !w.complete(now) {
		return
	}
	e.registry.clearInput()
	e.streak++
	e.metrics.completed.Add(1)
	e.metrics.streak.Store(int64(e.streak))

	done := *w
	e.queue(func(s EventSink) { s.OnWordComplete(done) })
	if done.Effect != EffectNone {
		effect, value := done.Effect, done.EffectValue()
		e.queue(func(s EventSink) { s.OnSpecialEffect(effect, value) })
	}

	e.log.Debug().
		Uint64("word_id", done.ID).
		Str("text", done.Text).
		Str("effect", done.Effect.String()).
		Int("streak", e.streak).
		Msg("word completed")
}

// mistypeLocked applies the streak policy and queues the mistype signal
func (e *Engine) mistypeLocked(m Mistype) {
	if m.Broken || e.streakPolicy == StreakResetOnAnyMistype {
		e.streak = 0
		e.metrics.streak.Store(0)
	}
	e.metrics.mistypes.Add(1)
	if m.Broken {
		e.metrics.broken.Add(1)
	}

	e.queue(func(s EventSink) { s.OnMistype(m) })

	e.log.Debug().
		Str("key", m.Key).
		Uint64("word_id", m.WordID).
		Bool("broken", m.Broken).
		Msg("mistype")
}
