package engine

import (
	"strings"
	"time"
)

// WordState is the lifecycle position of a falling word
type WordState uint8

const (
	StateFalling WordState = iota
	StateTargeted
	StateCompleted
	StateMissed
)

// String returns the state name
func (s WordState) String() string {
	switch s {
	case StateFalling:
		return "falling"
	case StateTargeted:
		return "targeted"
	case StateCompleted:
		return "completed"
	case StateMissed:
		return "missed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state is completed or missed
func (s WordState) Terminal() bool {
	return s == StateCompleted || s == StateMissed
}

// SpecialEffect is an optional modifier applied when its word is completed
type SpecialEffect uint8

const (
	EffectNone SpecialEffect = iota
	EffectPowerUp
	EffectBomb
	EffectFreeze
	EffectMultiplier
)

// Effects lists the effects a special word can carry
var Effects = []SpecialEffect{EffectPowerUp, EffectBomb, EffectFreeze, EffectMultiplier}

// String returns the effect name
func (e SpecialEffect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectPowerUp:
		return "powerUp"
	case EffectBomb:
		return "bomb"
	case EffectFreeze:
		return "freeze"
	case EffectMultiplier:
		return "multiplier"
	default:
		return "unknown"
	}
}

// EffectColors holds renderer colors for special words
var EffectColors = map[SpecialEffect]string{
	EffectPowerUp:    "#00ff99",
	EffectBomb:       "#ff3333",
	EffectFreeze:     "#33ccff",
	EffectMultiplier: "#ffcc00",
}

// Word is one falling word instance
// Completed+Remaining always equals Text; Completed keeps the case of Text
type Word struct {
	ID   uint64
	Text string

	X     float64 // percent of field width, fixed
	Y     float64 // percent of field height, grows while live
	Speed float64 // percent per parameter.MotionUnit of game time

	Scale    float64
	Rotation float64
	Color    string

	Completed string
	Remaining string
	State     WordState

	CreatedAt  time.Time
	ResolvedAt time.Time // zero until completed or missed

	Effect     SpecialEffect
	Multiplier int // 2 or 3 for EffectMultiplier
}

// EffectValue is the value reported with the word's special effect
func (w *Word) EffectValue() int {
	if w.Effect == EffectMultiplier {
		if w.Multiplier > 0 {
			return w.Multiplier
		}
		return 2
	}
	return 1
}

// live reports whether the word still moves and can be typed
func (w *Word) live() bool {
	return w.State == StateFalling || w.State == StateTargeted
}

// claim targets the word with its first n bytes typed
func (w *Word) claim(n int) bool {
	if !w.live() || n <= 0 || n > len(w.Text) {
		return false
	}
	w.State = StateTargeted
	w.Completed = w.Text[:n]
	w.Remaining = w.Text[n:]
	return true
}

// release demotes a targeted word back to falling with its progress discarded
func (w *Word) release() bool {
	if w.State != StateTargeted {
		return false
	}
	w.State = StateFalling
	w.Completed = ""
	w.Remaining = w.Text
	return true
}

// shrink moves the last completed byte back into remaining
// Returns false once the word drops back to falling
func (w *Word) shrink() bool {
	if w.State != StateTargeted {
		return false
	}
	n := len(w.Completed) - 1
	if n <= 0 {
		w.release()
		return false
	}
	w.Completed = w.Text[:n]
	w.Remaining = w.Text[n:]
	return true
}

func (w *Word) complete(now time.Time) bool {
	if !w.live() {
		return false
	}
	w.State = StateCompleted
	w.Completed = w.Text
	w.Remaining = ""
	w.ResolvedAt = now
	return true
}

func (w *Word) miss(now time.Time) bool {
	if !w.live() {
		return false
	}
	w.State = StateMissed
	w.ResolvedAt = now
	return true
}

// hasPrefixFold reports whether text starts with prefix, ignoring case
func hasPrefixFold(text, prefix string) bool {
	return len(text) >= len(prefix) && strings.EqualFold(text[:len(prefix)], prefix)
}
