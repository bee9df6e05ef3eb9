package status

import (
	"math"
	"sync/atomic"
)

// Key identifies one exported metric
type Key uint8

// Metric keys written by the engine and the rules consumer
const (
	KeyWordsSpawned Key = iota
	KeyWordsCompleted
	KeyWordsMissed
	KeyWordsLive
	KeyMistypes
	KeyMistypesBroken
	KeyStreak
	KeyTicks

	KeyScore
	KeyLife
	KeyWPM
	KeyAccuracy

	keyCount
)

// Kind tells the collector how to export a key
type Kind uint8

const (
	KindCounter Kind = iota // monotonic int
	KindGauge               // int that moves both ways
	KindFloat               // float gauge
)

type keyInfo struct {
	name string
	help string
	kind Kind
}

var keys = [keyCount]keyInfo{
	KeyWordsSpawned:   {"engine_words_spawned_total", "Words spawned onto the field", KindCounter},
	KeyWordsCompleted: {"engine_words_completed_total", "Words typed to completion", KindCounter},
	KeyWordsMissed:    {"engine_words_missed_total", "Words that crossed the deadline", KindCounter},
	KeyWordsLive:      {"engine_words_live", "Falling words currently on the field", KindGauge},
	KeyMistypes:       {"engine_mistypes_total", "Keystrokes that matched no word", KindCounter},
	KeyMistypesBroken: {"engine_mistypes_broken_total", "Mistypes that discarded a targeted word", KindCounter},
	KeyStreak:         {"engine_streak", "Current completion streak", KindGauge},
	KeyTicks:          {"engine_ticks_total", "Motion passes run", KindCounter},
	KeyScore:          {"rules_score", "Score of the current round", KindGauge},
	KeyLife:           {"rules_life", "Life left in the current round", KindGauge},
	KeyWPM:            {"rules_wpm", "Completed words per minute", KindFloat},
	KeyAccuracy:       {"rules_accuracy", "Typing accuracy percent", KindFloat},
}

// Keys lists every key in export order
func Keys() []Key {
	out := make([]Key, keyCount)
	for i := range out {
		out[i] = Key(i)
	}
	return out
}

// String returns the exported metric name without namespace
func (k Key) String() string {
	if k >= keyCount {
		return "unknown"
	}
	return keys[k].name
}

// Help returns the metric description
func (k Key) Help() string {
	if k >= keyCount {
		return ""
	}
	return keys[k].help
}

// Kind returns how the key is stored and exported
func (k Key) Kind() Kind {
	if k >= keyCount {
		return KindGauge
	}
	return keys[k].kind
}

// Gauge is a float64 cell, stored as its bit pattern so reads and writes stay atomic
type Gauge struct {
	bits atomic.Uint64
}

// Set stores v
func (g *Gauge) Set(v float64) {
	g.bits.Store(math.Float64bits(v))
}

// Get loads the current value
func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Registry holds one cell per key; the zero value is ready to use
// Components cache cell pointers at construction and write through them lock-free
type Registry struct {
	ints   [keyCount]atomic.Int64
	floats [keyCount]Gauge
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Int returns the integer cell of a counter or gauge key
func (r *Registry) Int(k Key) *atomic.Int64 {
	return &r.ints[k]
}

// Float returns the float cell of a KindFloat key
func (r *Registry) Float(k Key) *Gauge {
	return &r.floats[k]
}

// Value reads k as a float64 whatever its kind
func (r *Registry) Value(k Key) float64 {
	if k.Kind() == KindFloat {
		return r.floats[k].Get()
	}
	return float64(r.ints[k].Load())
}
