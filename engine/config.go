package engine

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/oops"

	"github.com/lixenwraith/word-rain/content"
	"github.com/lixenwraith/word-rain/parameter"
	"github.com/lixenwraith/word-rain/status"
)

// StreakPolicy decides whether a pure mistype (no word targeted) resets the streak
// A mistype that breaks a targeted word always resets it
type StreakPolicy uint8

const (
	// StreakResetOnAnyMistype resets on every mistype
	StreakResetOnAnyMistype StreakPolicy = iota
	// StreakResetOnBrokenTarget resets only when a targeted word loses progress
	StreakResetOnBrokenTarget
)

// ParseStreakPolicy maps config names to policies
func ParseStreakPolicy(s string) (StreakPolicy, error) {
	switch s {
	case "", "any":
		return StreakResetOnAnyMistype, nil
	case "broken":
		return StreakResetOnBrokenTarget, nil
	}
	return 0, oops.Code("CONFIG_UNKNOWN_STREAK_POLICY").With("policy", s).Errorf("unknown streak policy %q", s)
}

// Settings is the part of the configuration whose change resets the registry
type Settings struct {
	Mode        parameter.Mode
	Difficulty  parameter.Difficulty
	Category    content.Category
	CustomWords []string
}

// Config is the construction input of an Engine
// Zero values of the optional collaborators are replaced with defaults
type Config struct {
	Settings

	Table        parameter.Table
	StreakPolicy StreakPolicy

	// MotionInterval overrides parameter.MotionInterval when positive
	MotionInterval time.Duration

	Sink   EventSink
	Clock  TimeProvider
	Rand   *rand.Rand
	Logger *zerolog.Logger
	Status *status.Registry
}

// resolve validates settings against the table and returns the difficulty row
func (s Settings) resolve(table parameter.Table) (parameter.Settings, error) {
	row, err := table.Lookup(s.Mode, s.Difficulty)
	if err != nil {
		return parameter.Settings{}, err
	}
	if _, err := content.ParseCategory(string(s.Category)); err != nil {
		return parameter.Settings{}, err
	}
	for i, w := range s.CustomWords {
		if w == "" {
			return parameter.Settings{}, oops.Code("CONFIG_EMPTY_WORDS").
				With("index", i).
				Errorf("custom word %d is empty", i)
		}
		for j := 0; j < len(w); j++ {
			if !isTypeable(w[j]) {
				return parameter.Settings{}, oops.Code("CONFIG_INVALID_WORD").
					With("word", w).
					Errorf("custom word %q has a character that cannot be typed", w)
			}
		}
	}
	return row, nil
}

// clone copies the custom list so caller mutation cannot reach the factory
func (s Settings) clone() Settings {
	if s.CustomWords != nil {
		s.CustomWords = append([]string(nil), s.CustomWords...)
	}
	return s
}
