package parameter

import (
	"sort"
	"time"

	"github.com/samber/oops"
)

// Mode selects the pacing family of the difficulty table
type Mode string

const (
	ModeTranquility Mode = "tranquility"
	ModeAction      Mode = "action"
)

// Difficulty selects a row within a mode
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
	DifficultyZen    Difficulty = "zen"
)

// Modes lists known modes in display order
var Modes = []Mode{ModeTranquility, ModeAction}

// Difficulties lists known difficulties in display order
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert, DifficultyZen}

// Settings drives word speed, spawn cadence and special word chance
type Settings struct {
	MinSpeed        float64       `koanf:"min_speed"`
	MaxSpeed        float64       `koanf:"max_speed"`
	SpawnInterval   time.Duration `koanf:"-"`
	SpecialWordRate float64       `koanf:"special_word_rate"`
}

// Table maps mode x difficulty to settings
type Table map[Mode]map[Difficulty]Settings

// DefaultTable returns a fresh copy of the built-in difficulty table
func DefaultTable() Table {
	ms := time.Millisecond
	return Table{
		ModeTranquility: {
			DifficultyEasy:   {MinSpeed: 0.3, MaxSpeed: 0.7, SpawnInterval: 3000 * ms, SpecialWordRate: 0.05},
			DifficultyMedium: {MinSpeed: 0.5, MaxSpeed: 1.2, SpawnInterval: 2000 * ms, SpecialWordRate: 0.1},
			DifficultyHard:   {MinSpeed: 0.8, MaxSpeed: 2.0, SpawnInterval: 1000 * ms, SpecialWordRate: 0.15},
			DifficultyExpert: {MinSpeed: 1.0, MaxSpeed: 2.5, SpawnInterval: 800 * ms, SpecialWordRate: 0.2},
			DifficultyZen:    {MinSpeed: 0.2, MaxSpeed: 0.4, SpawnInterval: 4000 * ms, SpecialWordRate: 0.1},
		},
		ModeAction: {
			DifficultyEasy:   {MinSpeed: 0.8, MaxSpeed: 1.5, SpawnInterval: 2000 * ms, SpecialWordRate: 0.1},
			DifficultyMedium: {MinSpeed: 1.2, MaxSpeed: 2.0, SpawnInterval: 1200 * ms, SpecialWordRate: 0.15},
			DifficultyHard:   {MinSpeed: 1.5, MaxSpeed: 2.8, SpawnInterval: 800 * ms, SpecialWordRate: 0.2},
			DifficultyExpert: {MinSpeed: 2.0, MaxSpeed: 3.5, SpawnInterval: 600 * ms, SpecialWordRate: 0.25},
			DifficultyZen:    {MinSpeed: 0.6, MaxSpeed: 1.0, SpawnInterval: 3000 * ms, SpecialWordRate: 0.15},
		},
	}
}

// Lookup resolves settings, failing on unknown keys instead of defaulting
func (t Table) Lookup(mode Mode, difficulty Difficulty) (Settings, error) {
	row, ok := t[mode]
	if !ok {
		return Settings{}, oops.Code("CONFIG_UNKNOWN_MODE").
			With("mode", string(mode)).
			Errorf("unknown mode %q", mode)
	}
	s, ok := row[difficulty]
	if !ok {
		return Settings{}, oops.Code("CONFIG_UNKNOWN_DIFFICULTY").
			With("mode", string(mode)).
			With("difficulty", string(difficulty)).
			Errorf("unknown difficulty %q for mode %q", difficulty, mode)
	}
	return s, nil
}

// Clone returns a deep copy so overrides never leak into shared tables
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for m, row := range t {
		r := make(map[Difficulty]Settings, len(row))
		for d, s := range row {
			r[d] = s
		}
		out[m] = r
	}
	return out
}

// Set stores settings for one entry, creating the mode row if needed
func (t Table) Set(mode Mode, difficulty Difficulty, s Settings) {
	row, ok := t[mode]
	if !ok {
		row = make(map[Difficulty]Settings)
		t[mode] = row
	}
	row[difficulty] = s
}

// Validate rejects entries the engine cannot run with
func (t Table) Validate() error {
	if len(t) == 0 {
		return oops.Code("CONFIG_INVALID_TABLE").Errorf("difficulty table is empty")
	}

	modes := make([]string, 0, len(t))
	for m := range t {
		modes = append(modes, string(m))
	}
	sort.Strings(modes)

	for _, m := range modes {
		for d, s := range t[Mode(m)] {
			fail := func(reason string) error {
				return oops.Code("CONFIG_INVALID_TABLE").
					With("mode", m).
					With("difficulty", string(d)).
					Errorf("invalid settings for %s/%s: %s", m, d, reason)
			}
			switch {
			case s.MinSpeed <= 0:
				return fail("min speed must be positive")
			case s.MaxSpeed < s.MinSpeed:
				return fail("max speed below min speed")
			case s.SpawnInterval <= 0:
				return fail("spawn interval must be positive")
			case s.SpecialWordRate < 0 || s.SpecialWordRate > 1:
				return fail("special word rate outside [0,1]")
			}
		}
	}
	return nil
}

// ParseMode validates a mode name against the known modes
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", oops.Code("CONFIG_UNKNOWN_MODE").With("mode", s).Errorf("unknown mode %q", s)
}

// ParseDifficulty validates a difficulty name against the known difficulties
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if string(d) == s {
			return d, nil
		}
	}
	return "", oops.Code("CONFIG_UNKNOWN_DIFFICULTY").With("difficulty", s).Errorf("unknown difficulty %q", s)
}
