// Package config merges command line flags and an optional YAML file into game settings
package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/word-rain/content"
	"github.com/lixenwraith/word-rain/engine"
	"github.com/lixenwraith/word-rain/parameter"
)

// Config keys
const (
	KeyMode         = "mode"
	KeyDifficulty   = "difficulty"
	KeyCategory     = "category"
	KeyWordsFile    = "words_file"
	KeyCustomWords  = "custom_words"
	KeySound        = "sound"
	KeyDebug        = "debug"
	KeyMetricsAddr  = "metrics_addr"
	KeyStreakPolicy = "streak_policy"
	KeyTable        = "table"
)

// Table row keys, under table.<mode>.<difficulty>
const (
	rowMinSpeed        = "min_speed"
	rowMaxSpeed        = "max_speed"
	rowSpawnIntervalMs = "spawn_interval_ms"
	rowSpecialWordRate = "special_word_rate"
)

// Defaults
const (
	DefaultMode       = parameter.ModeTranquility
	DefaultDifficulty = parameter.DifficultyMedium
	DefaultCategory   = content.CategoryGeneral
)

// Config is the validated result of Load
type Config struct {
	engine.Settings

	Table        parameter.Table
	StreakPolicy engine.StreakPolicy

	WordsFile   string
	Sound       bool
	Debug       bool
	MetricsAddr string
}

// RegisterFlags adds the game flags to fs
// Flag names use dashes; they map onto the underscore config keys
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("mode", "m", string(DefaultMode), "pacing mode (tranquility, action)")
	fs.StringP("difficulty", "d", string(DefaultDifficulty), "difficulty (easy, medium, hard, expert, zen)")
	fs.StringP("category", "c", string(DefaultCategory), "word category")
	fs.String("words-file", "", "file of custom words, implies --category custom")
	fs.StringSlice("custom-words", nil, "comma separated custom words")
	fs.Bool("sound", true, "play sound cues")
	fs.Bool("debug", false, "write debug log to logs/word-rain.log")
	fs.String("metrics-addr", "", "serve Prometheus metrics on this address (empty disables)")
	fs.String("streak-policy", "any", "streak reset on mistype: any, broken")
}

// Load reads path (if non-empty) then overlays explicitly set flags
// Precedence: changed flag > file > flag default
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("path", path).Wrap(err)
		}
	}

	if fs != nil {
		// Unchanged flags only fill keys the file left out
		provider := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(fs, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("source", "flags").Wrap(err)
		}
	}

	return fromKoanf(k)
}

// fromKoanf validates every key into a Config
func fromKoanf(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{
		WordsFile:   k.String(KeyWordsFile),
		Sound:       !k.Exists(KeySound) || k.Bool(KeySound),
		Debug:       k.Bool(KeyDebug),
		MetricsAddr: k.String(KeyMetricsAddr),
	}

	var err error
	if cfg.Mode, err = parameter.ParseMode(stringOr(k, KeyMode, string(DefaultMode))); err != nil {
		return nil, err
	}
	if cfg.Difficulty, err = parameter.ParseDifficulty(stringOr(k, KeyDifficulty, string(DefaultDifficulty))); err != nil {
		return nil, err
	}
	if cfg.Category, err = content.ParseCategory(stringOr(k, KeyCategory, string(DefaultCategory))); err != nil {
		return nil, err
	}
	if cfg.StreakPolicy, err = engine.ParseStreakPolicy(k.String(KeyStreakPolicy)); err != nil {
		return nil, err
	}

	cfg.CustomWords = customWords(k)
	if cfg.WordsFile != "" {
		words, err := content.LoadCustomWords(cfg.WordsFile)
		if err != nil {
			return nil, err
		}
		cfg.CustomWords = content.ParseCustomWords(strings.Join(append(cfg.CustomWords, words...), ","))
		cfg.Category = content.CategoryCustom
	}
	if cfg.Category == content.CategoryCustom && len(cfg.CustomWords) == 0 {
		return nil, oops.Code("CONFIG_EMPTY_WORDS").Errorf("category custom needs --custom-words or --words-file")
	}

	if cfg.Table, err = tableOverrides(k); err != nil {
		return nil, err
	}
	return cfg, nil
}

// customWords accepts a YAML list or a single comma separated string
func customWords(k *koanf.Koanf) []string {
	switch v := k.Get(KeyCustomWords).(type) {
	case nil:
		return nil
	case string:
		return content.ParseCustomWords(v)
	default:
		return content.ParseCustomWords(strings.Join(k.Strings(KeyCustomWords), ","))
	}
}

// tableOverrides applies table.<mode>.<difficulty> rows on top of the default table
// Fields left out of a row keep their default value
func tableOverrides(k *koanf.Koanf) (parameter.Table, error) {
	table := parameter.DefaultTable()
	if !k.Exists(KeyTable) {
		return table, nil
	}

	for _, m := range k.MapKeys(KeyTable) {
		mode, err := parameter.ParseMode(m)
		if err != nil {
			return nil, err
		}
		modeKey := KeyTable + "." + m
		for _, d := range k.MapKeys(modeKey) {
			difficulty, err := parameter.ParseDifficulty(d)
			if err != nil {
				return nil, oops.Code("CONFIG_UNKNOWN_DIFFICULTY").With("mode", m).Wrap(err)
			}
			row, _ := table.Lookup(mode, difficulty)
			p := modeKey + "." + d + "."
			if k.Exists(p + rowMinSpeed) {
				row.MinSpeed = k.Float64(p + rowMinSpeed)
			}
			if k.Exists(p + rowMaxSpeed) {
				row.MaxSpeed = k.Float64(p + rowMaxSpeed)
			}
			if k.Exists(p + rowSpawnIntervalMs) {
				row.SpawnInterval = time.Duration(k.Int64(p+rowSpawnIntervalMs)) * time.Millisecond
			}
			if k.Exists(p + rowSpecialWordRate) {
				row.SpecialWordRate = k.Float64(p + rowSpecialWordRate)
			}
			table.Set(mode, difficulty, row)
		}
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

func stringOr(k *koanf.Koanf, key, fallback string) string {
	if s := k.String(key); s != "" {
		return s
	}
	return fallback
}
