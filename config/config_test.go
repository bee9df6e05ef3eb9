package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/word-rain/content"
	"github.com/lixenwraith/word-rain/engine"
	"github.com/lixenwraith/word-rain/parameter"
)

func errCode(err error) string {
	if oopsErr, ok := oops.AsOops(err); ok {
		return fmt.Sprint(oopsErr.Code())
	}
	return ""
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func flags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("", flags(t))
	require.NoError(t, err)

	assert.Equal(t, DefaultMode, cfg.Mode)
	assert.Equal(t, DefaultDifficulty, cfg.Difficulty)
	assert.Equal(t, DefaultCategory, cfg.Category)
	assert.Empty(t, cfg.CustomWords)
	assert.True(t, cfg.Sound)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, engine.StreakResetOnAnyMistype, cfg.StreakPolicy)
	assert.Equal(t, parameter.DefaultTable(), cfg.Table)
}

func TestLoadWithoutFlags(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultMode, cfg.Mode)
	assert.True(t, cfg.Sound)
}

func TestFileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "game.yaml", `
mode: action
difficulty: expert
category: science
sound: false
debug: true
metrics_addr: 127.0.0.1:9109
streak_policy: broken
`)
	cfg, err := Load(path, flags(t))
	require.NoError(t, err)

	assert.Equal(t, parameter.ModeAction, cfg.Mode)
	assert.Equal(t, parameter.DifficultyExpert, cfg.Difficulty)
	assert.Equal(t, content.CategoryScience, cfg.Category)
	assert.False(t, cfg.Sound)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "127.0.0.1:9109", cfg.MetricsAddr)
	assert.Equal(t, engine.StreakResetOnBrokenTarget, cfg.StreakPolicy)
}

func TestChangedFlagsOverrideFile(t *testing.T) {
	path := writeFile(t, "game.yaml", "mode: action\ndifficulty: expert\nsound: false\n")
	cfg, err := Load(path, flags(t, "--difficulty", "zen", "--sound=true"))
	require.NoError(t, err)

	assert.Equal(t, parameter.ModeAction, cfg.Mode, "unchanged flag keeps the file value")
	assert.Equal(t, parameter.DifficultyZen, cfg.Difficulty)
	assert.True(t, cfg.Sound)
}

func TestCustomWords(t *testing.T) {
	t.Run("flag", func(t *testing.T) {
		cfg, err := Load("", flags(t, "-c", "custom", "--custom-words", "alpha, beta,alpha"))
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "beta"}, cfg.CustomWords)
	})

	t.Run("yaml list", func(t *testing.T) {
		path := writeFile(t, "game.yaml", "category: custom\ncustom_words:\n  - gamma\n  - \" delta \"\n")
		cfg, err := Load(path, flags(t))
		require.NoError(t, err)
		assert.Equal(t, []string{"gamma", "delta"}, cfg.CustomWords)
	})

	t.Run("yaml string", func(t *testing.T) {
		path := writeFile(t, "game.yaml", "category: custom\ncustom_words: \"one, two\"\n")
		cfg, err := Load(path, flags(t))
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two"}, cfg.CustomWords)
	})

	t.Run("words file implies custom", func(t *testing.T) {
		words := writeFile(t, "words.txt", "# comment\nkappa, lambda\n\nkappa\n")
		cfg, err := Load("", flags(t, "--words-file", words, "--custom-words", "mu"))
		require.NoError(t, err)
		assert.Equal(t, content.CategoryCustom, cfg.Category)
		assert.Equal(t, []string{"mu", "kappa", "lambda"}, cfg.CustomWords)
	})

	t.Run("custom without words", func(t *testing.T) {
		_, err := Load("", flags(t, "--category", "custom"))
		require.Error(t, err)
		assert.Equal(t, "CONFIG_EMPTY_WORDS", errCode(err))
	})
}

func TestTableOverrides(t *testing.T) {
	path := writeFile(t, "game.yaml", `
table:
  action:
    hard:
      min_speed: 1.0
      spawn_interval_ms: 500
  tranquility:
    zen:
      special_word_rate: 0
`)
	cfg, err := Load(path, flags(t))
	require.NoError(t, err)

	def := parameter.DefaultTable()
	hard, err := cfg.Table.Lookup(parameter.ModeAction, parameter.DifficultyHard)
	require.NoError(t, err)
	assert.Equal(t, 1.0, hard.MinSpeed)
	assert.Equal(t, def[parameter.ModeAction][parameter.DifficultyHard].MaxSpeed, hard.MaxSpeed, "unset fields keep defaults")
	assert.Equal(t, 500*time.Millisecond, hard.SpawnInterval)

	zen, err := cfg.Table.Lookup(parameter.ModeTranquility, parameter.DifficultyZen)
	require.NoError(t, err)
	assert.Zero(t, zen.SpecialWordRate)

	assert.Equal(t, def[parameter.ModeAction][parameter.DifficultyEasy], cfg.Table[parameter.ModeAction][parameter.DifficultyEasy])
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		args []string
		code string
	}{
		{"unknown mode", "mode: frantic\n", nil, "CONFIG_UNKNOWN_MODE"},
		{"unknown difficulty flag", "", []string{"-d", "nightmare"}, "CONFIG_UNKNOWN_DIFFICULTY"},
		{"unknown category", "category: poetry\n", nil, "CONFIG_UNKNOWN_CATEGORY"},
		{"unknown streak policy", "streak_policy: never\n", nil, "CONFIG_UNKNOWN_STREAK_POLICY"},
		{"table unknown mode", "table:\n  frantic:\n    easy:\n      min_speed: 1\n", nil, "CONFIG_UNKNOWN_MODE"},
		{"table unknown difficulty", "table:\n  action:\n    nightmare:\n      min_speed: 1\n", nil, "CONFIG_UNKNOWN_DIFFICULTY"},
		{"table bad speeds", "table:\n  action:\n    easy:\n      min_speed: 3\n      max_speed: 1\n", nil, "CONFIG_INVALID_TABLE"},
		{"table bad interval", "table:\n  action:\n    easy:\n      spawn_interval_ms: 0\n", nil, "CONFIG_INVALID_TABLE"},
		{"missing words file", "words_file: /nonexistent/words.txt\n", nil, "CONTENT_READ_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.yaml != "" {
				path = writeFile(t, "game.yaml", tt.yaml)
			}
			_, err := Load(path, flags(t, tt.args...))
			require.Error(t, err)
			assert.Equal(t, tt.code, errCode(err))
		})
	}
}

func TestLoadFailures(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), flags(t))
	require.Error(t, err)
	assert.Equal(t, "CONFIG_LOAD_FAILED", errCode(err))

	path := writeFile(t, "broken.yaml", "mode: [unterminated\n")
	_, err = Load(path, flags(t))
	require.Error(t, err)
	assert.Equal(t, "CONFIG_LOAD_FAILED", errCode(err))
}

func TestConfigDrivesEngine(t *testing.T) {
	cfg, err := Load("", flags(t, "-m", "action", "-d", "easy"))
	require.NoError(t, err)

	e, err := engine.New(engine.Config{
		Settings:     cfg.Settings,
		Table:        cfg.Table,
		StreakPolicy: cfg.StreakPolicy,
	})
	require.NoError(t, err)
	assert.Equal(t, parameter.ModeAction, e.Snapshot().Settings.Mode)
}
