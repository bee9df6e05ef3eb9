package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lixenwraith/word-rain/content"
	"github.com/lixenwraith/word-rain/parameter"
	"github.com/lixenwraith/word-rain/status"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const cadence = 100 * time.Millisecond

// withCadence makes the active row spawn every cadence
func withCadence(c *Config) {
	row := c.Table[c.Mode][c.Difficulty]
	row.SpawnInterval = cadence
	c.Table.Set(c.Mode, c.Difficulty, row)
}

func waitWords(t *testing.T, e *Engine, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(e.Snapshot().Words) == n
	}, time.Second, time.Millisecond, "expected %d words", n)
}

func TestNewRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   string
	}{
		{"unknown mode", func(c *Config) { c.Mode = "arcade" }, "CONFIG_UNKNOWN_MODE"},
		{"unknown difficulty", func(c *Config) { c.Difficulty = "nightmare" }, "CONFIG_UNKNOWN_DIFFICULTY"},
		{"unknown category", func(c *Config) { c.Category = "poetry" }, "CONFIG_UNKNOWN_CATEGORY"},
		{"empty custom word", func(c *Config) { c.CustomWords = []string{"ok", ""} }, "CONFIG_EMPTY_WORDS"},
		{"untypeable custom word", func(c *Config) { c.CustomWords = []string{"naïve"} }, "CONFIG_INVALID_WORD"},
		{"invalid table", func(c *Config) {
			row := c.Table[c.Mode][c.Difficulty]
			row.MinSpeed = -1
			c.Table.Set(c.Mode, c.Difficulty, row)
		}, "CONFIG_INVALID_TABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(NewMockTimeProvider(testEpoch), &recorder{})
			tt.mutate(&cfg)
			e, err := New(cfg)
			require.Error(t, err)
			assert.Nil(t, e)
			assert.Equal(t, tt.code, errCode(err))
		})
	}
}

func TestNewDefaults(t *testing.T) {
	e, err := New(Config{Settings: Settings{
		Mode:       parameter.ModeTranquility,
		Difficulty: parameter.DifficultyZen,
		Category:   content.CategoryScience,
	}})
	require.NoError(t, err)
	assert.False(t, e.Running())
	assert.NotEmpty(t, e.Session())
	assert.Equal(t, parameter.DefaultTable()[parameter.ModeTranquility][parameter.DifficultyZen].SpawnInterval, e.SpawnInterval())
	e.Stop()
}

func TestConfigTableIsCopied(t *testing.T) {
	clock := NewMockTimeProvider(testEpoch)
	cfg := testConfig(clock, &recorder{})
	e, err := New(cfg)
	require.NoError(t, err)
	defer e.Stop()

	row := cfg.Table[cfg.Mode][cfg.Difficulty]
	row.SpawnInterval = time.Millisecond
	cfg.Table.Set(cfg.Mode, cfg.Difficulty, row)
	assert.Equal(t, time.Hour, e.SpawnInterval())
}

func TestNotRunningIgnoresInput(t *testing.T) {
	clock := NewMockTimeProvider(testEpoch)
	rec := &recorder{}
	e, err := New(testConfig(clock, rec))
	require.NoError(t, err)
	defer e.Stop()

	e.HandleKey("a")
	e.Tick()
	assert.Zero(t, e.Spawn())
	completed, missed, effects, mistypes := rec.counts()
	assert.Zero(t, completed+missed+effects+mistypes)
	assert.Empty(t, e.Snapshot().Words)
}

func TestSpawnCadence(t *testing.T) {
	e, clock, _ := newTestEngine(t, withCadence)

	const n = 5
	for i := 1; i <= n; i++ {
		clock.Advance(cadence)
		waitWords(t, e, i)
	}

	// Half a period produces nothing
	clock.Advance(cadence / 2)
	time.Sleep(10 * time.Millisecond)
	assert.Len(t, e.Snapshot().Words, n)
}

func TestPauseStopsSpawningAndMotion(t *testing.T) {
	e, clock, rec := newTestEngine(t, withCadence)
	clock.Advance(cadence)
	waitWords(t, e, 1)
	id := e.put("hello", 10, 1)

	e.Pause()
	assert.True(t, e.Paused())
	assert.Zero(t, clock.TickerCount())

	for i := 0; i < 5; i++ {
		clock.Advance(cadence)
	}
	time.Sleep(10 * time.Millisecond)
	assert.Len(t, e.Snapshot().Words, 2, "no spawns while paused")

	e.HandleKey("h")
	e.Tick()
	assert.Zero(t, e.Spawn())
	assert.Empty(t, e.Snapshot().Typed)
	assert.Equal(t, 10.0, mustWord(t, e, id).Y)
	_, _, _, mistypes := rec.counts()
	assert.Zero(t, mistypes)

	require.NoError(t, e.Resume())
	assert.False(t, e.Paused())
	assert.Equal(t, 2, clock.TickerCount())

	// Paused time is not replayed as motion
	clock.Advance(parameter.MotionUnit)
	e.Tick()
	assert.InDelta(t, 11.0, mustWord(t, e, id).Y, 1e-9)

	// The resumed spawn ticker starts a fresh period
	clock.Advance(cadence - parameter.MotionUnit)
	waitWords(t, e, 3)
}

func TestPauseAndResumeAreIdempotent(t *testing.T) {
	e, clock, _ := newTestEngine(t)
	e.Pause()
	e.Pause()
	require.NoError(t, e.Resume())
	require.NoError(t, e.Resume())
	assert.Equal(t, 2, clock.TickerCount())
	require.NoError(t, e.Start())
	assert.Equal(t, 2, clock.TickerCount())
}

func TestStopIsTerminal(t *testing.T) {
	e, clock, rec := newTestEngine(t)
	e.put("hello", 10, 1)

	e.Stop()
	e.Stop()
	assert.False(t, e.Running())
	assert.Zero(t, clock.TickerCount())

	e.HandleKey("h")
	e.Tick()
	assert.Zero(t, e.Spawn())
	_, _, _, mistypes := rec.counts()
	assert.Zero(t, mistypes)

	assert.Equal(t, "ENGINE_STOPPED", errCode(e.Start()))
	assert.Equal(t, "ENGINE_STOPPED", errCode(e.Resume()))
	assert.Equal(t, "ENGINE_STOPPED", errCode(e.Reconfigure(e.Settings())))
}

func TestStopWhilePaused(t *testing.T) {
	e, clock, _ := newTestEngine(t)
	e.Pause()
	e.Stop()
	assert.False(t, e.Paused())
	assert.Zero(t, clock.TickerCount())
}

func TestRestartClearsState(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.put("one", 10, 1)
	e.put("two", 10, 1)
	typeKeys(e, "one")
	e.HandleKey("t")
	require.Equal(t, 1, e.Snapshot().Streak)

	e.Restart()

	snap := e.Snapshot()
	assert.Empty(t, snap.Words)
	assert.Empty(t, snap.Typed)
	assert.Zero(t, snap.TargetID)
	assert.Zero(t, snap.Streak)
	assert.True(t, snap.Running)

	// Ids keep increasing across resets
	assert.Greater(t, e.Spawn(), uint64(2))
}

func TestRoundStartMarksFreshIds(t *testing.T) {
	e, _, _ := newTestEngine(t)
	assert.Zero(t, e.RoundStart())

	old := e.Spawn()
	e.Restart()
	start := e.RoundStart()
	assert.Greater(t, start, old)
	assert.Equal(t, start, e.Spawn(), "first word of the round carries RoundStart")

	require.NoError(t, e.Reconfigure(e.Settings()))
	assert.Greater(t, e.RoundStart(), start)
}

func TestReconfigure(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.put("hello", 10, 1)
	e.HandleKey("h")

	next := Settings{
		Mode:        parameter.ModeTranquility,
		Difficulty:  parameter.DifficultyEasy,
		Category:    content.CategoryCustom,
		CustomWords: []string{"alpha", "beta"},
	}
	require.NoError(t, e.Reconfigure(next))

	// Caller mutation does not leak into the engine
	next.CustomWords[0] = "mutated"

	snap := e.Snapshot()
	assert.Empty(t, snap.Words)
	assert.Empty(t, snap.Typed)
	assert.Zero(t, snap.TargetID)
	assert.Equal(t, parameter.ModeTranquility, snap.Settings.Mode)
	assert.Equal(t, []string{"alpha", "beta"}, snap.Settings.CustomWords)
	assert.Equal(t, time.Hour, e.SpawnInterval())

	for i := 0; i < 20; i++ {
		id := e.Spawn()
		w := mustWord(t, e, id)
		assert.Contains(t, []string{"alpha", "beta"}, w.Text)
	}
}

func TestReconfigureRejectsUnknownKeys(t *testing.T) {
	e, _, _ := newTestEngine(t)
	id := e.put("hello", 10, 1)
	before := e.Settings()

	err := e.Reconfigure(Settings{Mode: "arcade", Difficulty: parameter.DifficultyEasy, Category: content.CategoryGeneral})
	assert.Equal(t, "CONFIG_UNKNOWN_MODE", errCode(err))

	// The rejected call leaves everything untouched
	assert.Equal(t, before, e.Settings())
	mustWord(t, e, id)
}

func TestReconfigureSwitchesCadence(t *testing.T) {
	e, clock, _ := newTestEngine(t)

	s := e.Settings()
	s.Difficulty = parameter.DifficultyHard
	e.mu.Lock()
	row := e.table[s.Mode][s.Difficulty]
	row.SpawnInterval = cadence
	e.table.Set(s.Mode, s.Difficulty, row)
	e.mu.Unlock()

	require.NoError(t, e.Reconfigure(s))
	assert.Equal(t, cadence, e.SpawnInterval())
	assert.Equal(t, 2, clock.TickerCount())

	clock.Advance(cadence)
	waitWords(t, e, 1)
}

func TestReconfigureWhilePausedStaysPaused(t *testing.T) {
	e, clock, _ := newTestEngine(t)
	e.Pause()
	require.NoError(t, e.Reconfigure(e.Settings()))
	assert.True(t, e.Paused())
	assert.Zero(t, clock.TickerCount())
}

func TestSinkMayReadSnapshot(t *testing.T) {
	var e *Engine
	var seen Snapshot
	e, _, _ = newTestEngine(t, func(c *Config) {
		c.Sink = SinkFuncs{WordComplete: func(Word) {
			seen = e.Snapshot()
		}}
	})
	id := e.put("go", 10, 1)
	typeKeys(e, "go")

	w, ok := seen.Word(id)
	require.True(t, ok)
	assert.Equal(t, StateCompleted, w.State)
	assert.Empty(t, seen.Typed)
}

func TestMultiSinkFansOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	e, _, _ := newTestEngine(t, func(c *Config) {
		c.Sink = MultiSink{a, b, SinkFuncs{}}
	})
	e.put("go", 10, 1)
	typeKeys(e, "gox")

	for _, r := range []*recorder{a, b} {
		completed, _, _, mistypes := r.counts()
		assert.Equal(t, 1, completed)
		assert.Equal(t, 1, mistypes)
	}
}

func TestEngineMetrics(t *testing.T) {
	reg := status.NewRegistry()
	e, clock, _ := newTestEngine(t, func(c *Config) { c.Status = reg })

	e.Spawn()
	e.put("go", 10, 1)
	e.put("late", parameter.Deadline, 0)
	typeKeys(e, "go")
	e.HandleKey("q")
	clock.Advance(parameter.MotionUnit)
	e.Tick()

	assert.Equal(t, int64(1), reg.Int(status.KeyWordsSpawned).Load())
	assert.Equal(t, int64(1), reg.Int(status.KeyWordsCompleted).Load())
	assert.Equal(t, int64(1), reg.Int(status.KeyWordsMissed).Load())
	assert.Equal(t, int64(1), reg.Int(status.KeyWordsLive).Load())
	assert.Equal(t, int64(1), reg.Int(status.KeyMistypes).Load())
	assert.Equal(t, int64(0), reg.Int(status.KeyMistypesBroken).Load())
	assert.Equal(t, int64(0), reg.Int(status.KeyStreak).Load())
	assert.Equal(t, int64(1), reg.Int(status.KeyTicks).Load())
}

func TestConcurrentKeysAndTicks(t *testing.T) {
	e, _, _ := newTestEngine(t, func(c *Config) {
		c.Clock = NewMonotonicTimeProvider()
		c.MotionInterval = time.Millisecond
		row := c.Table[c.Mode][c.Difficulty]
		row.SpawnInterval = 2 * time.Millisecond
		c.Table.Set(c.Mode, c.Difficulty, row)
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 2000; i++ {
			e.HandleKey(string(rune('a' + i%26)))
			if i%50 == 0 {
				e.HandleKey(KeyBackspace)
			}
		}
	}()

	for i := 0; i < 200; i++ {
		checkInvariants(t, e.Snapshot())
		time.Sleep(100 * time.Microsecond)
	}
	<-done
	e.Stop()
	checkInvariants(t, e.Snapshot())
}
