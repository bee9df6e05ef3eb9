package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/samber/oops"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/word-rain/content"
	"github.com/lixenwraith/word-rain/parameter"
)

type effectEvent struct {
	Effect SpecialEffect
	Value  int
}

// recorder captures every engine notification
type recorder struct {
	mu        sync.Mutex
	completed []Word
	missed    []Word
	effects   []effectEvent
	mistypes  []Mistype
}

func (r *recorder) OnWordComplete(w Word) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = append(r.completed, w)
}

func (r *recorder) OnWordMiss(w Word) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.missed = append(r.missed, w)
}

func (r *recorder) OnSpecialEffect(effect SpecialEffect, value int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects = append(r.effects, effectEvent{effect, value})
}

func (r *recorder) OnMistype(m Mistype) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mistypes = append(r.mistypes, m)
}

func (r *recorder) counts() (completed, missed, effects, mistypes int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.completed), len(r.missed), len(r.effects), len(r.mistypes)
}

// quietTable keeps spawn tickers from firing during a test
func quietTable() parameter.Table {
	table := parameter.DefaultTable()
	for m, row := range table {
		for d, s := range row {
			s.SpawnInterval = time.Hour
			table.Set(m, d, s)
		}
	}
	return table
}

func testConfig(clock *MockTimeProvider, rec *recorder) Config {
	return Config{
		Settings: Settings{
			Mode:       parameter.ModeAction,
			Difficulty: parameter.DifficultyMedium,
			Category:   content.CategoryGeneral,
		},
		Table:          quietTable(),
		MotionInterval: time.Hour,
		Sink:           rec,
		Clock:          clock,
		Rand:           rand.New(rand.NewSource(7)),
	}
}

// newTestEngine returns a started engine whose tickers never fire on their own;
// tests drive motion with Tick and place words with put
func newTestEngine(t *testing.T, mutate ...func(*Config)) (*Engine, *MockTimeProvider, *recorder) {
	t.Helper()
	clock := NewMockTimeProvider(testEpoch)
	rec := &recorder{}
	cfg := testConfig(clock, rec)
	for _, m := range mutate {
		m(&cfg)
	}

	e, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, e.Start())
	t.Cleanup(e.Stop)
	return e, clock, rec
}

// put inserts a falling word with a fixed position and speed
func (e *Engine) put(text string, y, speed float64) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	w := &Word{
		ID:        e.registry.NextID(),
		Text:      text,
		X:         50,
		Y:         y,
		Speed:     speed,
		Remaining: text,
		State:     StateFalling,
		CreatedAt: e.clock.Now(),
	}
	e.registry.Add(w)
	return w.ID
}

// putSpecial inserts a falling word carrying an effect
func (e *Engine) putSpecial(text string, effect SpecialEffect, multiplier int) uint64 {
	id := e.put(text, 10, 1)
	e.mu.Lock()
	defer e.mu.Unlock()
	w := e.registry.Get(id)
	w.Effect = effect
	w.Multiplier = multiplier
	return id
}

func typeKeys(e *Engine, s string) {
	for _, r := range s {
		e.HandleKey(string(r))
	}
}

func mustWord(t *testing.T, e *Engine, id uint64) Word {
	t.Helper()
	w, ok := e.Snapshot().Word(id)
	require.True(t, ok, "word %d not in registry", id)
	return w
}

// checkInvariants asserts the registry-wide invariants on a snapshot
func checkInvariants(t *testing.T, snap Snapshot) {
	t.Helper()
	targeted := 0
	var lastID uint64
	for _, w := range snap.Words {
		require.Equal(t, w.Text, w.Completed+w.Remaining, "prefix partition broken for word %d", w.ID)
		require.Greater(t, w.ID, lastID, "ids must increase in creation order")
		lastID = w.ID
		if w.State == StateTargeted {
			targeted++
			require.Equal(t, snap.TargetID, w.ID)
			require.Len(t, snap.Typed, len(w.Completed))
		}
	}
	require.LessOrEqual(t, targeted, 1, "more than one targeted word")
	if targeted == 0 {
		require.Zero(t, snap.TargetID)
		require.Empty(t, snap.Typed)
	}
}

func errCode(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	return fmt.Sprint(oopsErr.Code())
}
