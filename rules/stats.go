package rules

import (
	"math"
	"time"
)

// Stats summarizes typing performance for a session
type Stats struct {
	WordsTyped        int
	CharactersTyped   int
	Mistypes          int
	Misses            int
	Accuracy          float64 // percent; misses count against it like mistypes
	WPM               float64 // completed words per minute of unpaused game time
	LongestStreak     int
	AverageWordLength float64
	Elapsed           time.Duration
}

// tally is the mutable counter set behind Stats
type tally struct {
	words    int
	chars    int
	mistypes int
	misses   int
	streak   int
	longest  int
}

func (t *tally) word(length int) {
	t.words++
	t.chars += length
	t.streak++
	t.longest = max(t.longest, t.streak)
}

func (t *tally) miss() {
	t.misses++
	t.streak = 0
}

func (t *tally) mistype(resetStreak bool) {
	t.mistypes++
	if resetStreak {
		t.streak = 0
	}
}

func (t *tally) snapshot(elapsed time.Duration) Stats {
	s := Stats{
		WordsTyped:      t.words,
		CharactersTyped: t.chars,
		Mistypes:        t.mistypes,
		Misses:          t.misses,
		Accuracy:        100,
		LongestStreak:   t.longest,
		Elapsed:         elapsed,
	}
	if attempts := t.words + t.mistypes + t.misses; attempts > 0 {
		s.Accuracy = math.Round(float64(t.words) / float64(attempts) * 100)
	}
	if t.words > 0 {
		s.AverageWordLength = float64(t.chars) / float64(t.words)
	}
	if minutes := elapsed.Minutes(); minutes > 0 {
		s.WPM = math.Round(float64(t.words) / minutes)
	}
	return s
}

// Stats returns the current session statistics
func (g *Game) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stats.snapshot(g.elapsed)
}
