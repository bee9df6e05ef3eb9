package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/word-rain/engine"
	"github.com/lixenwraith/word-rain/parameter"
)

// Cue identifies a one-shot sound
type Cue uint8

const (
	CueKeypress Cue = iota
	CueWordComplete
	CueWordMiss
	CueMistype
	CueGameStart
	CueGameOver
	CuePowerUp
	CueExplosion
	CueFreeze
	CueMultiplier
)

// Cues lists every cue
var Cues = []Cue{
	CueKeypress, CueWordComplete, CueWordMiss, CueMistype, CueGameStart,
	CueGameOver, CuePowerUp, CueExplosion, CueFreeze, CueMultiplier,
}

var cueNames = map[Cue]string{
	CueKeypress:     "keypress",
	CueWordComplete: "wordComplete",
	CueWordMiss:     "wordMiss",
	CueMistype:      "mistype",
	CueGameStart:    "gameStart",
	CueGameOver:     "gameOver",
	CuePowerUp:      "powerUp",
	CueExplosion:    "explosion",
	CueFreeze:       "freeze",
	CueMultiplier:   "multiplier",
}

// String returns the cue name
func (c Cue) String() string {
	if name, ok := cueNames[c]; ok {
		return name
	}
	return "unknown"
}

// EffectCue maps a special effect to its cue
func EffectCue(effect engine.SpecialEffect) (Cue, bool) {
	switch effect {
	case engine.EffectPowerUp:
		return CuePowerUp, true
	case engine.EffectBomb:
		return CueExplosion, true
	case engine.EffectFreeze:
		return CueFreeze, true
	case engine.EffectMultiplier:
		return CueMultiplier, true
	}
	return 0, false
}

// waveform selects a generators tone
type waveform uint8

const (
	sine waveform = iota
	square
	triangle
)

// note is one pitched segment of a cue; freq 0 is a rest
type note struct {
	freq float64
	dur  time.Duration
	wave waveform
}

// melodies for the pitched cues, loosely a C major palette
var melodies = map[Cue][]note{
	CueKeypress:     {{1200, 25 * time.Millisecond, sine}},
	CueWordComplete: {{659, 70 * time.Millisecond, sine}, {880, 110 * time.Millisecond, sine}},
	CueWordMiss:     {{330, 120 * time.Millisecond, triangle}, {220, 220 * time.Millisecond, triangle}},
	CueGameStart:    {{440, 90 * time.Millisecond, sine}, {554, 90 * time.Millisecond, sine}, {659, 160 * time.Millisecond, sine}},
	CueGameOver: {
		{440, 180 * time.Millisecond, triangle}, {330, 180 * time.Millisecond, triangle},
		{262, 180 * time.Millisecond, triangle}, {196, 400 * time.Millisecond, triangle},
	},
	CuePowerUp: {
		{523, 50 * time.Millisecond, square}, {659, 50 * time.Millisecond, square},
		{784, 50 * time.Millisecond, square}, {1047, 120 * time.Millisecond, square},
	},
	CueFreeze:     {{1319, 60 * time.Millisecond, triangle}, {0, 30 * time.Millisecond, sine}, {1568, 160 * time.Millisecond, triangle}},
	CueMultiplier: {{880, 60 * time.Millisecond, square}, {1175, 140 * time.Millisecond, square}},
}

// cueVolume is the per-cue gain in beep's exponential volume units (base 2)
var cueVolume = map[Cue]float64{
	CueKeypress:   -4,
	CuePowerUp:    -2.5,
	CueMultiplier: -2.5,
}

// CueDuration returns the length of a cue's sound
func CueDuration(c Cue) time.Duration {
	switch c {
	case CueMistype:
		return mistypeDuration
	case CueExplosion:
		return explosionDuration
	}
	var d time.Duration
	for _, n := range melodies[c] {
		d += n.dur
	}
	return d
}

const (
	mistypeDuration   = 150 * time.Millisecond
	explosionDuration = 300 * time.Millisecond
)

// CueStreamer synthesizes a finite streamer for the cue, nil for unknown cues
func CueStreamer(c Cue) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueMistype:
		s = beep.Take(sampleRate.N(mistypeDuration), newBuzz(sampleRate, 120))
	case CueExplosion:
		s = beep.Take(sampleRate.N(explosionDuration), newNoiseBurst(sampleRate, time.Now().UnixNano()))
	default:
		notes, ok := melodies[c]
		if !ok {
			return nil
		}
		parts := make([]beep.Streamer, 0, len(notes))
		for _, n := range notes {
			parts = append(parts, n.streamer())
		}
		s = beep.Seq(parts...)
	}

	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   cueVolume[c] - 1.5,
	}
}

func (n note) streamer() beep.Streamer {
	samples := sampleRate.N(n.dur)
	if n.freq <= 0 {
		return generators.Silence(samples)
	}

	var tone beep.Streamer
	var err error
	switch n.wave {
	case square:
		tone, err = generators.SquareTone(sampleRate, n.freq)
	case triangle:
		tone, err = generators.TriangleTone(sampleRate, n.freq)
	default:
		tone, err = generators.SineTone(sampleRate, n.freq)
	}
	if err != nil {
		// Frequency above Nyquist; keep the rhythm
		return generators.Silence(samples)
	}
	return beep.Take(samples, newFade(tone, samples))
}

// ThemeStreamer returns the endless background theme for a mode
func ThemeStreamer(mode parameter.Mode) beep.Streamer {
	if mode == parameter.ModeAction {
		return newPulse(sampleRate)
	}
	return newSwell(sampleRate)
}
