// Package audio synthesizes short game cues and looping mode themes through beep
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/word-rain/parameter"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Player is the cue playback surface used by the game loop and Sink
type Player interface {
	Play(cue Cue)
}

// SoundManager manages all game audio
// Every method is safe before Initialize and after Cleanup; calls are dropped
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	theme       *beep.Ctrl
	themeMode   parameter.Mode
	initialized bool
	muted       bool
	played      map[Cue]int
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		played: make(map[Cue]int),
	}
}

// Initialize opens the speaker; an error means no audio device, the game runs silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.theme != nil {
		sm.theme.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()

	sm.theme = nil
	sm.initialized = false
}

// SetMuted silences new cues and pauses the theme
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = muted
	if sm.theme != nil && sm.initialized {
		speaker.Lock()
		sm.theme.Paused = muted
		speaker.Unlock()
	}
}

// Muted reports whether playback is silenced
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Play mixes a one-shot cue over whatever is playing
func (sm *SoundManager) Play(cue Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	streamer := CueStreamer(cue)
	if streamer == nil {
		return
	}
	sm.played[cue]++

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// PlayTheme starts the looping theme for a mode, replacing any other theme
func (sm *SoundManager) PlayTheme(mode parameter.Mode) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	// Same theme already playing
	if sm.theme != nil && sm.themeMode == mode && !sm.theme.Paused {
		return
	}

	ctrl := &beep.Ctrl{Streamer: ThemeStreamer(mode), Paused: sm.muted}

	speaker.Lock()
	if sm.theme != nil {
		sm.theme.Paused = true
		sm.theme.Streamer = nil
	}
	sm.mixer.Add(ctrl)
	speaker.Unlock()

	sm.theme = ctrl
	sm.themeMode = mode
}

// StopTheme stops the looping theme
func (sm *SoundManager) StopTheme() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.theme == nil || !sm.initialized {
		return
	}
	speaker.Lock()
	sm.theme.Paused = true
	sm.theme.Streamer = nil
	speaker.Unlock()
	sm.theme = nil
}

// Played returns how many times a cue reached the mixer
func (sm *SoundManager) Played(cue Cue) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[cue]
}
