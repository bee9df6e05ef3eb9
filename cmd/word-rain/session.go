package main

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/word-rain/audio"
	"github.com/lixenwraith/word-rain/config"
	"github.com/lixenwraith/word-rain/content"
	"github.com/lixenwraith/word-rain/engine"
	"github.com/lixenwraith/word-rain/event"
	"github.com/lixenwraith/word-rain/input"
	"github.com/lixenwraith/word-rain/parameter"
	"github.com/lixenwraith/word-rain/render"
	"github.com/lixenwraith/word-rain/rules"
	"github.com/lixenwraith/word-rain/status"
)

type message struct {
	text string
	ttl  time.Duration
}

// session owns one terminal game: engine, scoring, sound and the frame loop state
// Only the frame loop goroutine touches session fields; engine events arrive through the queue
type session struct {
	screen   tcell.Screen
	renderer *render.TerminalRenderer
	machine  *input.Machine
	engine   *engine.Engine
	game     *rules.Game
	queue    *event.EventQueue
	sound    *audio.SoundManager
	cues     audio.Sink
	log      zerolog.Logger

	customWords []string
	messages    []message
}

// newSession wires the engine to the rules sink and the frame loop queue
// clock may be nil for the monotonic clock
func newSession(cfg *config.Config, screen tcell.Screen, logger zerolog.Logger, reg *status.Registry, clock engine.TimeProvider) (*session, error) {
	queue := event.NewEventQueue()
	game := rules.NewGame(rules.GameConfig{
		Difficulty:   cfg.Difficulty,
		StreakPolicy: cfg.StreakPolicy,
		Logger:       &logger,
		Status:       reg,
	})

	eng, err := engine.New(engine.Config{
		Settings:     cfg.Settings,
		Table:        cfg.Table,
		StreakPolicy: cfg.StreakPolicy,
		Sink:         engine.MultiSink{game, event.QueueSink{Queue: queue}},
		Clock:        clock,
		Logger:       &logger,
		Status:       reg,
	})
	if err != nil {
		return nil, err
	}

	sound := audio.NewSoundManager()
	if cfg.Sound {
		if err := sound.Initialize(); err != nil {
			logger.Warn().Err(err).Msg("audio unavailable, continuing silent")
		}
	}

	return &session{
		screen:      screen,
		renderer:    render.NewTerminalRenderer(screen),
		machine:     input.NewMachine(),
		engine:      eng,
		game:        game,
		queue:       queue,
		sound:       sound,
		cues:        audio.Sink{Player: sound},
		log:         logger.With().Str("component", "session").Str("session", eng.Session()).Logger(),
		customWords: cfg.CustomWords,
	}, nil
}

func (s *session) start() error {
	if err := s.engine.Start(); err != nil {
		return err
	}
	s.sound.Play(audio.CueGameStart)
	s.sound.PlayTheme(s.engine.Settings().Mode)
	return nil
}

func (s *session) close() {
	s.engine.Stop()
	s.sound.Cleanup()
	if dropped := s.queue.Dropped(); dropped > 0 {
		s.log.Warn().Uint64("dropped", dropped).Msg("event queue overflowed")
	}
}

// run multiplexes terminal events and the frame ticker until quit or the event source closes
func (s *session) run(events <-chan tcell.Event) {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if it := s.machine.Process(ev); it != nil && !s.handleIntent(it) {
				return
			}
		case now := <-ticker.C:
			s.frame(now.Sub(last))
			last = now
		}
	}
}

// handleIntent applies one input intent; false means quit
func (s *session) handleIntent(it *input.Intent) bool {
	switch it.Type {
	case input.IntentQuit:
		return false

	case input.IntentTextChar:
		s.sound.Play(audio.CueKeypress)
		s.engine.HandleKey(it.Key)

	case input.IntentTextBackspace:
		s.engine.HandleKey(it.Key)

	case input.IntentPause:
		s.togglePause()

	case input.IntentRestart:
		s.restart()

	case input.IntentToggleMute:
		s.sound.SetMuted(!s.sound.Muted())

	case input.IntentResize:
		s.screen.Sync()
		s.renderer.UpdateDimensions()

	case input.IntentCycleMode, input.IntentCycleDifficulty, input.IntentCycleCategory:
		s.cycleSetting(it.Type)
	}
	return true
}

func (s *session) togglePause() {
	switch s.machine.Mode() {
	case input.ModePlaying:
		s.engine.Pause()
		s.sound.StopTheme()
		s.machine.SetMode(input.ModePaused)
	case input.ModePaused:
		if err := s.engine.Resume(); err != nil {
			s.log.Error().Err(err).Msg("resume failed")
			return
		}
		s.sound.PlayTheme(s.engine.Settings().Mode)
		s.machine.SetMode(input.ModePlaying)
	}
}

// restart begins a fresh round under the current settings from any mode
func (s *session) restart() {
	s.engine.Restart()
	s.queue.Discard()
	s.messages = nil
	s.game.StartRound(s.engine.Settings().Difficulty, s.engine.RoundStart())

	if s.engine.Paused() {
		if err := s.engine.Resume(); err != nil {
			s.log.Error().Err(err).Msg("resume failed")
			return
		}
	}
	s.machine.SetMode(input.ModePlaying)
	s.sound.Play(audio.CueGameStart)
	s.sound.PlayTheme(s.engine.Settings().Mode)
}

// cycleSetting advances one setting while paused; the engine resets its field
func (s *session) cycleSetting(t input.IntentType) {
	next := s.engine.Settings()
	switch t {
	case input.IntentCycleMode:
		next.Mode = cycle(parameter.Modes, next.Mode)
	case input.IntentCycleDifficulty:
		next.Difficulty = cycle(parameter.Difficulties, next.Difficulty)
	case input.IntentCycleCategory:
		categories := content.Categories
		if len(s.customWords) == 0 {
			categories = slices.DeleteFunc(slices.Clone(categories), func(c content.Category) bool {
				return c == content.CategoryCustom
			})
		}
		next.Category = cycle(categories, next.Category)
		next.CustomWords = s.customWords
	}

	if err := s.engine.Reconfigure(next); err != nil {
		s.notify(err.Error())
		return
	}
	s.queue.Discard()
	s.game.StartRound(next.Difficulty, s.engine.RoundStart())
}

// frame consumes queued events, advances the countdown and draws
func (s *session) frame(dt time.Duration) {
	roundStart := s.engine.RoundStart()
	s.queue.Drain(func(ev event.GameEvent) {
		switch p := ev.Payload.(type) {
		case *event.WordPayload:
			// A tick that raced a restart may still report words of the cleared field
			if p.Word.ID < roundStart {
				return
			}
		case *event.EffectPayload:
			s.notify(effectMessage(p.Effect, p.Value))
		}
		event.Replay(ev, s.cues)
	})

	if s.machine.Mode() == input.ModePlaying {
		s.game.Tick(dt)
		select {
		case <-s.game.Over():
			s.gameOver()
		default:
		}
	}

	s.ageMessages(dt)
	s.renderer.RenderFrame(s.buildFrame())
}

func (s *session) gameOver() {
	s.engine.Pause()
	s.sound.StopTheme()
	s.sound.Play(audio.CueGameOver)
	s.machine.SetMode(input.ModeGameOver)

	st := s.game.State()
	stats := s.game.Stats()
	s.log.Info().
		Str("reason", st.Reason.String()).
		Int("score", st.Score).
		Float64("wpm", stats.WPM).
		Float64("accuracy", stats.Accuracy).
		Msg("round over")
}

func (s *session) buildFrame() render.Frame {
	f := render.Frame{
		Snapshot: s.engine.Snapshot(),
		Score:    s.game.State(),
		Muted:    s.sound.Muted(),
	}
	switch s.machine.Mode() {
	case input.ModePaused:
		f.Overlay = render.OverlayPaused
	case input.ModeGameOver:
		f.Overlay = render.OverlayGameOver
		f.Stats = s.game.Stats()
	}
	for _, m := range s.messages {
		f.Messages = append(f.Messages, m.text)
	}
	return f
}

func (s *session) notify(text string) {
	s.messages = append(s.messages, message{text: text, ttl: parameter.MessageTTL})
	if over := len(s.messages) - parameter.MaxMessages; over > 0 {
		s.messages = s.messages[over:]
	}
}

func (s *session) ageMessages(dt time.Duration) {
	kept := s.messages[:0]
	for _, m := range s.messages {
		if m.ttl -= dt; m.ttl > 0 {
			kept = append(kept, m)
		}
	}
	s.messages = kept
}

func effectMessage(effect engine.SpecialEffect, value int) string {
	switch effect {
	case engine.EffectPowerUp:
		return fmt.Sprintf("+%d LIFE", parameter.PowerUpLife)
	case engine.EffectBomb:
		return "BOOM"
	case engine.EffectFreeze:
		return fmt.Sprintf("+%ds TIME", parameter.FreezeBonusSeconds)
	case engine.EffectMultiplier:
		return fmt.Sprintf("x%d +%d", value, value*parameter.MultiplierPoints)
	}
	return strings.ToUpper(effect.String())
}

// cycle returns the element after cur, wrapping; an unknown cur yields the first
func cycle[T comparable](list []T, cur T) T {
	i := slices.Index(list, cur)
	return list[(i+1)%len(list)]
}
