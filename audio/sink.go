package audio

import "github.com/lixenwraith/word-rain/engine"

// Sink plays the cue matching each engine notification
type Sink struct {
	Player Player
}

var _ engine.EventSink = Sink{}

func (s Sink) OnWordComplete(engine.Word) {
	s.Player.Play(CueWordComplete)
}

func (s Sink) OnWordMiss(engine.Word) {
	s.Player.Play(CueWordMiss)
}

func (s Sink) OnSpecialEffect(effect engine.SpecialEffect, _ int) {
	if cue, ok := EffectCue(effect); ok {
		s.Player.Play(cue)
	}
}

func (s Sink) OnMistype(engine.Mistype) {
	s.Player.Play(CueMistype)
}
