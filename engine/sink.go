package engine

// Mistype describes a keystroke that matched no eligible word
type Mistype struct {
	Key string

	// WordID is the word whose progress was discarded, 0 for a pure mistype
	WordID uint64

	// Broken is true when a targeted word lost its progress
	Broken bool
}

// EventSink receives engine notifications
// Calls are synchronous, made after the triggering mutation is committed and the
// engine lock released. Implementations must not block and must not call the
// lifecycle methods (Pause, Resume, Stop, Reconfigure); they may read Snapshot
type EventSink interface {
	OnWordComplete(w Word)
	OnWordMiss(w Word)
	OnSpecialEffect(effect SpecialEffect, value int)
	OnMistype(m Mistype)
}

// SinkFuncs adapts optional callbacks to EventSink; nil fields are skipped
type SinkFuncs struct {
	WordComplete  func(w Word)
	WordMiss      func(w Word)
	SpecialEffect func(effect SpecialEffect, value int)
	Mistype       func(m Mistype)
}

func (s SinkFuncs) OnWordComplete(w Word) {
	if s.WordComplete != nil {
		s.WordComplete(w)
	}
}

func (s SinkFuncs) OnWordMiss(w Word) {
	if s.WordMiss != nil {
		s.WordMiss(w)
	}
}

func (s SinkFuncs) OnSpecialEffect(effect SpecialEffect, value int) {
	if s.SpecialEffect != nil {
		s.SpecialEffect(effect, value)
	}
}

func (s SinkFuncs) OnMistype(m Mistype) {
	if s.Mistype != nil {
		s.Mistype(m)
	}
}

// MultiSink fans every event out to each sink in order
type MultiSink []EventSink

func (ms MultiSink) OnWordComplete(w Word) {
	for _, s := range ms {
		s.OnWordComplete(w)
	}
}

func (ms MultiSink) OnWordMiss(w Word) {
	for _, s := range ms {
		s.OnWordMiss(w)
	}
}

func (ms MultiSink) OnSpecialEffect(effect SpecialEffect, value int) {
	for _, s := range ms {
		s.OnSpecialEffect(effect, value)
	}
}

func (ms MultiSink) OnMistype(m Mistype) {
	for _, s := range ms {
		s.OnMistype(m)
	}
}

// pendingEvent is a notification captured under the lock and delivered after release
type pendingEvent func(EventSink)
