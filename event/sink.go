package event

import "github.com/lixenwraith/word-rain/engine"

// QueueSink forwards engine notifications into an EventQueue
// Push never blocks, so it is safe to call from engine ticker goroutines; a full queue drops the event
type QueueSink struct {
	Queue *EventQueue
}

var _ engine.EventSink = QueueSink{}

func (s QueueSink) OnWordComplete(w engine.Word) {
	s.Queue.Push(GameEvent{Type: EventWordComplete, Payload: &WordPayload{Word: w}})
}

func (s QueueSink) OnWordMiss(w engine.Word) {
	s.Queue.Push(GameEvent{Type: EventWordMiss, Payload: &WordPayload{Word: w}})
}

func (s QueueSink) OnSpecialEffect(effect engine.SpecialEffect, value int) {
	s.Queue.Push(GameEvent{Type: EventSpecialEffect, Payload: &EffectPayload{Effect: effect, Value: value}})
}

func (s QueueSink) OnMistype(m engine.Mistype) {
	s.Queue.Push(GameEvent{Type: EventMistype, Payload: &MistypePayload{Mistype: m}})
}

// Replay delivers a queued event to sink; unknown types and payloads are dropped
func Replay(ev GameEvent, sink engine.EventSink) {
	switch p := ev.Payload.(type) {
	case *WordPayload:
		switch ev.Type {
		case EventWordComplete:
			sink.OnWordComplete(p.Word)
		case EventWordMiss:
			sink.OnWordMiss(p.Word)
		}
	case *EffectPayload:
		if ev.Type == EventSpecialEffect {
			sink.OnSpecialEffect(p.Effect, p.Value)
		}
	case *MistypePayload:
		if ev.Type == EventMistype {
			sink.OnMistype(p.Mistype)
		}
	}
}
