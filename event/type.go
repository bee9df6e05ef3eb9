// Package event carries engine notifications from ticker goroutines to the frame loop
package event

import "github.com/lixenwraith/word-rain/engine"

// EventType represents the type of game event
type EventType int

const (
	// EventWordComplete signals a fully typed word
	// Trigger: engine matcher | Payload: *WordPayload
	EventWordComplete EventType = iota + 1

	// EventWordMiss signals a word that crossed the deadline
	// Trigger: engine motion | Payload: *WordPayload
	EventWordMiss

	// EventSpecialEffect signals an effect applied on completion, always after its EventWordComplete
	// Trigger: engine matcher | Payload: *EffectPayload
	EventSpecialEffect

	// EventMistype signals a keystroke that matched no eligible word
	// Trigger: engine matcher | Payload: *MistypePayload
	EventMistype
)

var typeToName = map[EventType]string{
	EventWordComplete:  "WordComplete",
	EventWordMiss:      "WordMiss",
	EventSpecialEffect: "SpecialEffect",
	EventMistype:       "Mistype",
}

// String returns the event name, "Unknown" for unregistered types
func (t EventType) String() string {
	if name, ok := typeToName[t]; ok {
		return name
	}
	return "Unknown"
}

// GameEvent is one queued notification
type GameEvent struct {
	Type    EventType
	Payload any
}

// WordPayload is the resolved word at the moment of the event
type WordPayload struct {
	Word engine.Word
}

// EffectPayload is a special effect and its value (multiplier factor, otherwise 1)
type EffectPayload struct {
	Effect engine.SpecialEffect
	Value  int
}

// MistypePayload wraps the engine mistype signal
type MistypePayload struct {
	Mistype engine.Mistype
}
