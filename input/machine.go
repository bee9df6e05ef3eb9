package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/word-rain/engine"
)

// Machine is the input parser
// Translates tcell events into Intents according to the current mode
type Machine struct {
	mode     InputMode
	keyTable *KeyTable
}

// NewMachine creates a new input machine in playing mode
func NewMachine() *Machine {
	return &Machine{
		mode:     ModePlaying,
		keyTable: DefaultKeyTable(),
	}
}

// SetMode updates the parser's mode context
func (m *Machine) SetMode(mode InputMode) {
	m.mode = mode
}

// Mode returns the current parser mode
func (m *Machine) Mode() InputMode {
	return m.mode
}

// Process parses a terminal event and returns an Intent
// Returns nil for events with no meaning in the current mode
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventError:
		return &Intent{Type: IntentQuit}
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	key := ev.Key()

	if it, ok := m.keyTable.SystemKeys[key]; ok {
		return &Intent{Type: it}
	}

	switch m.mode {
	case ModePlaying:
		if it, ok := m.keyTable.PlayingKeys[key]; ok {
			if it == IntentTextBackspace {
				return &Intent{Type: it, Key: engine.KeyBackspace}
			}
			return &Intent{Type: it}
		}
		if key == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			if k, ok := typeable(ev.Rune()); ok {
				return &Intent{Type: IntentTextChar, Key: k}
			}
		}

	case ModePaused:
		if it, ok := m.keyTable.PausedKeys[key]; ok {
			return &Intent{Type: it}
		}
		if key == tcell.KeyRune {
			if it, ok := m.keyTable.PausedRunes[ev.Rune()]; ok {
				return &Intent{Type: it}
			}
		}

	case ModeGameOver:
		if it, ok := m.keyTable.GameOverKeys[key]; ok {
			return &Intent{Type: it}
		}
		if key == tcell.KeyRune {
			if it, ok := m.keyTable.GameOverRunes[ev.Rune()]; ok {
				return &Intent{Type: it}
			}
		}
	}
	return nil
}

// typeable maps a rune to an engine key if it is in [a-zA-Z0-9 ]
func typeable(r rune) (string, bool) {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
		return string(r), true
	}
	return "", false
}
