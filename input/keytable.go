package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to intents for each mode
type KeyTable struct {
	// Special keys valid in every mode (Ctrl+*, resize-independent)
	SystemKeys map[tcell.Key]IntentType

	// Special keys per mode
	PlayingKeys  map[tcell.Key]IntentType
	PausedKeys   map[tcell.Key]IntentType
	GameOverKeys map[tcell.Key]IntentType

	// Rune bindings for the menu-like modes; Playing types every typeable rune
	PausedRunes   map[rune]IntentType
	GameOverRunes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SystemKeys: map[tcell.Key]IntentType{
			tcell.KeyCtrlQ: IntentQuit,
			tcell.KeyCtrlC: IntentQuit,
			tcell.KeyCtrlS: IntentToggleMute,
			tcell.KeyCtrlR: IntentRestart,
		},

		PlayingKeys: map[tcell.Key]IntentType{
			tcell.KeyEscape:     IntentPause,
			tcell.KeyBackspace:  IntentTextBackspace,
			tcell.KeyBackspace2: IntentTextBackspace,
		},

		PausedKeys: map[tcell.Key]IntentType{
			tcell.KeyEscape: IntentPause,
			tcell.KeyEnter:  IntentPause,
		},

		GameOverKeys: map[tcell.Key]IntentType{
			tcell.KeyEnter:  IntentRestart,
			tcell.KeyEscape: IntentQuit,
		},

		PausedRunes: map[rune]IntentType{
			' ': IntentPause,
			'q': IntentQuit,
			'm': IntentCycleMode,
			'd': IntentCycleDifficulty,
			'c': IntentCycleCategory,
		},

		GameOverRunes: map[rune]IntentType{
			'r': IntentRestart,
			'q': IntentQuit,
		},
	}
}
