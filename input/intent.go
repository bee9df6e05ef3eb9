package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit       // Ctrl+Q, Ctrl+C
	IntentPause      // ESC toggles pause and resume
	IntentRestart    // Ctrl+R, or Enter/r on the game over screen
	IntentToggleMute // Ctrl+S
	IntentResize     // Terminal resize event

	// Typing
	IntentTextChar      // Typeable character, carried in Key
	IntentTextBackspace // Backspace

	// Settings cycling while paused
	IntentCycleMode       // m
	IntentCycleDifficulty // d
	IntentCycleCategory   // c
)

// Intent represents a parsed semantic action
type Intent struct {
	Type IntentType
	Key  string // engine key identifier for text intents
}
