package input

// InputMode mirrors the game screen the parser is feeding
// Kept in sync by the game loop via SetMode()
type InputMode uint8

const (
	ModePlaying InputMode = iota
	ModePaused
	ModeGameOver
)

// String returns the mode name
func (m InputMode) String() string {
	switch m {
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	case ModeGameOver:
		return "game over"
	default:
		return "unknown"
	}
}
