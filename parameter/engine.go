package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MotionInterval is the motion tick period (~60 updates per second)
	MotionInterval = time.Second / 60

	// MotionUnit is the elapsed time that moves a word by exactly its speed
	// Displacement is normalized by real elapsed time, not by tick count
	MotionUnit = 16 * time.Millisecond

	// GracePeriod is how long a completed or missed word lingers before pruning
	GracePeriod = time.Second
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)

// Frame Loop
const (
	// MessageTTL is how long an effect notice stays on screen
	MessageTTL = 1500 * time.Millisecond

	// MaxMessages caps the notice stack
	MaxMessages = 4
)
