package engine

import (
	"sync"
	"time"

	"github.com/lixenwraith/word-rain/core"
)

// ClockScheduler runs a callback on a fixed cadence in its own goroutine
// Each Start creates a fresh ticker, so a restart never replays ticks missed while stopped
type ClockScheduler struct {
	name  string
	clock TimeProvider
	fn    func()

	mu       sync.Mutex
	interval time.Duration
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

// NewClockScheduler creates a stopped scheduler
func NewClockScheduler(name string, clock TimeProvider, interval time.Duration, fn func()) *ClockScheduler {
	return &ClockScheduler{
		name:     name,
		clock:    clock,
		interval: interval,
		fn:       fn,
	}
}

// SetInterval changes the cadence used by the next Start
func (cs *ClockScheduler) SetInterval(d time.Duration) {
	cs.mu.Lock()
	cs.interval = d
	cs.mu.Unlock()
}

// Interval returns the configured cadence
func (cs *ClockScheduler) Interval() time.Duration {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.interval
}

// Start launches the scheduler loop; no-op when already running
func (cs *ClockScheduler) Start() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.running {
		return
	}
	cs.running = true
	cs.stopChan = make(chan struct{})
	ticker := cs.clock.NewTicker(cs.interval)
	stop := cs.stopChan

	cs.wg.Add(1)
	// Use core.Go for safe execution with centralized crash handling
	core.Go(func() { cs.loop(ticker, stop) })
}

// Stop halts the loop and waits for an in-flight callback to return
// Must not be called from inside the callback
func (cs *ClockScheduler) Stop() {
	cs.mu.Lock()
	if !cs.running {
		cs.mu.Unlock()
		return
	}
	cs.running = false
	close(cs.stopChan)
	cs.mu.Unlock()

	cs.wg.Wait()
}

// Running reports whether the loop goroutine is active
func (cs *ClockScheduler) Running() bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.running
}

func (cs *ClockScheduler) loop(ticker Ticker, stop <-chan struct{}) {
	defer cs.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			// Stop wins over a tick that raced with it
			select {
			case <-stop:
				return
			default:
			}
			cs.fn()
		}
	}
}
