package engine

import "time"

// Ticker delivers periodic ticks; mirrors the subset of time.Ticker the engine uses
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TimeProvider supplies wall time and tickers
// Production uses the monotonic system clock; tests substitute MockTimeProvider
type TimeProvider interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// NewTicker wraps time.NewTicker
func (p *MonotonicTimeProvider) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }
func (r *realTicker) Stop()               { r.t.Stop() }
