package engine

import (
	"sync"
	"time"
)

// MockTimeProvider provides a controllable time source for testing
// Tickers created from it fire only when Advance moves time past their deadline
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
	tickers     map[*mockTicker]struct{}
}

// NewMockTimeProvider creates a new mock time provider with the given start time
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{
		currentTime: startTime,
		tickers:     make(map[*mockTicker]struct{}),
	}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// SetTime sets the current time for the mock without firing tickers
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance moves time forward and fires every ticker whose deadline passed
// Like time.Ticker, a ticker holds at most one pending tick; extra ticks are dropped
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)

	for t := range m.tickers {
		for !t.next.After(m.currentTime) {
			select {
			case t.ch <- t.next:
			default:
			}
			t.next = t.next.Add(t.period)
		}
	}
}

// NewTicker registers a ticker driven by Advance
func (m *MockTimeProvider) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("non-positive interval for NewTicker")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &mockTicker{
		owner:  m,
		ch:     make(chan time.Time, 1),
		period: d,
		next:   m.currentTime.Add(d),
	}
	m.tickers[t] = struct{}{}
	return t
}

// TickerCount returns the number of live tickers, used to assert teardown
func (m *MockTimeProvider) TickerCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tickers)
}

type mockTicker struct {
	owner  *MockTimeProvider
	ch     chan time.Time
	period time.Duration
	next   time.Time
}

func (t *mockTicker) C() <-chan time.Time { return t.ch }

func (t *mockTicker) Stop() {
	t.owner.mu.Lock()
	delete(t.owner.tickers, t)
	t.owner.mu.Unlock()
}
