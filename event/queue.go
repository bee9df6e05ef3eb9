package event

import (
	"sync/atomic"

	"github.com/lixenwraith/word-rain/parameter"
)

// slot pairs an event with the sequence number that gates it
// seq == pos means free for the producer claiming pos; seq == pos+1 means readable at pos
type slot struct {
	seq atomic.Uint64
	ev  GameEvent
}

// EventQueue is a bounded MPSC ring between engine sinks and the frame loop
// Push may be called from any ticker goroutine; Drain only from the frame loop.
// A full ring rejects the new event and counts it as dropped, so events already
// queued keep their order
type EventQueue struct {
	slots   [parameter.EventQueueSize]slot
	tail    atomic.Uint64 // next write position
	head    atomic.Uint64 // next read position
	dropped atomic.Uint64
}

// NewEventQueue creates an empty queue; the zero value is not usable
func NewEventQueue() *EventQueue {
	q := &EventQueue{}
	for i := range q.slots {
		q.slots[i].seq.Store(uint64(i))
	}
	return q
}

// Push appends an event without blocking; false when the ring is full
func (q *EventQueue) Push(ev GameEvent) bool {
	for {
		pos := q.tail.Load()
		s := &q.slots[pos&parameter.EventBufferMask]
		seq := s.seq.Load()

		switch {
		case seq == pos:
			if q.tail.CompareAndSwap(pos, pos+1) {
				s.ev = ev
				s.seq.Store(pos + 1)
				return true
			}
		case seq < pos:
			// Slot still holds an unread event from the previous lap
			q.dropped.Add(1)
			return false
		}
		// Another producer claimed pos; retry with the new tail
	}
}

// Drain hands every readable event to fn in FIFO order and returns the count
// Stops at a slot whose producer has not finished writing; the rest arrives next call
func (q *EventQueue) Drain(fn func(GameEvent)) int {
	n := 0
	for n < parameter.EventQueueSize {
		pos := q.head.Load()
		s := &q.slots[pos&parameter.EventBufferMask]
		if s.seq.Load() != pos+1 {
			break
		}
		ev := s.ev
		s.ev = GameEvent{}
		s.seq.Store(pos + parameter.EventQueueSize)
		q.head.Store(pos + 1)

		fn(ev)
		n++
	}
	return n
}

// Discard drops every readable event, used when a round is thrown away
func (q *EventQueue) Discard() int {
	return q.Drain(func(GameEvent) {})
}

// Len returns the approximate pending event count
func (q *EventQueue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	return min(int(tail-head), parameter.EventQueueSize)
}

// Dropped returns the number of events rejected on a full ring
func (q *EventQueue) Dropped() uint64 {
	return q.dropped.Load()
}
