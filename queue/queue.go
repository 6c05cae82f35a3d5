// Package queue implements the bounded single-producer single-consumer
// ring buffer that carries MIDI events from the control context to the
// realtime callback.
package queue

import (
	"sync/atomic"

	"github.com/x42/jack-midi-cmd/midi"
)

// DefaultCapacity is the slot count used by the bridge.
const DefaultCapacity = 256

// Queue is a fixed-capacity ring buffer of MIDI events shared between
// exactly one enqueuing goroutine and one draining goroutine; that
// discipline is what makes it safe without locks. One slot stays reserved
// so that empty (read == write) and full ((write+1) mod size == read) are
// distinguishable without a separate count: a queue of capacity c holds at
// most c-1 events. Allocated once, never resized.
type Queue struct {
	slots []midi.Event
	size  uint32
	read  atomic.Uint32 // consumer-owned
	write atomic.Uint32 // producer-owned
}

// New returns a queue with the given slot count. Capacities below 2 are
// raised to 2, the smallest ring that can hold an event.
func New(capacity int) *Queue {
	if capacity < 2 {
		capacity = 2
	}
	return &Queue{
		slots: make([]midi.Event, capacity),
		size:  uint32(capacity),
	}
}

// TryEnqueue copies ev into the next write slot and publishes it. When the
// queue is full it returns false and mutates nothing: the newest event is
// the one dropped, everything already queued is preserved. Producer side
// only. Never blocks, never allocates.
func (q *Queue) TryEnqueue(ev midi.Event) bool {
	w := q.write.Load()
	next := (w + 1) % q.size
	if next == q.read.Load() {
		return false
	}
	q.slots[w] = ev
	// The slot copy above must be visible before the new index; the
	// atomic store is the publish.
	q.write.Store(next)
	return true
}

// Drain consumes every event that was pending when it was called, passing
// a pointer into the ring to emit for each one in FIFO order. The pointer
// is only valid until emit returns; right after, the slot is released back
// to the producer by advancing the read index. Consumer side only. Work is
// bounded by the number of pending events, with no locks, syscalls or
// allocation. Returns the number of events drained.
func (q *Queue) Drain(emit func(*midi.Event)) int {
	r := q.read.Load()
	w := q.write.Load()
	n := 0
	for r != w {
		emit(&q.slots[r])
		r = (r + 1) % q.size
		q.read.Store(r)
		n++
	}
	return n
}

// Len estimates the number of queued events. Both indices can move while
// it runs, so this is for diagnostics and tests, not control flow.
func (q *Queue) Len() int {
	r := q.read.Load()
	w := q.write.Load()
	return int((w + q.size - r) % q.size)
}

// Cap reports how many events the queue can hold at once.
func (q *Queue) Cap() int {
	return int(q.size) - 1
}
