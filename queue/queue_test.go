package queue

import (
	"runtime"
	"testing"

	"github.com/x42/jack-midi-cmd/midi"
)

// seqEvent encodes seq into a two-byte event so drains can be checked
// against enqueue order.
func seqEvent(seq int) midi.Event {
	var e midi.Event
	e.Size = 2
	e.Data[0] = byte(seq >> 8)
	e.Data[1] = byte(seq)
	return e
}

func seqOf(e *midi.Event) int {
	return int(e.Data[0])<<8 | int(e.Data[1])
}

func TestFIFOOrder(t *testing.T) {
	q := New(16)
	for i := 0; i < 10; i++ {
		if !q.TryEnqueue(seqEvent(i)) {
			t.Fatalf("enqueue %d failed on a non-full queue", i)
		}
	}

	var got []int
	n := q.Drain(func(e *midi.Event) { got = append(got, seqOf(e)) })
	if n != 10 || len(got) != 10 {
		t.Fatalf("drained %d events (callback saw %d), want 10", n, len(got))
	}
	for i, s := range got {
		if s != i {
			t.Errorf("position %d: got seq %d, want %d", i, s, i)
		}
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d after full drain, want 0", q.Len())
	}
}

func TestFullQueueRejectsNewest(t *testing.T) {
	q := New(8)
	for i := 0; i < q.Cap(); i++ {
		if !q.TryEnqueue(seqEvent(i)) {
			t.Fatalf("enqueue %d failed before the queue was full", i)
		}
	}
	if q.TryEnqueue(seqEvent(99)) {
		t.Fatal("enqueue into a full queue succeeded")
	}

	// The failed enqueue must not have disturbed the queued contents.
	var got []int
	q.Drain(func(e *midi.Event) { got = append(got, seqOf(e)) })
	if len(got) != q.Cap() {
		t.Fatalf("drained %d events, want %d", len(got), q.Cap())
	}
	for i, s := range got {
		if s != i {
			t.Errorf("position %d: got seq %d, want %d", i, s, i)
		}
	}
}

func TestEmptyDrain(t *testing.T) {
	q := New(8)
	calls := 0
	if n := q.Drain(func(*midi.Event) { calls++ }); n != 0 || calls != 0 {
		t.Errorf("empty drain: n=%d calls=%d, want 0 and 0", n, calls)
	}
}

func TestWraparound(t *testing.T) {
	q := New(4) // holds 3, so 10 rounds cross the boundary repeatedly
	next := 0
	for round := 0; round < 10; round++ {
		for i := 0; i < q.Cap(); i++ {
			if !q.TryEnqueue(seqEvent(next + i)) {
				t.Fatalf("round %d: enqueue %d failed", round, next+i)
			}
		}
		q.Drain(func(e *midi.Event) {
			if got := seqOf(e); got != next {
				t.Fatalf("round %d: got seq %d, want %d", round, got, next)
			}
			next++
		})
	}
	if next != 30 {
		t.Errorf("drained %d events total, want 30", next)
	}
}

func TestCapacityClamp(t *testing.T) {
	q := New(0)
	if q.Cap() != 1 {
		t.Fatalf("New(0).Cap() = %d, want 1", q.Cap())
	}
	if !q.TryEnqueue(seqEvent(1)) {
		t.Fatal("single-slot queue rejected its first event")
	}
	if q.TryEnqueue(seqEvent(2)) {
		t.Fatal("single-slot queue accepted a second event")
	}
}

func TestLen(t *testing.T) {
	q := New(8)
	for i := 0; i < 5; i++ {
		q.TryEnqueue(seqEvent(i))
	}
	if q.Len() != 5 {
		t.Errorf("Len() = %d, want 5", q.Len())
	}
	q.Drain(func(*midi.Event) {})
	if q.Len() != 0 {
		t.Errorf("Len() = %d after drain, want 0", q.Len())
	}
}

// Events enqueued while a drain is in progress belong to the next drain:
// the pass is bounded by the write index observed on entry.
func TestDrainIsBoundedBySnapshot(t *testing.T) {
	q := New(16)
	for i := 0; i < 3; i++ {
		q.TryEnqueue(seqEvent(i))
	}
	n := q.Drain(func(*midi.Event) {
		q.TryEnqueue(seqEvent(100))
	})
	if n != 3 {
		t.Errorf("first drain consumed %d events, want 3", n)
	}
	if got := q.Drain(func(*midi.Event) {}); got != 3 {
		t.Errorf("second drain consumed %d events, want the 3 added mid-drain", got)
	}
}

// One producer, one consumer: the drained sequence must equal exactly the
// successfully enqueued sequence, in order, with nothing lost, duplicated
// or fabricated.
func TestConcurrentProducerConsumer(t *testing.T) {
	q := New(64)
	const total = 20000

	acceptedCh := make(chan []int, 1)
	go func() {
		var accepted []int
		for i := 0; i < total; i++ {
			if q.TryEnqueue(seqEvent(i)) {
				accepted = append(accepted, i)
			}
			if i%17 == 0 {
				runtime.Gosched()
			}
		}
		acceptedCh <- accepted
	}()

	var got []int
	collect := func(e *midi.Event) { got = append(got, seqOf(e)) }

	var accepted []int
	for accepted == nil {
		select {
		case accepted = <-acceptedCh:
		default:
			q.Drain(collect)
		}
	}
	// Producer is done; one more pass empties the queue.
	q.Drain(collect)

	if len(got) != len(accepted) {
		t.Fatalf("drained %d events, producer had %d accepted", len(got), len(accepted))
	}
	for i := range got {
		if got[i] != accepted[i] {
			t.Fatalf("position %d: drained seq %d, accepted seq %d", i, got[i], accepted[i])
		}
	}
}
