// Package bridge connects the non-realtime control context to the
// realtime callback context: a shared process state, the engine that
// drains the event queue once per cycle, and the control loop that feeds
// it from stdin.
package bridge

import (
	"sync"
	"sync/atomic"
)

// Process states.
const (
	Running int32 = iota
	Exiting
)

// State is the shared two-valued process flag. It starts Running and
// moves to Exiting exactly once, never back; the transition also closes
// Done so selects notice without waiting for the next poll. Exit is an
// atomic store plus a channel close, safe to call from any goroutine and
// from signal handling.
type State struct {
	flag atomic.Int32
	done chan struct{}
	once sync.Once
}

// NewState returns a State in Running.
func NewState() *State {
	return &State{done: make(chan struct{})}
}

// Exit moves the state to Exiting. Idempotent.
func (s *State) Exit() {
	s.once.Do(func() {
		s.flag.Store(Exiting)
		close(s.done)
	})
}

// Exiting reports whether Exit has been called.
func (s *State) Exiting() bool {
	return s.flag.Load() == Exiting
}

// Done is closed once the state reaches Exiting.
func (s *State) Done() <-chan struct{} {
	return s.done
}
