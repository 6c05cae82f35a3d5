package midi

import (
	"fmt"
	"strings"
)

// MIDI status bytes
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
	CC      uint8 = 0xB0
)

// MaxEventBytes is the fixed payload capacity of an Event.
const MaxEventBytes = 16

// Event is one MIDI wire message waiting for delivery. Time is the frame
// offset within the delivery cycle; this tool always uses 0, the start of
// the next cycle. Events are built by the command parser and read, never
// mutated, by the realtime callback.
type Event struct {
	Time uint32
	Size int
	Data [MaxEventBytes]byte
}

// Bytes returns the live prefix of the payload without copying it.
func (e *Event) Bytes() []byte {
	return e.Data[:e.Size]
}

// String renders the payload as space-separated hex for diagnostics.
func (e Event) String() string {
	var b strings.Builder
	for i := 0; i < e.Size && i < MaxEventBytes; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02x", e.Data[i])
	}
	return b.String()
}
