package midi

import (
	"bytes"
	"testing"
)

func TestEventBytes(t *testing.T) {
	var e Event
	e.Size = 3
	e.Data[0] = NoteOn
	e.Data[1] = 0x3C
	e.Data[2] = 0x7F

	if got := e.Bytes(); !bytes.Equal(got, []byte{0x90, 0x3C, 0x7F}) {
		t.Errorf("Bytes() = % x, want 90 3c 7f", got)
	}

	// Bytes must alias the event payload, not copy it.
	e.Data[1] = 0x40
	if got := e.Bytes(); got[1] != 0x40 {
		t.Errorf("Bytes() returned a copy, got[1] = %#x", got[1])
	}
}

func TestEventString(t *testing.T) {
	var e Event
	e.Size = 3
	e.Data = [MaxEventBytes]byte{0x90, 0x3C, 0x7F}
	if got := e.String(); got != "90 3c 7f" {
		t.Errorf("String() = %q, want %q", got, "90 3c 7f")
	}

	one := Event{Size: 1, Data: [MaxEventBytes]byte{0xFE}}
	if got := one.String(); got != "fe" {
		t.Errorf("String() = %q, want %q", got, "fe")
	}
}
