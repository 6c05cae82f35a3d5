// Package command turns operator-typed lines into MIDI events and control
// actions.
package command

import (
	"strconv"
	"strings"

	"github.com/x42/jack-midi-cmd/midi"
)

// Action says what the control loop should do with a parsed line.
type Action int

const (
	None      Action = iota // blank line, nothing to do
	Send                    // deliver Outcome.Event
	Exit                    // stop the process
	Reconnect               // re-apply the startup port connections
	Help                    // print the command summary
	Invalid                 // line matched no rule
)

// Outcome is the result of parsing one line. Event is meaningful only
// when Action is Send.
type Outcome struct {
	Action Action
	Event  midi.Event
}

// HelpText is the summary printed for the help command.
const HelpText = ` -- Commands:
      . <hex> <hex> <hex>   raw 3-byte MIDI message
      CC <num> <val>        control change (0xB0)
      N <note> <vel>        note on (0x90)
      n <note> <vel>        note off (0x80)
      2 <int> <int>         raw 2-byte message
      1 <int>               raw 1-byte message
      reconnect             re-apply port connections
      exit                  quit
`

// Parse matches one line against the command grammar. It is pure; any
// diagnostic printing belongs to the caller. The first whitespace-separated
// token selects the rule, keywords match that token exactly, and arguments
// beyond the ones a rule consumes are ignored. Integer arguments take any
// base strconv accepts with base 0 (decimal, 0x hex, leading-zero octal);
// hex arguments take base-16 digits with an optional 0x prefix. Channel
// voice data bytes are masked to 7 bits, everything else to 8. Produced
// events carry frame offset 0: delivery at the start of the next cycle.
func Parse(line string) Outcome {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Outcome{Action: None}
	}
	args := fields[1:]
	switch fields[0] {
	case "exit":
		return Outcome{Action: Exit}
	case "reconnect":
		return Outcome{Action: Reconnect}
	case "help":
		return Outcome{Action: Help}
	case ".":
		if h, ok := hexArgs(args, 3); ok {
			return Outcome{Action: Send, Event: voice(byte(h[0]), byte(h[1]), byte(h[2]))}
		}
	case "CC":
		if v, ok := intArgs(args, 2); ok {
			return Outcome{Action: Send, Event: voice(midi.CC, byte(v[0]), byte(v[1]))}
		}
	case "N":
		if v, ok := intArgs(args, 2); ok {
			return Outcome{Action: Send, Event: voice(midi.NoteOn, byte(v[0]), byte(v[1]))}
		}
	case "n":
		if v, ok := intArgs(args, 2); ok {
			return Outcome{Action: Send, Event: voice(midi.NoteOff, byte(v[0]), byte(v[1]))}
		}
	case "2":
		if v, ok := intArgs(args, 2); ok {
			return Outcome{Action: Send, Event: raw(byte(v[0]), byte(v[1]))}
		}
	case "1":
		if v, ok := intArgs(args, 1); ok {
			return Outcome{Action: Send, Event: raw(byte(v[0]))}
		}
	}
	return Outcome{Action: Invalid}
}

// voice builds a three-byte channel-voice message. The status byte is
// taken as-is, the data bytes are masked to the 7-bit MIDI range.
func voice(status, d1, d2 byte) midi.Event {
	var e midi.Event
	e.Size = 3
	e.Data[0] = status
	e.Data[1] = d1 & 0x7F
	e.Data[2] = d2 & 0x7F
	return e
}

// raw builds a message from bytes taken as-is.
func raw(b ...byte) midi.Event {
	var e midi.Event
	e.Size = copy(e.Data[:], b)
	return e
}

// intArgs parses the first n args as integers, base 0. A malformed or
// missing argument fails the whole rule; partial-token numbers are not
// accepted.
func intArgs(args []string, n int) ([3]int64, bool) {
	var out [3]int64
	if len(args) < n {
		return out, false
	}
	for i := 0; i < n; i++ {
		v, err := strconv.ParseInt(args[i], 0, 64)
		if err != nil {
			return out, false
		}
		out[i] = v
	}
	return out, true
}

// hexArgs parses the first n args as base-16 with an optional 0x prefix.
func hexArgs(args []string, n int) ([3]uint64, bool) {
	var out [3]uint64
	if len(args) < n {
		return out, false
	}
	for i := 0; i < n; i++ {
		s := args[i]
		if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
			s = s[2:]
		}
		v, err := strconv.ParseUint(s, 16, 64)
		if err != nil {
			return out, false
		}
		out[i] = v
	}
	return out, true
}
