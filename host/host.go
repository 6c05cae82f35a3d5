// Package host connects the event engine to a MIDI backend.
//
// Three backends are available: the JACK audio server, a virtual port
// through rtmidi, and PortMidi. All of them feed the same engine; only
// port discovery and the delivery of bytes differ.
package host

import (
	"fmt"

	"github.com/x42/jack-midi-cmd/bridge"
)

// Driver names accepted by Open.
const (
	DriverJack     = "jack"
	DriverRtmidi   = "rtmidi"
	DriverPortmidi = "portmidi"
)

// Host is the interface for MIDI output backends.
type Host interface {
	// Name returns the driver name the host was opened with.
	Name() string

	// Start binds the engine to the output port and begins running
	// cycles. Call it once, after Open and before Connect.
	Start(e *bridge.Engine) error

	// Connect routes the output port to a destination port.
	Connect(target string) error

	// Lifecycle
	Close() error
}

// Open creates the backend selected by driver. The onShutdown hook
// fires when the backend terminates on its own, such as jackd going
// away underneath the client.
func Open(driver, clientName string, onShutdown func()) (Host, error) {
	switch driver {
	case DriverJack:
		return openJack(clientName, onShutdown)
	case DriverRtmidi:
		return openRtmidi(clientName)
	case DriverPortmidi:
		return openPortmidi(clientName)
	}
	return nil, fmt.Errorf("unknown midi driver %q", driver)
}
