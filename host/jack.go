package host

import (
	"errors"
	"fmt"

	"github.com/xthexder/go-jack"

	"github.com/x42/jack-midi-cmd/bridge"
	"github.com/x42/jack-midi-cmd/debug"
)

// jackHost owns a JACK client with one MIDI output port. The server
// drives the engine through the process callback, so this backend has
// no cycle clock of its own.
type jackHost struct {
	client *jack.Client
	port   *jack.Port
	writer jackWriter
}

// jackWriter adapts the port buffer of the current cycle to the
// engine. The MidiData scratch persists across cycles to keep the
// process callback free of allocation.
type jackWriter struct {
	port *jack.Port
	buf  jack.MidiBuffer
	md   jack.MidiData
}

func (w *jackWriter) Begin(nframes uint32) {
	w.buf = w.port.MidiClearBuffer(nframes)
}

func (w *jackWriter) Write(offset uint32, data []byte) bool {
	w.md.Time = offset
	w.md.Buffer = data
	return w.port.MidiEventWrite(&w.md, w.buf) == 0
}

func openJack(clientName string, onShutdown func()) (Host, error) {
	client, status := jack.ClientOpen(clientName, jack.NullOption)
	if client == nil {
		return nil, fmt.Errorf("jack_client_open() failed, status = 0x%x", status)
	}

	h := &jackHost{client: client}
	h.port = client.PortRegister("out", jack.DEFAULT_MIDI_TYPE, jack.PortIsOutput, 0)
	if h.port == nil {
		client.Close()
		return nil, errors.New("cannot register midi output port")
	}
	h.writer.port = h.port

	if onShutdown != nil {
		client.OnShutdown(onShutdown)
	}
	debug.Log("host", "jack client %s up", client.GetName())
	return h, nil
}

func (h *jackHost) Name() string { return DriverJack }

func (h *jackHost) Start(e *bridge.Engine) error {
	e.BindPort(&h.writer)
	if code := h.client.SetProcessCallback(e.OnCycle); code != 0 {
		return fmt.Errorf("cannot set process callback (%d)", code)
	}
	if code := h.client.Activate(); code != 0 {
		return errors.New("cannot activate client")
	}
	return nil
}

func (h *jackHost) Connect(target string) error {
	if code := h.client.Connect(h.port.GetName(), target); code != 0 {
		return fmt.Errorf("cannot connect port %s to %s", h.port.GetName(), target)
	}
	debug.Log("host", "connected %s to %s", h.port.GetName(), target)
	return nil
}

func (h *jackHost) Close() error {
	if h.client == nil {
		return nil
	}
	h.client.Close()
	h.client = nil
	return nil
}
