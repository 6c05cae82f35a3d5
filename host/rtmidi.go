package host

import (
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/x42/jack-midi-cmd/bridge"
	"github.com/x42/jack-midi-cmd/debug"
)

// rtmidiHost exposes a virtual output port and mirrors every event to
// the ports routed with Connect. Cycles come from the shared clock
// since rtmidi has no process callback of its own.
type rtmidiHost struct {
	virtual drivers.Out

	senders   map[string]func(gomidi.Message) error
	sendersMu sync.RWMutex

	stop     chan struct{}
	stopOnce sync.Once
}

func openRtmidi(clientName string) (Host, error) {
	drv, ok := drivers.Get().(*rtmididrv.Driver)
	if !ok {
		return nil, fmt.Errorf("rtmididrv driver not available")
	}
	out, err := drv.OpenVirtualOut(clientName)
	if err != nil {
		return nil, fmt.Errorf("open virtual port %s: %w", clientName, err)
	}

	h := &rtmidiHost{
		virtual: out,
		senders: make(map[string]func(gomidi.Message) error),
		stop:    make(chan struct{}),
	}
	debug.Log("host", "rtmidi virtual port %s up", out.String())
	return h, nil
}

func (h *rtmidiHost) Name() string { return DriverRtmidi }

func (h *rtmidiHost) Start(e *bridge.Engine) error {
	e.BindPort(h)
	go runCycles(e, h.stop)
	return nil
}

// Begin is a no-op; events go out as the queue drains.
func (h *rtmidiHost) Begin(nframes uint32) {}

func (h *rtmidiHost) Write(offset uint32, data []byte) bool {
	err := h.virtual.Send(data)

	h.sendersMu.RLock()
	for _, send := range h.senders {
		send(gomidi.Message(data))
	}
	h.sendersMu.RUnlock()

	return err == nil
}

// Connect opens target and routes a copy of every event to it. Routing
// the same target twice is a no-op.
func (h *rtmidiHost) Connect(target string) error {
	h.sendersMu.RLock()
	_, ok := h.senders[target]
	h.sendersMu.RUnlock()
	if ok {
		return nil
	}

	port, err := gomidi.FindOutPort(target)
	if err != nil {
		return fmt.Errorf("cannot connect port %s to %s: %w", h.virtual.String(), target, err)
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		return fmt.Errorf("cannot connect port %s to %s: %w", h.virtual.String(), target, err)
	}

	h.sendersMu.Lock()
	h.senders[target] = send
	h.sendersMu.Unlock()
	debug.Log("host", "sending to %s", port.String())
	return nil
}

func (h *rtmidiHost) Close() error {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
	h.virtual.Close()
	gomidi.CloseDriver()
	return nil
}
