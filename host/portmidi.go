package host

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rakyll/portmidi"

	"github.com/x42/jack-midi-cmd/bridge"
	"github.com/x42/jack-midi-cmd/debug"
)

// portmidiHost writes to the system default output device and to any
// device routed with Connect. Like rtmidi it runs on the shared cycle
// clock.
type portmidiHost struct {
	name string
	def  *portmidi.Stream // system default output, may be nil

	streams   map[string]*portmidi.Stream
	streamsMu sync.RWMutex

	stop     chan struct{}
	stopOnce sync.Once
}

func openPortmidi(clientName string) (Host, error) {
	if err := portmidi.Initialize(); err != nil {
		return nil, err
	}

	h := &portmidiHost{
		name:    clientName,
		streams: make(map[string]*portmidi.Stream),
		stop:    make(chan struct{}),
	}

	// The default device is optional. Connect can still route to
	// named devices when there is none.
	if id := portmidi.DefaultOutputDeviceID(); id >= 0 {
		stream, err := portmidi.NewOutputStream(id, 1024, 0)
		if err != nil {
			portmidi.Terminate()
			return nil, err
		}
		h.def = stream
		debug.Log("host", "portmidi default device %s", portmidi.Info(id).Name)
	}
	return h, nil
}

func (h *portmidiHost) Name() string { return DriverPortmidi }

func (h *portmidiHost) Start(e *bridge.Engine) error {
	e.BindPort(h)
	go runCycles(e, h.stop)
	return nil
}

// Begin is a no-op; events go out as the queue drains.
func (h *portmidiHost) Begin(nframes uint32) {}

func (h *portmidiHost) Write(offset uint32, data []byte) bool {
	ok := true
	if h.def != nil && writeStream(h.def, data) != nil {
		ok = false
	}

	h.streamsMu.RLock()
	for _, s := range h.streams {
		writeStream(s, data)
	}
	h.streamsMu.RUnlock()

	return ok
}

// writeStream picks the PortMidi call by message size. Anything beyond
// three bytes goes out as sysex.
func writeStream(s *portmidi.Stream, data []byte) error {
	var d1, d2 int64
	switch len(data) {
	case 0:
		return nil
	case 1:
	case 2:
		d1 = int64(data[1])
	default:
		d1 = int64(data[1])
		d2 = int64(data[2])
	}
	if len(data) > 3 {
		return s.WriteSysExBytes(portmidi.Time(), data)
	}
	return s.WriteShort(int64(data[0]), d1, d2)
}

// Connect opens the first output device whose name contains target.
// Routing the same target twice is a no-op.
func (h *portmidiHost) Connect(target string) error {
	h.streamsMu.RLock()
	_, ok := h.streams[target]
	h.streamsMu.RUnlock()
	if ok {
		return nil
	}

	id := portmidi.DeviceID(-1)
	for i := 0; i < portmidi.CountDevices(); i++ {
		info := portmidi.Info(portmidi.DeviceID(i))
		if info.IsOutputAvailable && strings.Contains(info.Name, target) {
			id = portmidi.DeviceID(i)
			break
		}
	}
	if id < 0 {
		return fmt.Errorf("cannot connect port %s to %s", h.name, target)
	}

	stream, err := portmidi.NewOutputStream(id, 1024, 0)
	if err != nil {
		return fmt.Errorf("cannot connect port %s to %s: %w", h.name, target, err)
	}

	h.streamsMu.Lock()
	h.streams[target] = stream
	h.streamsMu.Unlock()
	debug.Log("host", "sending to %s", portmidi.Info(id).Name)
	return nil
}

func (h *portmidiHost) Close() error {
	h.stopOnce.Do(func() {
		close(h.stop)
	})

	h.streamsMu.Lock()
	for _, s := range h.streams {
		s.Close()
	}
	h.streams = make(map[string]*portmidi.Stream)
	h.streamsMu.Unlock()

	if h.def != nil {
		h.def.Close()
		h.def = nil
	}
	portmidi.Terminate()
	return nil
}
