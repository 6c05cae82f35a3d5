package bridge

import (
	"github.com/x42/jack-midi-cmd/midi"
	"github.com/x42/jack-midi-cmd/queue"
)

// CyclePort is the output side of one processing cycle. Begin acquires
// and clears the cycle's buffer; Write emits one event's bytes at a frame
// offset into it. The host backends implement this.
type CyclePort interface {
	Begin(nframes uint32)
	Write(offset uint32, data []byte) bool
}

// Engine is the realtime half of the bridge: once per processing cycle it
// drains the event queue into the bound port.
type Engine struct {
	queue *queue.Queue
	port  CyclePort
	emit  func(*midi.Event)
}

// NewEngine returns an engine draining q. The emit closure is built here,
// once, so the cycle path itself never allocates.
func NewEngine(q *queue.Queue) *Engine {
	e := &Engine{queue: q}
	e.emit = func(ev *midi.Event) {
		e.port.Write(ev.Time, ev.Data[:ev.Size])
	}
	return e
}

// BindPort attaches the cycle output. Call once, before the host starts
// invoking OnCycle.
func (e *Engine) BindPort(p CyclePort) {
	e.port = p
}

// OnCycle is the process callback: clear the cycle's buffer, write every
// queued event at its offset in drained order, report success. It runs
// under the scheduler's deadline, so nothing on this path may block,
// allocate or enter the kernel. An empty queue leaves the buffer cleared,
// which is silence; a failed port write is not escalated, reporting it is
// the host's job. The signature matches the JACK process callback.
func (e *Engine) OnCycle(nframes uint32) int {
	p := e.port
	if p == nil {
		return 0
	}
	p.Begin(nframes)
	e.queue.Drain(e.emit)
	return 0
}
