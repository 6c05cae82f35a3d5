package host

import (
	"strings"
	"testing"
	"time"

	"github.com/x42/jack-midi-cmd/bridge"
	"github.com/x42/jack-midi-cmd/queue"
)

type tickPort struct {
	begins chan uint32
}

func (p *tickPort) Begin(nframes uint32) {
	select {
	case p.begins <- nframes:
	default:
	}
}

func (p *tickPort) Write(offset uint32, data []byte) bool { return true }

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("bogus", "midicmd", nil)
	if err == nil {
		t.Fatal("Open accepted an unknown driver")
	}
	if !strings.Contains(err.Error(), "unknown midi driver") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCyclesDrivesEngine(t *testing.T) {
	q := queue.New(queue.DefaultCapacity)
	e := bridge.NewEngine(q)
	p := &tickPort{begins: make(chan uint32, 1)}
	e.BindPort(p)

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		runCycles(e, stop)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case nframes := <-p.begins:
			if nframes != cycleFrames {
				t.Fatalf("cycle ran %d frames, want %d", nframes, cycleFrames)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("cycle clock never ticked")
		}
	}

	close(stop)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("runCycles did not stop")
	}
}
