package host

import (
	"runtime"
	"time"

	"github.com/x42/jack-midi-cmd/bridge"
	"github.com/x42/jack-midi-cmd/debug"
)

// Cycle clock for backends without a server-driven process callback.
// 480 frames per 10ms tick mirrors a 48kHz period of the same length.
const (
	cyclePeriod = 10 * time.Millisecond
	cycleFrames = 480
)

// runCycles drives the engine at a fixed rate until stop is closed.
func runCycles(e *bridge.Engine, stop <-chan struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ticker := time.NewTicker(cyclePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.OnCycle(cycleFrames)
			debug.LogEvery(3000, "cycle", "clock alive")
		}
	}
}
