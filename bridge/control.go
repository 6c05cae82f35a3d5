package bridge

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/x42/jack-midi-cmd/command"
	"github.com/x42/jack-midi-cmd/debug"
	"github.com/x42/jack-midi-cmd/queue"
)

// pollInterval bounds how long a termination request can go unnoticed
// while the loop waits for input.
const pollInterval = time.Second

// Control is the non-realtime half of the bridge. It reads command lines,
// feeds events to the queue, applies control actions, and owns the
// Running to Exiting transition.
type Control struct {
	in        io.Reader
	out       io.Writer
	queue     *queue.Queue
	state     *State
	reconnect func()
	prompt    bool
}

// ControlConfig wires a Control.
type ControlConfig struct {
	Input     io.Reader
	Output    io.Writer // user-facing output, diagnostics and prompt
	Queue     *queue.Queue
	State     *State
	Reconnect func() // invoked on the reconnect command
	Prompt    bool   // print the interactive prompt
}

// NewControl returns a control loop over cfg.
func NewControl(cfg ControlConfig) *Control {
	return &Control{
		in:        cfg.Input,
		out:       cfg.Output,
		queue:     cfg.Queue,
		state:     cfg.State,
		reconnect: cfg.Reconnect,
		prompt:    cfg.Prompt,
	}
}

// Run reads and applies commands until an exit command, end of input, a
// read error, or an externally triggered Exiting state. End of input is an
// orderly shutdown and returns nil; a read failure comes back wrapped.
// Either way the state is Exiting when Run returns. Waits are bounded by
// pollInterval, so an external termination request is honored within a
// second even with no input arriving.
func (c *Control) Run() error {
	lines := make(chan string)
	errc := make(chan error, 1)
	go c.readLines(lines, errc)

	tick := time.NewTicker(pollInterval)
	defer tick.Stop()
	defer c.state.Exit()

	if c.prompt {
		fmt.Fprint(c.out, "\n> ")
		defer fmt.Fprintln(c.out)
	}
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				if err := <-errc; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				return nil
			}
			if c.handle(line) {
				return nil
			}
			if c.prompt {
				fmt.Fprint(c.out, "> ")
			}
		case <-tick.C:
			if c.state.Exiting() {
				return nil
			}
		case <-c.state.Done():
			return nil
		}
	}
}

// readLines feeds scanned input to the loop, stopping when input ends or
// the process starts exiting.
func (c *Control) readLines(lines chan<- string, errc chan<- error) {
	sc := bufio.NewScanner(c.in)
	for sc.Scan() {
		select {
		case lines <- sc.Text():
		case <-c.state.Done():
			return
		}
	}
	errc <- sc.Err()
	close(lines)
}

// handle applies one parsed line and reports whether the loop should stop.
func (c *Control) handle(line string) bool {
	res := command.Parse(line)
	switch res.Action {
	case command.Send:
		if c.queue.TryEnqueue(res.Event) {
			debug.Log("queue", "queued %d bytes: %s", res.Event.Size, res.Event)
		} else {
			// Lossy by contract: the newest event goes, quietly.
			debug.Log("queue", "queue full, dropped: %s", res.Event)
		}
	case command.Exit:
		c.state.Exit()
		return true
	case command.Reconnect:
		debug.Log("control", "reconnect requested")
		if c.reconnect != nil {
			c.reconnect()
		}
	case command.Help:
		fmt.Fprint(c.out, command.HelpText)
	case command.Invalid:
		fmt.Fprintln(c.out, " -- Invalid Message, try 'help'")
	}
	return false
}
