package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/x42/jack-midi-cmd/bridge"
	"github.com/x42/jack-midi-cmd/config"
	"github.com/x42/jack-midi-cmd/debug"
	"github.com/x42/jack-midi-cmd/host"
	"github.com/x42/jack-midi-cmd/queue"
)

const version = "0.2.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("jack-midi-cmd - interactive MIDI message sender.\n\n")
	fmt.Printf("Usage: jack-midi-cmd [ OPTIONS ] [port]*\n\n")
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
	fmt.Printf("\nReads MIDI messages from stdin and sends them to a MIDI output\nport. Ports named on the command line are connected at startup.\n")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	name := flag.String("name", cfg.ClientName, "MIDI client name")
	driver := flag.String("driver", cfg.Driver, "MIDI backend (jack, rtmidi or portmidi)")
	dbg := flag.Bool("debug", cfg.Debug, "write a debug log to the config directory")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("jack-midi-cmd version %s\n", version)
		return nil
	}

	if *dbg {
		if err := debug.Enable(); err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	state := bridge.NewState()
	q := queue.New(queue.DefaultCapacity)
	engine := bridge.NewEngine(q)

	h, err := host.Open(*driver, *name, func() {
		fmt.Fprintln(os.Stderr, "recv. shutdown request from jackd.")
		state.Exit()
	})
	if err != nil {
		return err
	}
	defer func() {
		h.Close()
		fmt.Fprintln(os.Stderr, "bye.")
	}()
	debug.Log("main", "%s host up as %s", h.Name(), *name)

	lockMemory()

	if err := h.Start(engine); err != nil {
		return err
	}

	targets := flag.Args()
	if len(targets) == 0 {
		targets = cfg.Connect
	}
	connectAll(h, targets)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGHUP)
	go func() {
		select {
		case <-sigc:
			fmt.Fprintln(os.Stderr, "caught signal - shutting down.")
			state.Exit()
		case <-state.Done():
		}
	}()

	interactive := isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())

	ctl := bridge.NewControl(bridge.ControlConfig{
		Input:  os.Stdin,
		Output: os.Stdout,
		Queue:  q,
		State:  state,
		Reconnect: func() {
			connectAll(h, targets)
		},
		Prompt: interactive,
	})
	return ctl.Run()
}

// connectAll connects the output to each target, reporting failures
// without giving up.
func connectAll(h host.Host, targets []string) {
	for _, t := range targets {
		if err := h.Connect(t); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
