package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rakyll/portmidi"
	"github.com/xthexder/go-jack"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "jack":
		listJackPorts()
	case "watch":
		watchPorts()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("midiports - MIDI port inspector")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list   - List rtmidi and PortMidi ports")
	fmt.Println("  jack   - List JACK MIDI ports")
	fmt.Println("  watch  - Poll for port changes")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ins := midi.GetInPorts()
		outs := midi.GetOutPorts()
		ch <- result{ins: ins, outs: outs}
	}()

	select {
	case r := <-ch:
		for i, p := range r.ins {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, p := range r.outs {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! MIDI backend is hung.")
		return
	}
	midi.CloseDriver()

	fmt.Println("\n=== PortMidi Devices ===")
	if err := portmidi.Initialize(); err != nil {
		fmt.Printf("  portmidi: %v\n", err)
		return
	}
	defer portmidi.Terminate()

	for i := 0; i < portmidi.CountDevices(); i++ {
		info := portmidi.Info(portmidi.DeviceID(i))
		var dir []string
		if info.IsInputAvailable {
			dir = append(dir, "in")
		}
		if info.IsOutputAvailable {
			dir = append(dir, "out")
		}
		fmt.Printf("  %d: %s (%s)\n", i, info.Name, strings.Join(dir, "+"))
	}
}

func listJackPorts() {
	client, status := jack.ClientOpen("midiports", jack.NoStartServer)
	if client == nil {
		fmt.Printf("cannot connect to JACK (status 0x%x)\n", status)
		return
	}
	defer client.Close()

	fmt.Println("=== JACK MIDI Ports ===")
	for _, name := range client.GetPorts("", jack.DEFAULT_MIDI_TYPE, 0) {
		fmt.Printf("  %s\n", name)
	}
}

func watchPorts() {
	fmt.Println("Polling for port changes every 2 seconds. Ctrl+C to exit.")

	lastIn := ""
	lastOut := ""

	for {
		ins := midi.GetInPorts()
		outs := midi.GetOutPorts()

		var inNames, outNames []string
		for _, p := range ins {
			inNames = append(inNames, p.String())
		}
		for _, p := range outs {
			outNames = append(outNames, p.String())
		}

		currentIn := strings.Join(inNames, ",")
		currentOut := strings.Join(outNames, ",")

		if currentIn != lastIn || currentOut != lastOut {
			fmt.Printf("\n[%s] Port change detected!\n", time.Now().Format("15:04:05"))
			fmt.Printf("  Inputs: %v\n", inNames)
			fmt.Printf("  Outputs: %v\n", outNames)

			lastIn = currentIn
			lastOut = currentOut
		}

		time.Sleep(2 * time.Second)
	}
}
