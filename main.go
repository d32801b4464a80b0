package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"herorun/lib/midictl"
)

// Prints decoded trigger events from a MIDI surface, for checking pad and
// footswitch wiring before pointing herokiosk at it.
func main() {
	defer midi.CloseDriver()

	substr := ""
	if len(os.Args) > 1 {
		substr = os.Args[1]
	}

	port, err := midictl.FindInPort(substr)
	if err != nil {
		fmt.Println("Available MIDI input ports:")
		for _, p := range midi.GetInPorts() {
			fmt.Printf("  %s\n", p)
		}
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		os.Exit(1)
	}

	dec := &midictl.Decoder{PadBase: 36}

	fmt.Printf("Listening on: %s\n", port)

	stop, err := midi.ListenTo(port, func(msg midi.Message, timestampms int32) {
		if event := dec.Decode(msg); event != nil {
			fmt.Println(event)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listening: %v\n", err)
		os.Exit(1)
	}
	defer stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	fmt.Println()
}
