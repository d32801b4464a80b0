package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"herorun/lib/player"
)

func main() {
	host := "127.0.0.1"
	port := player.DefaultPort

	if len(os.Args) > 1 {
		host = os.Args[1]
	}
	if len(os.Args) > 2 {
		p, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: bad port %q\n", os.Args[2])
			os.Exit(1)
		}
		port = p
	}

	client, err := player.Dial(host, port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	version, err := client.Version()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Player %s at %s:%d\n", version, host, port)

	clips, err := client.Clips()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, c := range clips {
		ready := " "
		if c.Ready {
			ready = "*"
		}
		fmt.Printf("  %s %2d %-20s %6.1fs %s\n", ready, c.Index, c.Name, c.Duration, c.Source)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case u := <-client.Updates():
			fmt.Println(u.Address)
		case <-sig:
			fmt.Println()
			return
		}
	}
}
