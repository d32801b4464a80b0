package main

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/exec"
	"strings"

	"herorun/lib/carousel"
	"herorun/lib/site"
)

//go:embed static
var staticFS embed.FS

func main() {
	addr := ":8080"
	var runAndExit []string

	for _, arg := range os.Args[1:] {
		if v, ok := strings.CutPrefix(arg, "--run-and-exit="); ok {
			runAndExit = strings.Fields(v)
		} else {
			addr = arg
		}
	}

	s, err := loadSite()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading site: %v\n", err)
		os.Exit(1)
	}

	seq, err := carousel.New(s.Hero.TotalVideos, s.Hero.SourcePattern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srv := &server{site: s, seq: seq}
	mux := srv.routes(sub)

	if len(runAndExit) > 0 {
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		hs := &http.Server{Handler: mux}
		go hs.Serve(ln)

		cmd := exec.Command(runAndExit[0], runAndExit[1:]...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		cmdErr := cmd.Run()
		hs.Shutdown(context.Background())
		if cmdErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", cmdErr)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Listening on %s\n", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadSite() (*site.Site, error) {
	buf, err := staticFS.ReadFile("static/site.json")
	if err != nil {
		return nil, err
	}
	var s site.Site
	if err := json.Unmarshal(buf, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
