package main

import (
	"encoding/json"
	"io/fs"
	"net/http"

	"github.com/skip2/go-qrcode"

	"herorun/lib/carousel"
	"herorun/lib/site"
)

type server struct {
	site *site.Site
	seq  *carousel.Sequencer
}

func (s *server) routes(static fs.FS) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(static)))
	mux.HandleFunc("/api/site", s.handleSite)
	mux.HandleFunc("/api/carousel", s.handleCarousel)
	mux.HandleFunc("/api/carousel/advance", s.handleAdvance)
	mux.HandleFunc("/api/carousel/loaded", s.handleLoaded)
	mux.HandleFunc("/api/carousel/transition-done", s.handleTransitionDone)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/qr.png", s.handleQR)
	return mux
}

func (s *server) handleSite(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.site)
}

func (s *server) handleCarousel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.seq.Snapshot())
}

type advanceResult struct {
	Accepted bool              `json:"accepted"`
	Snapshot carousel.Snapshot `json:"snapshot"`
}

// handleAdvance is the preview-click gesture. Clicks during a transition are
// ignored, reported via accepted=false.
func (s *server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	accepted := s.seq.Advance()
	writeJSON(w, advanceResult{Accepted: accepted, Snapshot: s.seq.Snapshot()})
}

func (s *server) handleLoaded(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.seq.ResourceLoaded()
	writeJSON(w, s.seq.Snapshot())
}

func (s *server) handleTransitionDone(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.seq.FinishTransition()
	writeJSON(w, s.seq.Snapshot())
}

func (s *server) handleQR(w http.ResponseWriter, r *http.Request) {
	png, err := qrcode.Encode(s.site.URL, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
