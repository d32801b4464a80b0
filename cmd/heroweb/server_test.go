package main

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	"herorun/lib/carousel"
	"herorun/lib/site"
)

func setupTest(t *testing.T) (*server, *http.ServeMux) {
	t.Helper()

	s, err := loadSite()
	if err != nil {
		t.Fatal(err)
	}
	seq, err := carousel.New(s.Hero.TotalVideos, s.Hero.SourcePattern)
	if err != nil {
		t.Fatal(err)
	}
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		t.Fatal(err)
	}
	srv := &server{site: s, seq: seq}
	return srv, srv.routes(sub)
}

func TestEmbeddedSiteValidates(t *testing.T) {
	s, err := loadSite()
	if err != nil {
		t.Fatal(err)
	}
	if s.Brand == "" {
		t.Error("embedded site has empty brand")
	}
	if s.Hero.TotalVideos < 2 {
		t.Errorf("embedded site has %d hero videos, want at least 2", s.Hero.TotalVideos)
	}
}

func TestSiteEndpoint(t *testing.T) {
	_, mux := setupTest(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/site", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}

	var s site.Site
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	if s.Brand != "Astral" {
		t.Errorf("got %q, want %q", s.Brand, "Astral")
	}
}

func TestCarouselEndpoint(t *testing.T) {
	_, mux := setupTest(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/carousel", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}

	var snap carousel.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Current != 1 || snap.Preview != 2 {
		t.Errorf("got current %d preview %d, want 1 2", snap.Current, snap.Preview)
	}
	if !snap.Loading {
		t.Error("expected loading true on fresh carousel")
	}
}

func TestAdvanceEndpoint(t *testing.T) {
	_, mux := setupTest(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/api/carousel/advance", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}

	var res advanceResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if !res.Accepted {
		t.Error("first advance not accepted")
	}
	if res.Snapshot.Current != 2 {
		t.Errorf("got current %d, want 2", res.Snapshot.Current)
	}

	// Second click lands mid-transition and must be ignored.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/api/carousel/advance", nil))
	json.Unmarshal(rec.Body.Bytes(), &res)
	if res.Accepted {
		t.Error("advance accepted while transitioning")
	}
	if res.Snapshot.Current != 2 {
		t.Errorf("got current %d, want 2", res.Snapshot.Current)
	}
}

func TestTransitionDoneReopensAdvance(t *testing.T) {
	_, mux := setupTest(t)

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/carousel/advance", nil))
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/carousel/transition-done", nil))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/api/carousel/advance", nil))
	var res advanceResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if !res.Accepted {
		t.Error("advance rejected after transition-done")
	}
	if res.Snapshot.Current != 3 {
		t.Errorf("got current %d, want 3", res.Snapshot.Current)
	}
}

func TestLoadedEndpointLatch(t *testing.T) {
	srv, mux := setupTest(t)

	for n := 0; n < srv.site.Hero.TotalVideos-1; n++ {
		mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/carousel/loaded", nil))
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/carousel", nil))
	var snap carousel.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Loading {
		t.Error("loading still true after all ready signals")
	}
}

func TestAdvanceRejectsGet(t *testing.T) {
	_, mux := setupTest(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/carousel/advance", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("got status %d, want 405", rec.Code)
	}
}

func TestQREndpoint(t *testing.T) {
	_, mux := setupTest(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/qr.png", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("got content type %q, want %q", ct, "image/png")
	}
	if rec.Body.Len() == 0 {
		t.Error("empty QR body")
	}
}

func TestHealthEndpoint(t *testing.T) {
	_, mux := setupTest(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}

	var report healthReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatal(err)
	}
	if report.Status != "ok" {
		t.Errorf("got status %q, want %q", report.Status, "ok")
	}
	if report.Goroutines < 1 {
		t.Errorf("got %d goroutines, want at least 1", report.Goroutines)
	}
}
