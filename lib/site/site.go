package site

import (
	"fmt"
	"strings"
)

// Site is the whole single-page content as data: the render layer shows what
// the configuration says, nothing more.
type Site struct {
	Brand    string         `json:"brand"`
	Tagline  string         `json:"tagline"`
	URL      string         `json:"url"`
	Hero     Hero           `json:"hero"`
	Features []*Feature     `json:"features"`
	Links    []*LinkSection `json:"links"`
	Contact  Contact        `json:"contact"`
}

type Hero struct {
	TotalVideos   int         `json:"totalVideos"`
	SourcePattern string      `json:"sourcePattern"`
	TransitionMs  int         `json:"transitionMs"`
	Clips         []*HeroClip `json:"clips"`
}

type HeroClip struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Loop  bool   `json:"loop,omitempty"`
}

type Feature struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	Video      string `json:"video,omitempty"`
	Span       string `json:"span"`
	ComingSoon bool   `json:"comingSoon,omitempty"`
}

type LinkSection struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Items []*Link `json:"items"`
}

type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Contact struct {
	Heading string `json:"heading"`
	CTA     string `json:"cta"`
	Email   string `json:"email"`
}

var validSpans = map[string]bool{
	"full": true,
	"half": true,
	"tall": true,
	"tile": true,
}

func (s *Site) Validate() error {
	if s == nil {
		return fmt.Errorf("site is nil")
	}
	if s.Brand == "" {
		return fmt.Errorf("brand is empty")
	}

	if err := s.Hero.validate(); err != nil {
		return err
	}

	featureIDs := map[string]bool{}
	for _, f := range s.Features {
		if f.ID == "" {
			return fmt.Errorf("feature with empty id")
		}
		if featureIDs[f.ID] {
			return fmt.Errorf("duplicate feature id %q", f.ID)
		}
		featureIDs[f.ID] = true
		if !validSpans[f.Span] {
			return fmt.Errorf("feature %q has invalid span %q", f.ID, f.Span)
		}
		if f.Title == "" && !f.ComingSoon {
			return fmt.Errorf("feature %q has no title", f.ID)
		}
	}

	sectionIDs := map[string]bool{}
	for _, sec := range s.Links {
		if sectionIDs[sec.ID] {
			return fmt.Errorf("duplicate link section id %q", sec.ID)
		}
		sectionIDs[sec.ID] = true
		for _, l := range sec.Items {
			if l.Label == "" {
				return fmt.Errorf("link in section %q has empty label", sec.ID)
			}
			if l.Href == "" {
				return fmt.Errorf("link %q in section %q has empty href", l.Label, sec.ID)
			}
		}
	}

	if s.Contact.Email != "" && !strings.Contains(s.Contact.Email, "@") {
		return fmt.Errorf("contact email %q is not an address", s.Contact.Email)
	}

	return nil
}

func (h *Hero) validate() error {
	if h.TotalVideos < 1 {
		return fmt.Errorf("hero needs at least 1 video, has %d", h.TotalVideos)
	}
	if !strings.Contains(h.SourcePattern, "%d") {
		return fmt.Errorf("hero source pattern %q has no index slot", h.SourcePattern)
	}
	if h.TransitionMs <= 0 {
		return fmt.Errorf("hero transition duration %dms is not positive", h.TransitionMs)
	}
	if len(h.Clips) != h.TotalVideos {
		return fmt.Errorf("hero lists %d clips but totalVideos is %d", len(h.Clips), h.TotalVideos)
	}

	seen := map[int]bool{}
	for _, c := range h.Clips {
		if c.Index < 1 || c.Index > h.TotalVideos {
			return fmt.Errorf("hero clip index %d out of range 1..%d", c.Index, h.TotalVideos)
		}
		if seen[c.Index] {
			return fmt.Errorf("duplicate hero clip index %d", c.Index)
		}
		seen[c.Index] = true
	}

	return nil
}

// Clip returns the hero clip at a 1-based index.
func (h *Hero) Clip(index int) *HeroClip {
	for _, c := range h.Clips {
		if c.Index == index {
			return c
		}
	}
	return nil
}
