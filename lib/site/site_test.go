package site

import "testing"

func validSite() *Site {
	return &Site{
		Brand:   "Astral",
		Tagline: "Enter the metagame layer",
		URL:     "https://astral.example",
		Hero: Hero{
			TotalVideos:   4,
			SourcePattern: "videos/hero-%d.mp4",
			TransitionMs:  1000,
			Clips: []*HeroClip{
				{Index: 1, Title: "Radiant"},
				{Index: 2, Title: "Zigma"},
				{Index: 3, Title: "Nexus"},
				{Index: 4, Title: "Azul", Loop: true},
			},
		},
		Features: []*Feature{
			{ID: "radiant", Title: "Radiant", Text: "Cross-platform metagame", Span: "full", Video: "videos/feature-1.mp4"},
			{ID: "zigma", Title: "Zigma", Text: "NFT collection", Span: "tall"},
			{ID: "nexus", Title: "Nexus", Text: "Social hub", Span: "half"},
			{ID: "more", ComingSoon: true, Span: "tile"},
		},
		Links: []*LinkSection{
			{ID: "explore", Title: "Explore", Items: []*Link{
				{Label: "Home", Href: "#hero"},
				{Label: "Features", Href: "#features"},
			}},
			{ID: "social", Title: "Follow", Items: []*Link{
				{Label: "Discord", Href: "https://discord.example"},
			}},
		},
		Contact: Contact{
			Heading: "Let's build the new era together",
			CTA:     "Contact us",
			Email:   "hello@astral.example",
		},
	}
}

func TestValidateOK(t *testing.T) {
	if err := validSite().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestValidateNil(t *testing.T) {
	var s *Site
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for nil site")
	}
}

func TestValidateEmptyBrand(t *testing.T) {
	s := validSite()
	s.Brand = ""
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for empty brand")
	}
}

func TestValidateHeroClipCountMismatch(t *testing.T) {
	s := validSite()
	s.Hero.Clips = s.Hero.Clips[:3]
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for clip count mismatch")
	}
}

func TestValidateHeroDuplicateClipIndex(t *testing.T) {
	s := validSite()
	s.Hero.Clips[3].Index = 2
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for duplicate clip index")
	}
}

func TestValidateHeroClipIndexOutOfRange(t *testing.T) {
	s := validSite()
	s.Hero.Clips[3].Index = 9
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for out-of-range clip index")
	}
}

func TestValidateHeroPatternWithoutSlot(t *testing.T) {
	s := validSite()
	s.Hero.SourcePattern = "videos/hero.mp4"
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for pattern without index slot")
	}
}

func TestValidateHeroTransitionNotPositive(t *testing.T) {
	s := validSite()
	s.Hero.TransitionMs = 0
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for zero transition duration")
	}
}

func TestValidateDuplicateFeatureID(t *testing.T) {
	s := validSite()
	s.Features[1].ID = "radiant"
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for duplicate feature id")
	}
}

func TestValidateInvalidSpan(t *testing.T) {
	s := validSite()
	s.Features[0].Span = "wide"
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for invalid span")
	}
}

func TestValidateLinkWithoutHref(t *testing.T) {
	s := validSite()
	s.Links[0].Items[0].Href = ""
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for empty href")
	}
}

func TestValidateBadContactEmail(t *testing.T) {
	s := validSite()
	s.Contact.Email = "not-an-address"
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for bad contact email")
	}
}

func TestClipLookup(t *testing.T) {
	s := validSite()
	c := s.Hero.Clip(3)
	if c == nil {
		t.Fatal("clip 3 not found")
	}
	if c.Title != "Nexus" {
		t.Errorf("got %q, want %q", c.Title, "Nexus")
	}
	if s.Hero.Clip(99) != nil {
		t.Error("expected nil for unknown index")
	}
}
