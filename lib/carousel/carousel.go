package carousel

import (
	"fmt"
	"sync"
)

type Phase int

const (
	Idle Phase = iota
	Transitioning
)

func (p Phase) String() string {
	if p == Transitioning {
		return "transitioning"
	}
	return "idle"
}

// Snapshot is the rendering layer's view of the sequencer: which clip is the
// static background, which plays the transition overlay, and which is the
// clickable preview.
type Snapshot struct {
	Current       int    `json:"current"`
	Preview       int    `json:"preview"`
	Background    int    `json:"background"`
	Source        string `json:"source"`
	PreviewSource string `json:"previewSource"`
	BGSource      string `json:"backgroundSource"`
	Phase         string `json:"phase"`
	Loading       bool   `json:"loading"`
}

type Update struct {
	Snapshot Snapshot
}

type Sequencer struct {
	mu      sync.Mutex
	total   int
	pattern string
	current int
	phase   Phase
	loaded  int
	updates chan Update
}

func New(total int, pattern string) (*Sequencer, error) {
	if total < 1 {
		return nil, fmt.Errorf("carousel: total %d, need at least 1", total)
	}
	return &Sequencer{
		total:   total,
		pattern: pattern,
		current: 1,
		updates: make(chan Update, 16),
	}, nil
}

func (s *Sequencer) Updates() <-chan Update {
	return s.updates
}

func (s *Sequencer) Total() int {
	return s.total
}

func (s *Sequencer) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Preview returns the cyclic successor of the current clip. With a single
// clip it equals Current; the carousel is then a no-op.
func (s *Sequencer) Preview() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.successor(s.current)
}

// Background returns the clip shown behind the transition overlay. It equals
// Current everywhere except at the last clip, where it resolves to clip 1.
// The early wrap matches the behavior of the shipped page; see DESIGN.md.
func (s *Sequencer) Background() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background()
}

func (s *Sequencer) background() int {
	if s.current == s.total {
		return 1
	}
	return s.current
}

func (s *Sequencer) successor(i int) int {
	return i%s.total + 1
}

func (s *Sequencer) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Advance accepts the preview-click gesture. It reports whether the click was
// accepted: clicks that arrive while a transition is already playing are
// ignored, as is any click on a single-clip carousel.
func (s *Sequencer) Advance() bool {
	_, _, ok := s.AdvanceFrom()
	return ok
}

// AdvanceFrom is Advance plus the accepted swap's endpoints, taken in the
// same critical section so callers driving an external fade see a
// consistent from/to pair even with several input surfaces live.
func (s *Sequencer) AdvanceFrom() (from, to int, ok bool) {
	s.mu.Lock()
	if s.phase == Transitioning || s.total == 1 {
		s.mu.Unlock()
		return 0, 0, false
	}
	from = s.current
	s.phase = Transitioning
	s.current = s.successor(s.current)
	to = s.current
	snap := s.snapshot()
	s.mu.Unlock()
	s.notify(snap)
	return from, to, true
}

// FinishTransition records completion of the swap animation, an external
// time-based event owned by whatever plays it.
func (s *Sequencer) FinishTransition() {
	s.mu.Lock()
	if s.phase == Idle {
		s.mu.Unlock()
		return
	}
	s.phase = Idle
	snap := s.snapshot()
	s.mu.Unlock()
	s.notify(snap)
}

// ResourceLoaded counts one clip's readiness signal. The loading latch turns
// off once total-1 clips have reported and never turns back on.
func (s *Sequencer) ResourceLoaded() {
	s.mu.Lock()
	s.loaded++
	latched := s.loaded == s.total-1
	var snap Snapshot
	if latched {
		snap = s.snapshot()
	}
	s.mu.Unlock()
	if latched {
		s.notify(snap)
	}
}

func (s *Sequencer) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded < s.total-1
}

// SourceFor formats the locator for a 1-based clip index.
func (s *Sequencer) SourceFor(i int) (string, error) {
	if i < 1 || i > s.total {
		return "", fmt.Errorf("carousel: clip %d out of range 1..%d", i, s.total)
	}
	return fmt.Sprintf(s.pattern, i), nil
}

func (s *Sequencer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Sequencer) snapshot() Snapshot {
	cur, _ := s.SourceFor(s.current)
	prev, _ := s.SourceFor(s.successor(s.current))
	bg, _ := s.SourceFor(s.background())
	return Snapshot{
		Current:       s.current,
		Preview:       s.successor(s.current),
		Background:    s.background(),
		Source:        cur,
		PreviewSource: prev,
		BGSource:      bg,
		Phase:         s.phase.String(),
		Loading:       s.loaded < s.total-1,
	}
}

func (s *Sequencer) notify(snap Snapshot) {
	select {
	case s.updates <- Update{Snapshot: snap}:
	default:
	}
}
