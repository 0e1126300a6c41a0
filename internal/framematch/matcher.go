package framematch

import (
	"creditmarker/internal/framehash"
)

// Outcome classifies how one base frame was resolved.
type Outcome int

const (
	// OutcomeNotMatched means no exact hit and no fuzzy attempt.
	OutcomeNotMatched Outcome = iota
	// OutcomeMatched is an exact hash hit inside the search window.
	OutcomeMatched
	// OutcomeAlmostMatched is a fuzzy probe below the low distance threshold.
	OutcomeAlmostMatched
	// OutcomePartiallyMatched is a fuzzy probe at or above the low threshold;
	// the lock is abandoned.
	OutcomePartiallyMatched
	// OutcomeUndecided is a close fuzzy probe whose index was already used.
	OutcomeUndecided
	// OutcomeOutOfBounds is a fuzzy probe past the end of the comparison.
	OutcomeOutOfBounds
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeAlmostMatched:
		return "almost_matched"
	case OutcomePartiallyMatched:
		return "partially_matched"
	case OutcomeUndecided:
		return "undecided"
	case OutcomeOutOfBounds:
		return "out_of_bounds"
	default:
		return "not_matched"
	}
}

// Counted reports whether the outcome adds to the second's match tally.
func (o Outcome) Counted() bool {
	return o == OutcomeMatched || o == OutcomeAlmostMatched
}

// Mode is the matcher search mode.
type Mode int

const (
	ModeSeeking Mode = iota
	ModeLocked
	ModeFuzzy
)

func (m Mode) String() string {
	switch m {
	case ModeLocked:
		return "locked"
	case ModeFuzzy:
		return "fuzzy"
	default:
		return "seeking"
	}
}

// Event describes the resolution of a single base frame.
type Event struct {
	Frame     int
	Hash      string
	Outcome   Outcome
	Mode      Mode // mode the frame was searched in
	CompIndex int  // -1 when no comparison frame was involved
	CompHash  string
	Distance  int // -1 unless a fuzzy probe ran
	WindowLo  int
	WindowHi  int
}

// State is a snapshot of the matcher between frames.
type State struct {
	PreviousMatch int // -1 when seeking
	MissStreak    int
	Consumed      int
	NextFrame     int
}

// Matcher walks base frames in order against one comparison sequence.
// It is not safe for concurrent use.
type Matcher struct {
	params   Params
	comp     []string
	consumed []bool
	used     int
	prev     int
	streak   int
	frame    int
}

// NewMatcher validates params and prepares a matcher over comp.
func NewMatcher(comp []string, params Params) (*Matcher, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Matcher{
		params:   params,
		comp:     comp,
		consumed: make([]bool, len(comp)),
		prev:     -1,
	}, nil
}

// SearchWindow returns the closed seek window for base index idx:
// [max(0, idx-n/f), min(n, idx+n/f)] with n the comparison length and f the
// seek factor. Indices at or past n are never scanned.
func (m *Matcher) SearchWindow(idx int) (int, int) {
	total := len(m.comp)
	half := total / m.params.SeekFactor
	return max(0, idx-half), min(total, idx+half)
}

func (m *Matcher) lockWindow() (int, int) {
	r := m.params.LockRadius
	return max(0, m.prev-r), min(len(m.comp)-1, m.prev+r)
}

// Mode reports the mode the next frame will be searched in.
func (m *Matcher) Mode() Mode {
	switch {
	case m.prev < 0:
		return ModeSeeking
	case m.streak > 0:
		return ModeFuzzy
	default:
		return ModeLocked
	}
}

// State returns a snapshot of the matcher state.
func (m *Matcher) State() State {
	return State{PreviousMatch: m.prev, MissStreak: m.streak, Consumed: m.used, NextFrame: m.frame}
}

// Next resolves the next base frame. Frames must be supplied in order.
func (m *Matcher) Next(hash string) Event {
	ev := Event{Frame: m.frame, Hash: hash, Mode: m.Mode(), CompIndex: -1, Distance: -1}
	m.frame++

	if m.prev >= 0 {
		ev.WindowLo, ev.WindowHi = m.lockWindow()
	} else {
		ev.WindowLo, ev.WindowHi = m.SearchWindow(ev.Frame)
	}

	if idx := m.find(hash, ev.WindowLo, ev.WindowHi); idx >= 0 {
		m.consume(idx)
		m.prev = idx
		m.streak = 0
		ev.Outcome = OutcomeMatched
		ev.CompIndex = idx
		ev.CompHash = m.comp[idx]
		return ev
	}

	if m.prev < 0 || m.streak >= m.params.PartMatchLimit {
		m.streak++
		m.prev = -1
		ev.Outcome = OutcomeNotMatched
		return ev
	}

	m.streak++
	probe := m.prev + m.streak
	ev.CompIndex = probe
	if probe >= len(m.comp) {
		m.prev = -1
		ev.Outcome = OutcomeOutOfBounds
		return ev
	}

	ev.CompHash = m.comp[probe]
	ev.Distance = framehash.Distance(hash, ev.CompHash)
	switch {
	case ev.Distance < m.params.PartMatchLow && m.available(probe):
		m.consume(probe)
		ev.Outcome = OutcomeAlmostMatched
	case ev.Distance >= m.params.PartMatchLow:
		// covers both the ambiguous band and anything at or past the high mark
		m.prev = -1
		ev.Outcome = OutcomePartiallyMatched
	default:
		ev.Outcome = OutcomeUndecided
	}
	return ev
}

func (m *Matcher) find(hash string, lo, hi int) int {
	hi = min(hi, len(m.comp)-1)
	for i := lo; i <= hi; i++ {
		if m.comp[i] == hash && m.available(i) {
			return i
		}
	}
	return -1
}

func (m *Matcher) available(idx int) bool {
	return m.params.AllowReuse || !m.consumed[idx]
}

func (m *Matcher) consume(idx int) {
	if !m.consumed[idx] {
		m.consumed[idx] = true
		m.used++
	}
}
