package blocks

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ErrInvalidParams marks rejected segmentation settings.
var ErrInvalidParams = errors.New("blocks: invalid params")

// Params configures Segment.
type Params struct {
	// PassCriterion is the percentage a second must exceed to pass.
	PassCriterion float64 `json:"pass_criterion"`
	// MinDuration is the number of seconds of sustained disagreement that
	// must be exceeded before a boundary is considered.
	MinDuration int `json:"min_duration"`
}

// DefaultParams returns the broadcast defaults (30%, 5 seconds).
func DefaultParams() Params {
	return Params{PassCriterion: 30, MinDuration: 5}
}

// Validate checks the parameters.
func (p Params) Validate() error {
	if p.PassCriterion < 0 || p.PassCriterion > 100 {
		return fmt.Errorf("%w: pass_criterion must be within [0, 100], got %v", ErrInvalidParams, p.PassCriterion)
	}
	if p.MinDuration < 1 {
		return fmt.Errorf("%w: min_duration must be at least 1, got %d", ErrInvalidParams, p.MinDuration)
	}
	return nil
}

// Kind labels what a block holds within an episode.
type Kind string

const (
	KindUnknown        Kind = "unknown"
	KindOpeningCredits Kind = "opening_credits"
	KindRecap          Kind = "recap"
	KindContent        Kind = "content"
	KindClosingCredits Kind = "closing_credits"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindUnknown, KindOpeningCredits, KindRecap, KindContent, KindClosingCredits:
		return true
	}
	return false
}

// Block is a half-open range of seconds [Begin, End). Segment leaves Kind
// as KindUnknown; classifying blocks is left to callers.
type Block struct {
	Begin     int     `json:"begin"`
	End       int     `json:"end"`
	Matched   bool    `json:"matched"`
	MeanScore float64 `json:"mean_score"`
	Kind      Kind    `json:"kind"`
}

// Len returns the block duration in seconds.
func (b Block) Len() int {
	return b.End - b.Begin
}

// Frames converts the block bounds from seconds to frame indices.
func (b Block) Frames(fps int) (int, int) {
	return b.Begin * fps, b.End * fps
}

// Segmenter is the incremental form of Segment. Feed seconds in order with
// Add and call Blocks when done.
type Segmenter struct {
	params     Params
	sec        int
	open       bool
	baseline   bool
	matchedRun int
	mismatched int
	boundaries []int
}

// NewSegmenter validates params and returns an empty segmenter.
func NewSegmenter(params Params) (*Segmenter, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Segmenter{params: params}, nil
}

// Passing reports whether score counts as a matched second.
func (s *Segmenter) Passing(score float64) bool {
	return score > s.params.PassCriterion
}

// Add consumes the next second. It returns the boundary emitted by this
// second, if any.
func (s *Segmenter) Add(score float64) (int, bool) {
	sec := s.sec
	s.sec++
	passing := s.Passing(score)

	if !s.open {
		s.open = true
		s.baseline = passing
		s.matchedRun = 1
		s.mismatched = 0
		return 0, false
	}

	if passing != s.baseline {
		s.mismatched++
	} else {
		s.matchedRun++
		s.mismatched = 0
	}
	if s.mismatched <= s.params.MinDuration {
		return 0, false
	}

	run := s.mismatched
	closes := s.matchedRun >= s.params.MinDuration
	boundary := sec - run

	// The disagreeing run becomes the agreement of whatever block follows,
	// whether that is a new block or the same block with a flipped baseline.
	s.baseline = passing
	s.matchedRun = run
	s.mismatched = 0

	// matchedRun restarts at run after every boundary, so boundaries are
	// strictly increasing and never 0.
	if closes {
		s.boundaries = append(s.boundaries, boundary)
		return boundary, true
	}
	return 0, false
}

// Boundaries returns the block start indices emitted so far, excluding 0.
func (s *Segmenter) Boundaries() []int {
	out := make([]int, len(s.boundaries))
	copy(out, s.boundaries)
	return out
}

// Len returns the number of seconds consumed.
func (s *Segmenter) Len() int {
	return s.sec
}

// Segment splits scores into blocks covering [0, len(scores)). Each block's
// Matched flag is the majority classification of its seconds and MeanScore
// the mean of its scores.
func Segment(scores []float64, params Params) ([]Block, error) {
	seg, err := NewSegmenter(params)
	if err != nil {
		return nil, err
	}
	for _, score := range scores {
		seg.Add(score)
	}
	return seg.blocks(scores), nil
}

func (s *Segmenter) blocks(scores []float64) []Block {
	if len(scores) == 0 {
		return nil
	}
	starts := append([]int{0}, s.boundaries...)
	out := make([]Block, 0, len(starts))
	for i, begin := range starts {
		end := len(scores)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		window := scores[begin:end]
		passing := 0
		for _, score := range window {
			if s.Passing(score) {
				passing++
			}
		}
		out = append(out, Block{
			Begin:     begin,
			End:       end,
			Matched:   passing*2 > len(window),
			MeanScore: stat.Mean(window, nil),
			Kind:      KindUnknown,
		})
	}
	return out
}
