package framematch

import "fmt"

// Aggregator folds per-frame match flags into per-second percentages.
// A second closes after FPS frames with score floor(matches*100/FPS); a
// trailing partial second is never emitted.
type Aggregator struct {
	fps     int
	inSec   int
	matches int
	scores  []int
}

// NewAggregator returns an aggregator for the given frame rate.
func NewAggregator(fps int) (*Aggregator, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidParams, fps)
	}
	return &Aggregator{fps: fps}, nil
}

// Add records one frame. When the frame completes a second it returns the
// second's score and true.
func (a *Aggregator) Add(matched bool) (int, bool) {
	if matched {
		a.matches++
	}
	a.inSec++
	if a.inSec < a.fps {
		return 0, false
	}
	score := a.matches * 100 / a.fps
	a.scores = append(a.scores, score)
	a.inSec = 0
	a.matches = 0
	return score, true
}

// Pending returns the number of frames buffered in the open second.
func (a *Aggregator) Pending() int {
	return a.inSec
}

// Scores returns a copy of the closed seconds.
func (a *Aggregator) Scores() []int {
	out := make([]int, len(a.scores))
	copy(out, a.scores)
	return out
}
