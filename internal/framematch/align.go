package framematch

import (
	"context"
)

// Observer receives every frame event in order. Observers must not retain
// or mutate matcher state; they only see copies.
type Observer interface {
	ObserveFrame(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// ObserveFrame calls f(ev).
func (f ObserverFunc) ObserveFrame(ev Event) { f(ev) }

// Counts tallies frame outcomes for one alignment run.
type Counts struct {
	Matched          int `json:"matched"`
	AlmostMatched    int `json:"almost_matched"`
	PartiallyMatched int `json:"partially_matched"`
	Undecided        int `json:"undecided"`
	NotMatched       int `json:"not_matched"`
	OutOfBounds      int `json:"out_of_bounds"`
}

func (c *Counts) add(o Outcome) {
	switch o {
	case OutcomeMatched:
		c.Matched++
	case OutcomeAlmostMatched:
		c.AlmostMatched++
	case OutcomePartiallyMatched:
		c.PartiallyMatched++
	case OutcomeUndecided:
		c.Undecided++
	case OutcomeOutOfBounds:
		c.OutOfBounds++
	default:
		c.NotMatched++
	}
}

// Total returns the number of frames counted as matched.
func (c Counts) Total() int {
	return c.Matched + c.AlmostMatched
}

// Alignment is the result of aligning a base sequence against a comparison.
type Alignment struct {
	Scores      []int  `json:"scores"`
	Frames      int    `json:"frames"`
	Counts      Counts `json:"counts"`
	DroppedTail int    `json:"dropped_tail"`
}

// Align resolves every base frame against comp and aggregates the result
// per second. The context is checked once per closed second.
func Align(ctx context.Context, base, comp []string, params Params, observers ...Observer) (Alignment, error) {
	matcher, err := NewMatcher(comp, params)
	if err != nil {
		return Alignment{}, err
	}
	agg, err := NewAggregator(params.FPS)
	if err != nil {
		return Alignment{}, err
	}

	var counts Counts
	for _, hash := range base {
		ev := matcher.Next(hash)
		counts.add(ev.Outcome)
		for _, obs := range observers {
			if obs != nil {
				obs.ObserveFrame(ev)
			}
		}
		if _, closed := agg.Add(ev.Outcome.Counted()); closed {
			if err := ctx.Err(); err != nil {
				return Alignment{}, err
			}
		}
	}

	return Alignment{
		Scores:      agg.Scores(),
		Frames:      len(base),
		Counts:      counts,
		DroppedTail: agg.Pending(),
	}, nil
}
