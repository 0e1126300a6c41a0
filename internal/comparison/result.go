package comparison

import (
	"fmt"
	"time"

	"creditmarker/internal/blocks"
	"creditmarker/internal/framematch"
)

// EpisodeInfo identifies one side of a comparison.
type EpisodeInfo struct {
	Title  string `json:"title"`
	ID     string `json:"id,omitempty"`
	Digest string `json:"digest"`
	Frames int    `json:"frames"`
}

// Result is the outcome of comparing a base episode against a comparison
// episode. Seconds refer to the base episode.
type Result struct {
	ID              string            `json:"id"`
	Base            EpisodeInfo       `json:"base"`
	Comparison      EpisodeInfo       `json:"comparison"`
	Match           framematch.Params `json:"match"`
	Segmentation    blocks.Params     `json:"segmentation"`
	SmoothingWindow int               `json:"smoothing_window"`
	SegmentOn       string            `json:"segment_on"`
	Scores          []int             `json:"scores"`
	Smoothed        []float64         `json:"smoothed,omitempty"`
	Blocks          []blocks.Block    `json:"blocks"`
	Rises           []int             `json:"rises,omitempty"`
	Drops           []int             `json:"drops,omitempty"`
	Counts          framematch.Counts `json:"counts"`
	MatchedSeconds  int               `json:"matched_seconds"`
	DroppedTail     int               `json:"dropped_tail"`
	CreatedAt       time.Time         `json:"created_at"`
	Elapsed         time.Duration     `json:"elapsed"`
}

// Title is the human heading for the result.
func (r *Result) Title() string {
	return fmt.Sprintf("Result of frame-by-frame episodes comparison: %s & %s", r.Base.Title, r.Comparison.Title)
}

// Seconds returns the number of scored seconds.
func (r *Result) Seconds() int {
	return len(r.Scores)
}

// MatchedRatio returns the share of scored seconds inside matched blocks.
func (r *Result) MatchedRatio() float64 {
	if len(r.Scores) == 0 {
		return 0
	}
	return float64(r.MatchedSeconds) / float64(len(r.Scores))
}

// ParamsKey returns the cache key of the settings that produced the result.
func (r *Result) ParamsKey() string {
	return ParamsKey(r.Match, r.Segmentation, r.SmoothingWindow, r.SegmentOn)
}

// ParamsKey renders every setting that influences scores or blocks into a
// stable string. Two runs with equal digests and equal keys produce equal
// results.
func ParamsKey(match framematch.Params, seg blocks.Params, window int, segmentOn string) string {
	return fmt.Sprintf("fps=%d seek=%d lock=%d limit=%d low=%d high=%d reuse=%t pass=%g min=%d window=%d on=%s",
		match.FPS, match.SeekFactor, match.LockRadius, match.PartMatchLimit,
		match.PartMatchLow, match.PartMatchHigh, match.AllowReuse,
		seg.PassCriterion, seg.MinDuration, window, segmentOn)
}
