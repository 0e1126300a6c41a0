package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/text"

	"creditmarker/internal/framehash"
	"creditmarker/internal/framematch"
)

var diffColors = text.Colors{text.FgRed, text.ReverseVideo}

// FrameTrace writes one line per frame event: timecode, outcome, matched
// comparison frame and the differing hash symbols. It implements
// framematch.Observer.
type FrameTrace struct {
	w     io.Writer
	fps   int
	color bool
	err   error
}

// NewFrameTrace returns a trace writing to w. With color set, differing
// symbols are highlighted; otherwise they are bracketed.
func NewFrameTrace(w io.Writer, fps int, color bool) *FrameTrace {
	return &FrameTrace{w: w, fps: fps, color: color}
}

// ObserveFrame writes ev. Write errors stop the trace and are kept for Err.
func (t *FrameTrace) ObserveFrame(ev framematch.Event) {
	if t.err != nil {
		return
	}
	_, t.err = io.WriteString(t.w, t.Line(ev)+"\n")
}

// Err returns the first write error.
func (t *FrameTrace) Err() error {
	return t.err
}

// Line formats a single event.
func (t *FrameTrace) Line(ev framematch.Event) string {
	head := fmt.Sprintf("%s %-17s %-7s", Timecode(ev.Frame, t.fps), ev.Outcome, ev.Mode)
	switch {
	case ev.Outcome == framematch.OutcomeOutOfBounds:
		return fmt.Sprintf("%s %s probe=%d", head, ev.Hash, ev.CompIndex)
	case ev.CompIndex < 0:
		return fmt.Sprintf("%s %s window=[%d,%d]", head, ev.Hash, ev.WindowLo, ev.WindowHi)
	}
	var mark func(string) string
	if t.color {
		mark = func(s string) string { return diffColors.Sprint(s) }
	}
	diff, n := framehash.Diff(ev.Hash, ev.CompHash, mark)
	return fmt.Sprintf("%s %s -> %s (%s) diff=%d", head, ev.Hash, diff, Timecode(ev.CompIndex, t.fps), n)
}
