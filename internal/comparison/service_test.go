package comparison_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"creditmarker/internal/comparison"
	"creditmarker/internal/config"
	"creditmarker/internal/episode"
	"creditmarker/internal/framematch"
	"creditmarker/internal/logging"
	"creditmarker/internal/testsupport"
)

const fps = 5

// recapEpisodes returns a base whose first ten seconds reappear at the start
// of the comparison and whose last ten seconds do not.
func recapEpisodes() (episode.Episode, episode.Episode) {
	shared := testsupport.Frames(10*fps, 1)
	base := episode.Episode{Title: "Show S01E02", Frames: testsupport.Concat(shared, testsupport.Frames(10*fps, 2))}
	comp := episode.Episode{Title: "Show S01E03", Frames: testsupport.Concat(shared, testsupport.Frames(10*fps, 3))}
	return base, comp
}

func newService(t *testing.T, opts ...testsupport.ConfigOption) *comparison.Service {
	t.Helper()
	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithFPS(fps)}, opts...)...)
	svc, err := comparison.NewService(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCompareRecap(t *testing.T) {
	svc := newService(t)
	base, comp := recapEpisodes()

	result, err := svc.Compare(context.Background(), base, comp, comparison.Options{})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if _, err := uuid.Parse(result.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", result.ID)
	}
	if got := result.Title(); got != "Result of frame-by-frame episodes comparison: Show S01E02 & Show S01E03" {
		t.Fatalf("unexpected title %q", got)
	}
	if len(result.Scores) != 20 {
		t.Fatalf("expected 20 seconds, got %d", len(result.Scores))
	}
	for sec, score := range result.Scores {
		want := 0
		if sec < 10 {
			want = 100
		}
		if score != want {
			t.Fatalf("second %d: got %d want %d (scores %v)", sec, score, want, result.Scores)
		}
	}
	if result.Counts.Matched != 10*fps {
		t.Fatalf("expected %d matched frames, got %+v", 10*fps, result.Counts)
	}
	if len(result.Blocks) != 2 || !result.Blocks[0].Matched || result.Blocks[1].Matched {
		t.Fatalf("unexpected blocks %+v", result.Blocks)
	}
	if result.Blocks[0].Begin != 0 || result.Blocks[1].End != 20 || result.Blocks[0].End != result.Blocks[1].Begin {
		t.Fatalf("blocks do not cover the episode: %+v", result.Blocks)
	}
	if result.MatchedSeconds != result.Blocks[0].Len() {
		t.Fatalf("matched seconds %d, want %d", result.MatchedSeconds, result.Blocks[0].Len())
	}
	if result.Base.Digest != base.Digest() || result.Comparison.Frames != comp.Len() {
		t.Fatalf("unexpected episode info %+v / %+v", result.Base, result.Comparison)
	}
	if len(result.Smoothed) != 20+6-1 {
		t.Fatalf("expected full convolution output, got %d samples", len(result.Smoothed))
	}
	if result.SegmentOn != comparison.SegmentOnRaw {
		t.Fatalf("expected raw segmentation, got %q", result.SegmentOn)
	}
}

func TestCompareNoSmooth(t *testing.T) {
	svc := newService(t, testsupport.WithSmoothing(6, config.SegmentOnSmoothed))
	base, comp := recapEpisodes()

	result, err := svc.Compare(context.Background(), base, comp, comparison.Options{NoSmooth: true})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if result.Smoothed != nil || result.SmoothingWindow != 0 {
		t.Fatalf("expected smoothing disabled, got window %d and %d samples", result.SmoothingWindow, len(result.Smoothed))
	}
	if result.SegmentOn != comparison.SegmentOnRaw {
		t.Fatalf("expected raw segmentation without smoothing, got %q", result.SegmentOn)
	}
}

func TestCompareSegmentsSmoothedSeries(t *testing.T) {
	svc := newService(t)
	base, comp := recapEpisodes()

	result, err := svc.Compare(context.Background(), base, comp, comparison.Options{SegmentOn: "Smoothed"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if result.SegmentOn != comparison.SegmentOnSmoothed {
		t.Fatalf("unexpected series %q", result.SegmentOn)
	}
	total := 0
	for _, b := range result.Blocks {
		total += b.Len()
	}
	if total != len(result.Scores) {
		t.Fatalf("blocks cover %d seconds, want %d", total, len(result.Scores))
	}
	key, err := svc.ParamsKey(comparison.Options{SegmentOn: "smoothed"})
	if err != nil {
		t.Fatalf("ParamsKey: %v", err)
	}
	if key != result.ParamsKey() {
		t.Fatalf("params key mismatch: %q vs %q", key, result.ParamsKey())
	}
}

func TestCompareRejectsUnknownSeries(t *testing.T) {
	svc := newService(t)
	base, comp := recapEpisodes()
	if _, err := svc.Compare(context.Background(), base, comp, comparison.Options{SegmentOn: "median"}); err == nil {
		t.Fatal("expected error for unknown series")
	}
}

func TestCompareEmptyEpisodes(t *testing.T) {
	svc := newService(t)
	result, err := svc.Compare(context.Background(), episode.Episode{Title: "a"}, episode.Episode{Title: "b"}, comparison.Options{})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(result.Scores) != 0 || len(result.Blocks) != 0 || result.MatchedRatio() != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestCompareCancelled(t *testing.T) {
	svc := newService(t)
	base, comp := recapEpisodes()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Compare(ctx, base, comp, comparison.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCompareReportsProgressAndEvents(t *testing.T) {
	svc := newService(t)
	base, comp := recapEpisodes()

	var frames int
	var last, total int
	calls := 0
	opts := comparison.Options{
		Observers: []framematch.Observer{framematch.ObserverFunc(func(framematch.Event) { frames++ })},
		Progress: func(done, n int) {
			calls++
			last, total = done, n
		},
	}
	if _, err := svc.Compare(context.Background(), base, comp, opts); err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if frames != base.Len() {
		t.Fatalf("observer saw %d frames, want %d", frames, base.Len())
	}
	if calls != 20 || last != base.Len() || total != base.Len() {
		t.Fatalf("progress calls=%d last=%d total=%d", calls, last, total)
	}
}

func TestNewServiceValidates(t *testing.T) {
	if _, err := comparison.NewService(nil, nil); err == nil {
		t.Fatal("expected error for nil config")
	}
	params := framematch.DefaultParams()
	params.FPS = 0
	_, err := comparison.NewServiceWithParams(params, testsupport.NewConfig(t).BlockParams(), 0, "", nil)
	if !errors.Is(err, framematch.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestParamsKeyDistinguishesSettings(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	a := comparison.ParamsKey(cfg.MatchParams(), cfg.BlockParams(), 6, "raw")
	cfg.Matching.AllowReuse = true
	b := comparison.ParamsKey(cfg.MatchParams(), cfg.BlockParams(), 6, "raw")
	if a == b {
		t.Fatal("expected reuse flag to change the key")
	}
	if !strings.Contains(a, "reuse=false") {
		t.Fatalf("unexpected key %q", a)
	}
}
