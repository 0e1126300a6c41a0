package comparison

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"creditmarker/internal/blocks"
	"creditmarker/internal/config"
	"creditmarker/internal/episode"
	"creditmarker/internal/framehash"
	"creditmarker/internal/framematch"
	"creditmarker/internal/logging"
	"creditmarker/internal/smoothing"
)

// Series fed to the segmenter.
const (
	SegmentOnRaw      = config.SegmentOnRaw
	SegmentOnSmoothed = config.SegmentOnSmoothed
)

// Options adjust a single Compare call.
type Options struct {
	// SegmentOn overrides the configured series when non-empty.
	SegmentOn string
	// NoSmooth disables smoothing for this call.
	NoSmooth bool
	// Observers receive every frame event.
	Observers []framematch.Observer
	// Progress is called after every scored second with frames processed and total.
	Progress func(done, total int)
}

// Service compares episodes with fixed matcher and segmentation settings.
type Service struct {
	match     framematch.Params
	seg       blocks.Params
	window    int
	segmentOn string
	peaks     smoothing.PeakParams
	logger    *slog.Logger
	now       func() time.Time
}

// NewService builds a Service from application config.
func NewService(cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("comparison: config is nil")
	}
	return NewServiceWithParams(cfg.MatchParams(), cfg.BlockParams(), cfg.Blocks.SmoothingWindow, cfg.Blocks.SegmentOn, logger)
}

// NewServiceWithParams builds a Service from explicit settings.
func NewServiceWithParams(match framematch.Params, seg blocks.Params, window int, segmentOn string, logger *slog.Logger) (*Service, error) {
	if err := match.Validate(); err != nil {
		return nil, err
	}
	if err := seg.Validate(); err != nil {
		return nil, err
	}
	segmentOn, err := normalizeSegmentOn(segmentOn)
	if err != nil {
		return nil, err
	}
	if window < 0 {
		window = 0
	}
	return &Service{
		match:     match,
		seg:       seg,
		window:    window,
		segmentOn: segmentOn,
		peaks:     smoothing.DefaultPeakParams(),
		logger:    logging.NewComponentLogger(logger, "comparison"),
		now:       time.Now,
	}, nil
}

// ParamsKey returns the cache key Compare would record for opts.
func (s *Service) ParamsKey(opts Options) (string, error) {
	window, segmentOn, err := s.resolve(opts)
	if err != nil {
		return "", err
	}
	return ParamsKey(s.match, s.seg, window, segmentOn), nil
}

// Compare aligns comp against base and segments the per-second scores.
func (s *Service) Compare(ctx context.Context, base, comp episode.Episode, opts Options) (*Result, error) {
	window, segmentOn, err := s.resolve(opts)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	ctx = logging.WithComparisonID(ctx, id)
	logger := logging.WithContext(ctx, s.logger)
	started := s.now()

	s.warnLengths(logger, base)
	s.warnLengths(logger, comp)

	logger.Info("comparing episodes",
		logging.String("base", base.Title),
		logging.String("comparison", comp.Title),
		logging.Int("base_frames", base.Len()),
		logging.Int("comparison_frames", comp.Len()),
	)

	observers := append([]framematch.Observer{newProgressObserver(logger, base.Len(), s.match.FPS, opts.Progress)}, opts.Observers...)
	alignment, err := framematch.Align(ctx, base.Frames, comp.Frames, s.match, observers...)
	if err != nil {
		return nil, fmt.Errorf("align %q against %q: %w", base.Title, comp.Title, err)
	}

	raw := smoothing.Ints(alignment.Scores)
	var smoothed []float64
	series := raw
	if window > 1 && len(raw) > 0 {
		smoothed = smoothing.Smooth(raw, window)
		if segmentOn == SegmentOnSmoothed {
			series = smoothing.SmoothTrailing(raw, window)
		}
	}

	segmented, err := blocks.Segment(series, s.seg)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ID: id,
		Base: EpisodeInfo{
			Title:  base.Title,
			ID:     base.ID,
			Digest: base.Digest(),
			Frames: base.Len(),
		},
		Comparison: EpisodeInfo{
			Title:  comp.Title,
			ID:     comp.ID,
			Digest: comp.Digest(),
			Frames: comp.Len(),
		},
		Match:           s.match,
		Segmentation:    s.seg,
		SmoothingWindow: window,
		SegmentOn:       segmentOn,
		Scores:          alignment.Scores,
		Smoothed:        smoothed,
		Blocks:          segmented,
		Counts:          alignment.Counts,
		DroppedTail:     alignment.DroppedTail,
		CreatedAt:       started.UTC(),
	}
	result.Rises, result.Drops = transitions(smoothing.Peaks(raw, s.peaks))
	for _, b := range segmented {
		if b.Matched {
			result.MatchedSeconds += b.Len()
		}
	}
	result.Elapsed = s.now().Sub(started)

	logger.Info("comparison complete",
		logging.Int("seconds", result.Seconds()),
		logging.Int("blocks", len(result.Blocks)),
		logging.Int("matched_seconds", result.MatchedSeconds),
		logging.Int("matched_frames", result.Counts.Total()),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

func (s *Service) resolve(opts Options) (int, string, error) {
	window := s.window
	if opts.NoSmooth {
		window = 0
	}
	segmentOn := s.segmentOn
	if strings.TrimSpace(opts.SegmentOn) != "" {
		var err error
		if segmentOn, err = normalizeSegmentOn(opts.SegmentOn); err != nil {
			return 0, "", err
		}
	}
	if window <= 1 {
		// Nothing to segment on but the raw series.
		segmentOn = SegmentOnRaw
	}
	return window, segmentOn, nil
}

func (s *Service) warnLengths(logger *slog.Logger, ep episode.Episode) {
	mismatches, err := framehash.Validate(ep.Frames)
	if err == nil {
		return
	}
	first := mismatches[0]
	logging.WarnWithContext(logger, "inconsistent frame hash lengths", "hash_length_mismatch",
		logging.String(logging.FieldEpisode, ep.Title),
		logging.Int("mismatched_frames", len(mismatches)),
		logging.Int("first_frame", first.Frame),
		logging.Int("expected_length", first.Want),
		logging.Int("actual_length", first.Got),
		logging.String(logging.FieldErrorHint, "regenerate the episode hashes with a single hasher configuration"),
		logging.String(logging.FieldImpact, "distances are computed over the shorter hash"),
	)
}

func normalizeSegmentOn(value string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(value)); v {
	case "", SegmentOnRaw:
		return SegmentOnRaw, nil
	case SegmentOnSmoothed:
		return SegmentOnSmoothed, nil
	default:
		return "", fmt.Errorf("comparison: unsupported segment series %q (want %q or %q)", value, SegmentOnRaw, SegmentOnSmoothed)
	}
}

func transitions(signals []smoothing.Signal) (rises, drops []int) {
	prev := smoothing.SignalNone
	for sec, sig := range signals {
		if sig != prev {
			switch sig {
			case smoothing.SignalUp:
				rises = append(rises, sec)
			case smoothing.SignalDown:
				drops = append(drops, sec)
			}
		}
		prev = sig
	}
	return rises, drops
}
