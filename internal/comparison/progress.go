package comparison

import (
	"log/slog"

	"creditmarker/internal/framematch"
	"creditmarker/internal/logging"
)

// progressObserver logs sampled alignment progress and out-of-range probes.
type progressObserver struct {
	logger   *slog.Logger
	sampler  *logging.ProgressSampler
	total    int
	fps      int
	callback func(done, total int)
}

func newProgressObserver(logger *slog.Logger, total, fps int, callback func(done, total int)) *progressObserver {
	return &progressObserver{
		logger:   logger,
		sampler:  logging.NewProgressSampler(10),
		total:    total,
		fps:      fps,
		callback: callback,
	}
}

func (o *progressObserver) ObserveFrame(ev framematch.Event) {
	if ev.Outcome == framematch.OutcomeOutOfBounds {
		o.logger.Debug("fuzzy probe beyond comparison episode",
			logging.Frame(ev.Frame, o.fps),
			logging.Int("probe", ev.CompIndex),
		)
	}

	done := ev.Frame + 1
	if done%o.fps != 0 && done != o.total {
		return
	}
	if o.callback != nil {
		o.callback(done, o.total)
	}
	if o.total > 0 {
		percent := float64(done) * 100 / float64(o.total)
		if o.sampler.ShouldLog(percent, "aligning") {
			o.logger.Debug("alignment progress",
				logging.Int(logging.FieldSecond, done/o.fps),
				logging.Float64("percent", percent),
			)
		}
	}
}
