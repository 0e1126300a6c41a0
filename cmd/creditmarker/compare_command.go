package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"creditmarker/internal/comparison"
	"creditmarker/internal/episode"
	"creditmarker/internal/history"
	"creditmarker/internal/logging"
	"creditmarker/internal/report"
)

type compareOptions struct {
	json      bool
	frames    bool
	noSmooth  bool
	segmentOn string
	save      bool
	report    bool
	cached    bool
	progress  bool
}

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var opts compareOptions

	cmd := &cobra.Command{
		Use:   "compare <base.json> <comparison.json>",
		Short: "Compare two hashed episodes and split the base episode into matched blocks",
		Long: `Compare aligns every frame of the base episode against the comparison
episode, scores each second of the base episode by the share of frames found
in the comparison, and splits the scores into matched and unmatched blocks.

Bare file names that do not exist in the working directory are looked up in
the configured input directory.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, ctx, args[0], args[1], opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.json, "json", false, "Print the result as JSON")
	flags.BoolVar(&opts.frames, "frames", false, "Trace every frame decision with highlighted hash differences")
	flags.BoolVar(&opts.noSmooth, "no-smooth", false, "Disable smoothing of per-second scores")
	flags.StringVar(&opts.segmentOn, "segment-on", "", "Series to segment: raw or smoothed (default from config)")
	flags.BoolVar(&opts.save, "save", false, "Store the result in the history database")
	flags.BoolVar(&opts.report, "report", false, "Write a JSON report into the report directory")
	flags.BoolVar(&opts.cached, "cached", false, "Reuse a stored result for identical episodes and settings")
	flags.BoolVar(&opts.progress, "progress", false, "Show a progress bar on terminals")
	return cmd
}

func runCompare(cmd *cobra.Command, ctx *commandContext, baseArg, compArg string, opts compareOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.loggerFor(cmd)
	if err != nil {
		return err
	}

	base, err := episode.Load(cfg.ResolveInput(baseArg))
	if err != nil {
		return err
	}
	comp, err := episode.Load(cfg.ResolveInput(compArg))
	if err != nil {
		return err
	}

	svc, err := comparison.NewService(cfg, logger)
	if err != nil {
		return err
	}
	callOpts := comparison.Options{SegmentOn: opts.segmentOn, NoSmooth: opts.noSmooth}

	runCtx, stop := signal.NotifyContext(commandBaseContext(cmd), os.Interrupt)
	defer stop()

	var result *comparison.Result
	if opts.cached {
		result, err = lookupCached(runCtx, ctx, svc, base, comp, callOpts)
		if err != nil {
			return err
		}
		if result != nil {
			logger.Info("reusing stored comparison", logging.String("id", result.ID))
		}
	}

	if result == nil {
		var trace *report.FrameTrace
		if opts.frames {
			out := cmd.OutOrStdout()
			if opts.json {
				out = cmd.ErrOrStderr()
			}
			trace = report.NewFrameTrace(out, cfg.Matching.FPS, isTerminal(out))
			callOpts.Observers = append(callOpts.Observers, trace)
		}
		var bar *progressbar.ProgressBar
		if opts.progress && isTerminal(cmd.ErrOrStderr()) && base.Len() > 0 {
			bar = newProgressBar(cmd, base.Len())
			callOpts.Progress = func(done, _ int) { _ = bar.Set(done) }
		}

		result, err = svc.Compare(runCtx, base, comp, callOpts)
		if bar != nil {
			_ = bar.Finish()
		}
		if err != nil {
			return err
		}
		if trace != nil && trace.Err() != nil {
			return fmt.Errorf("write frame trace: %w", trace.Err())
		}
	}

	if opts.json {
		if err := report.JSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else if err := report.Text(cmd.OutOrStdout(), result); err != nil {
		return err
	}

	notes := cmd.OutOrStdout()
	if opts.json {
		notes = cmd.ErrOrStderr()
	}
	resultLogger := logging.WithContext(logging.WithComparisonID(runCtx, result.ID), logger)
	if opts.save {
		if err := ctx.withHistory(func(store *history.Store) error {
			return store.Save(runCtx, result)
		}); err != nil {
			logging.ErrorWithContext(resultLogger, "failed to store comparison", "history_save_failed",
				logging.Error(err),
				logging.String("history_path", cfg.HistoryPath()),
				logging.String(logging.FieldErrorHint, "check state_dir permissions or rerun without --save"),
			)
			return fmt.Errorf("save result: %w", err)
		}
		fmt.Fprintf(notes, "Saved comparison %s\n", shortID(result.ID))
	}
	if opts.report {
		path, err := report.WriteFile(cfg.Paths.ReportDir, result)
		if err != nil {
			logging.ErrorWithContext(resultLogger, "failed to write report", "report_write_failed",
				logging.Error(err),
				logging.String("report_dir", cfg.Paths.ReportDir),
				logging.String(logging.FieldErrorHint, "check report_dir permissions"),
			)
			return err
		}
		fmt.Fprintf(notes, "Wrote report to %s\n", path)
	}
	return nil
}

func lookupCached(runCtx context.Context, ctx *commandContext, svc *comparison.Service, base, comp episode.Episode, opts comparison.Options) (*comparison.Result, error) {
	key, err := svc.ParamsKey(opts)
	if err != nil {
		return nil, err
	}
	var found *comparison.Result
	err = ctx.withHistory(func(store *history.Store) error {
		var lookupErr error
		found, lookupErr = store.FindByDigests(runCtx, base.Digest(), comp.Digest(), key)
		return lookupErr
	})
	if err != nil {
		return nil, fmt.Errorf("lookup cached result: %w", err)
	}
	if found != nil {
		// Titles may differ between uploads of the same frames.
		found.Base.Title = base.Title
		found.Comparison.Title = comp.Title
	}
	return found, nil
}

func newProgressBar(cmd *cobra.Command, frames int) *progressbar.ProgressBar {
	return progressbar.NewOptions(frames,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("aligning"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionShowIts(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func commandBaseContext(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}
