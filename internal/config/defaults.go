package config

import (
	"creditmarker/internal/blocks"
	"creditmarker/internal/framematch"
)

const (
	defaultConfigPath      = "~/.config/creditmarker/config.toml"
	defaultInputDir        = "~/.local/share/creditmarker/input"
	defaultReportDir       = "~/.local/share/creditmarker/reports"
	defaultStateDir        = "~/.local/share/creditmarker/state"
	defaultLogDir          = "~/.local/share/creditmarker/logs"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultSmoothingWindow = 6
	defaultSegmentOn       = SegmentOnRaw
)

// Segmentation inputs accepted by blocks.segment_on.
const (
	SegmentOnRaw      = "raw"
	SegmentOnSmoothed = "smoothed"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	match := framematch.DefaultParams()
	seg := blocks.DefaultParams()
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			ReportDir: defaultReportDir,
			StateDir:  defaultStateDir,
			LogDir:    defaultLogDir,
		},
		Matching: Matching{
			FPS:            match.FPS,
			SeekFactor:     match.SeekFactor,
			LockRadius:     match.LockRadius,
			PartMatchLimit: match.PartMatchLimit,
			PartMatchLow:   match.PartMatchLow,
			PartMatchHigh:  match.PartMatchHigh,
			AllowReuse:     match.AllowReuse,
		},
		Blocks: Blocks{
			PassCriterion:   seg.PassCriterion,
			MinDuration:     seg.MinDuration,
			SmoothingWindow: defaultSmoothingWindow,
			SegmentOn:       defaultSegmentOn,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
