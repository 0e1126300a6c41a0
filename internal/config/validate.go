package config

import (
	"errors"
	"fmt"
	"sort"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateBlocks(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMatching() error {
	if err := ensurePositiveMap(map[string]int{
		"matching.fps":         c.Matching.FPS,
		"matching.seek_factor": c.Matching.SeekFactor,
	}); err != nil {
		return err
	}
	if err := ensureNonNegativeMap(map[string]int{
		"matching.lock_radius":      c.Matching.LockRadius,
		"matching.part_match_limit": c.Matching.PartMatchLimit,
		"matching.part_match_low":   c.Matching.PartMatchLow,
	}); err != nil {
		return err
	}
	if c.Matching.PartMatchHigh < c.Matching.PartMatchLow {
		return errors.New("matching.part_match_high must be greater than or equal to matching.part_match_low")
	}
	return nil
}

func (c *Config) validateBlocks() error {
	if c.Blocks.PassCriterion < 0 || c.Blocks.PassCriterion > 100 {
		return errors.New("blocks.pass_criterion must be between 0 and 100")
	}
	if c.Blocks.MinDuration < 1 {
		return errors.New("blocks.min_duration must be at least 1")
	}
	if c.Blocks.SmoothingWindow < 0 {
		return errors.New("blocks.smoothing_window must not be negative (0 or 1 disables smoothing)")
	}
	switch c.Blocks.SegmentOn {
	case SegmentOnRaw, SegmentOnSmoothed:
	default:
		return fmt.Errorf("blocks.segment_on: unsupported value %q (want %q or %q)", c.Blocks.SegmentOn, SegmentOnRaw, SegmentOnSmoothed)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for _, key := range sortedKeys(values) {
		if values[key] <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}

func ensureNonNegativeMap(values map[string]int) error {
	for _, key := range sortedKeys(values) {
		if values[key] < 0 {
			return fmt.Errorf("%s must not be negative", key)
		}
	}
	return nil
}

func sortedKeys(values map[string]int) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
