// Package config loads, normalizes, and validates creditmarker configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CREDITMARKER_LOG_LEVEL. The Config type centralizes every matcher and
// segmentation knob alongside the directories used for reports, history and
// logs, so the CLI resolves all settings in one pass.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
