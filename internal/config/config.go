package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"creditmarker/internal/blocks"
	"creditmarker/internal/framematch"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	InputDir  string `toml:"input_dir"`
	ReportDir string `toml:"report_dir"`
	StateDir  string `toml:"state_dir"`
	LogDir    string `toml:"log_dir"`
}

// Matching contains the frame matcher tunables.
type Matching struct {
	FPS            int  `toml:"fps"`
	SeekFactor     int  `toml:"seek_factor"`
	LockRadius     int  `toml:"lock_radius"`
	PartMatchLimit int  `toml:"part_match_limit"`
	PartMatchLow   int  `toml:"part_match_low"`
	PartMatchHigh  int  `toml:"part_match_high"`
	AllowReuse     bool `toml:"allow_reuse"`
}

// Blocks contains smoothing and segmentation settings.
type Blocks struct {
	PassCriterion   float64 `toml:"pass_criterion"`
	MinDuration     int     `toml:"min_duration"`
	SmoothingWindow int     `toml:"smoothing_window"`
	// SegmentOn selects the series fed to the segmenter: "raw" or "smoothed".
	SegmentOn string `toml:"segment_on"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for creditmarker.
//
// Configuration sections:
//   - Paths: input, report, state (history database) and log directories
//   - Matching: frame rate, seek window and fuzzy fallback thresholds
//   - Blocks: pass criterion, minimum block duration and smoothing
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Matching Matching `toml:"matching"`
	Blocks   Blocks   `toml:"blocks"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("creditmarker.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the report, state and log directories.
// InputDir is only read from and is never created.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ReportDir, c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// MatchParams projects the [matching] section into matcher params.
func (c *Config) MatchParams() framematch.Params {
	return framematch.Params{
		FPS:            c.Matching.FPS,
		SeekFactor:     c.Matching.SeekFactor,
		LockRadius:     c.Matching.LockRadius,
		PartMatchLimit: c.Matching.PartMatchLimit,
		PartMatchLow:   c.Matching.PartMatchLow,
		PartMatchHigh:  c.Matching.PartMatchHigh,
		AllowReuse:     c.Matching.AllowReuse,
	}
}

// BlockParams projects the [blocks] section into segmentation params.
func (c *Config) BlockParams() blocks.Params {
	return blocks.Params{
		PassCriterion: c.Blocks.PassCriterion,
		MinDuration:   c.Blocks.MinDuration,
	}
}

// HistoryPath returns the SQLite history database location.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// LogPath returns the log file written alongside console output, or "" when
// file logging is disabled.
func (c *Config) LogPath() string {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return ""
	}
	return filepath.Join(c.Paths.LogDir, "creditmarker.log")
}

// ResolveInput resolves an episode argument. Relative paths that do not exist
// in the working directory are looked up in the configured input directory.
func (c *Config) ResolveInput(arg string) string {
	arg = strings.TrimSpace(arg)
	if arg == "" || filepath.IsAbs(arg) || c.Paths.InputDir == "" {
		return arg
	}
	if _, err := os.Stat(arg); err == nil {
		return arg
	}
	candidate := filepath.Join(c.Paths.InputDir, arg)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return arg
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
