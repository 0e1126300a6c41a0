package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"creditmarker/internal/config"
	"creditmarker/internal/episode"
	"creditmarker/internal/testsupport"
)

const testFPS = 5

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	basePath   string
	compPath   string
}

// setupCLITestEnv writes a config and two episodes whose first ten seconds
// are shared and whose last ten seconds differ.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithFPS(testFPS))
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("CREDITMARKER_LOG_LEVEL", "")

	configPath := filepath.Join(homeDir, ".config", "creditmarker", "config.toml")
	writeTestConfig(t, configPath, cfg)

	shared := testsupport.Frames(10*testFPS, 1)
	basePath := testsupport.WriteEpisode(t, cfg.Paths.InputDir, "show_s01e02.json", episode.Episode{
		Title:  "Show S01E02",
		Frames: testsupport.Concat(shared, testsupport.Frames(10*testFPS, 2)),
	})
	compPath := testsupport.WriteEpisode(t, cfg.Paths.InputDir, "show_s01e03.json", episode.Episode{
		Title:  "Show S01E03",
		Frames: testsupport.Concat(shared, testsupport.Frames(10*testFPS, 3)),
	})

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
		basePath:   basePath,
		compPath:   compPath,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
