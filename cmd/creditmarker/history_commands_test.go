package main

import (
	"strings"
	"testing"

	"creditmarker/internal/comparison"
	"creditmarker/internal/history"
)

func TestHistoryLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"history", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "No stored comparisons")

	out, _, err = runCLI(t, []string{"compare", "--json", "--save", env.basePath, env.compPath}, env.configPath)
	if err != nil {
		t.Fatalf("compare --save: %v", err)
	}
	var saved comparison.Result
	if err := json.Unmarshal([]byte(out), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	short := saved.ID[:8]

	out, _, err = runCLI(t, []string{"history", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, short)
	requireContains(t, out, "Show S01E02")

	out, _, err = runCLI(t, []string{"history", "list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history list --json: %v", err)
	}
	var entries []history.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode entries: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != saved.ID || entries[0].Seconds != 20 {
		t.Fatalf("unexpected entries %+v", entries)
	}

	out, _, err = runCLI(t, []string{"history", "show", short}, env.configPath)
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, out, saved.ID)

	out, _, err = runCLI(t, []string{"history", "delete", short}, env.configPath)
	if err != nil {
		t.Fatalf("history delete: %v", err)
	}
	requireContains(t, out, "Deleted comparison "+short)

	_, _, err = runCLI(t, []string{"history", "show", short}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
