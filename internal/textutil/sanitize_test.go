package textutil

import (
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Show S01E02", "Show S01E02"},
		{"separators", "Show: Part 1/2", "Show- Part 1-2"},
		{"removed", `What? "Now" <x>|`, "What Now x"},
		{"collapsed whitespace", "  a \t b\n", "a b"},
		{"trailing dots", "name...", "name"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFileNameTruncatesOnRuneBoundary(t *testing.T) {
	got := SanitizeFileName(strings.Repeat("é", 300))
	if len(got) > maxFileNameBytes {
		t.Fatalf("expected at most %d bytes, got %d", maxFileNameBytes, len(got))
	}
	if !strings.HasPrefix(strings.Repeat("é", 300), got) {
		t.Fatal("truncation split a rune")
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := map[string]string{
		"Show S01E02":  "show_s01e02",
		"  --x--  ":    "x",
		"":             "unknown",
		"!!!":          "unknown",
		"Mixed_Case-9": "mixed_case-9",
	}
	for input, want := range tests {
		if got := SanitizeToken(input); got != want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestTernary(t *testing.T) {
	if Ternary(true, "yes", "no") != "yes" || Ternary(false, 1, 2) != 2 {
		t.Fatal("unexpected ternary result")
	}
}
