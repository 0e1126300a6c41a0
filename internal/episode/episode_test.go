package episode_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"creditmarker/internal/episode"
)

func TestLoadUploadFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Game_of_Thrones_S07E03.json")
	payload := `{"title":"GoT S07E03","id":"crid://x/1","seasonId":"7","showId":"got","episodeNumber":"3","frames":["ffe0","ffe1","ffe2"]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	ep, err := episode.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ep.Title != "GoT S07E03" || ep.ShowID != "got" || ep.EpisodeNumber != "3" {
		t.Fatalf("unexpected metadata %+v", ep)
	}
	if ep.Len() != 3 || ep.Frames[2] != "ffe2" {
		t.Fatalf("unexpected frames %v", ep.Frames)
	}
}

func TestLoadFallsBackToFileTitle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game_of_thrones_S07E02.json")
	if err := os.WriteFile(path, []byte(`{"frames":[]}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	ep, err := episode.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ep.Title != "Game Of Thrones S07E02" {
		t.Fatalf("unexpected fallback title %q", ep.Title)
	}
	if ep.Len() != 0 {
		t.Fatalf("expected no frames")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := episode.Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"frames": "nope"`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	_, err := episode.Load(bad)
	if err == nil || !strings.Contains(err.Error(), "bad.json") {
		t.Fatalf("expected decode error naming the file, got %v", err)
	}
	if _, err := episode.Decode(nil); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestSaveRoundTripKeepsFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ep.json")
	in := episode.Episode{Title: "Pilot", Frames: []string{"a", "b", "c"}}
	if err := episode.Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := episode.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.Title != "Pilot" || out.Digest() != in.Digest() {
		t.Fatalf("round trip changed episode: %+v", out)
	}
}

func TestDigestDistinguishesFrameBoundaries(t *testing.T) {
	a := episode.Digest([]string{"ab", "c"})
	b := episode.Digest([]string{"a", "bc"})
	if a == b {
		t.Fatal("expected digests to differ across frame boundaries")
	}
	if episode.Digest([]string{"ab", "c"}) != a {
		t.Fatal("digest must be deterministic")
	}
	if len(a) != 16 {
		t.Fatalf("expected 16 hex chars, got %q", a)
	}
}
