package history_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"creditmarker/internal/blocks"
	"creditmarker/internal/comparison"
	"creditmarker/internal/framematch"
	"creditmarker/internal/history"
	"creditmarker/internal/testsupport"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(testsupport.NewConfig(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleResult(id, base, comp string, created time.Time) *comparison.Result {
	return &comparison.Result{
		ID:              id,
		Base:            comparison.EpisodeInfo{Title: base, Digest: "digest-" + base, Frames: 100},
		Comparison:      comparison.EpisodeInfo{Title: comp, Digest: "digest-" + comp, Frames: 100},
		Match:           framematch.DefaultParams(),
		Segmentation:    blocks.DefaultParams(),
		SmoothingWindow: 6,
		SegmentOn:       comparison.SegmentOnRaw,
		Scores:          []int{100, 100, 0, 0},
		Blocks: []blocks.Block{
			{Begin: 0, End: 2, Matched: true, MeanScore: 100},
			{Begin: 2, End: 4},
		},
		Counts:         framematch.Counts{Matched: 50},
		MatchedSeconds: 2,
		CreatedAt:      created.UTC(),
	}
}

func TestSaveAndGet(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	want := sampleResult("0a1b2c3d-0000-4000-8000-000000000001", "A", "B", time.Now())

	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, want.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored result")
	}
	if got.Title() != want.Title() || got.MatchedSeconds != 2 || len(got.Blocks) != 2 {
		t.Fatalf("unexpected round trip: %+v", got)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("created_at mismatch: %v vs %v", got.CreatedAt, want.CreatedAt)
	}

	prefixed, err := store.Get(ctx, "0a1b2c")
	if err != nil || prefixed == nil || prefixed.ID != want.ID {
		t.Fatalf("prefix lookup failed: %+v, %v", prefixed, err)
	}

	missing, err := store.Get(ctx, "ffff")
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing id, got %+v, %v", missing, err)
	}
}

func TestGetAmbiguousPrefix(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	now := time.Now()
	for _, id := range []string{"abc-1", "abc-2"} {
		if err := store.Save(ctx, sampleResult(id, "A", "B", now)); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}
	if _, err := store.Get(ctx, "abc"); !errors.Is(err, history.ErrAmbiguousID) {
		t.Fatalf("expected ErrAmbiguousID, got %v", err)
	}
	exact, err := store.Get(ctx, "abc-2")
	if err != nil || exact == nil || exact.ID != "abc-2" {
		t.Fatalf("exact lookup failed: %+v, %v", exact, err)
	}
}

func TestFindByDigests(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	older := sampleResult("r1", "A", "B", time.Now().Add(-time.Hour))
	newer := sampleResult("r2", "A", "B", time.Now())
	for _, r := range []*comparison.Result{older, newer} {
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	found, err := store.FindByDigests(ctx, "digest-A", "digest-B", newer.ParamsKey())
	if err != nil {
		t.Fatalf("FindByDigests: %v", err)
	}
	if found == nil || found.ID != "r2" {
		t.Fatalf("expected newest result, got %+v", found)
	}

	other := newer.Match
	other.AllowReuse = true
	key := comparison.ParamsKey(other, newer.Segmentation, newer.SmoothingWindow, newer.SegmentOn)
	found, err = store.FindByDigests(ctx, "digest-A", "digest-B", key)
	if err != nil || found != nil {
		t.Fatalf("expected cache miss for different params, got %+v, %v", found, err)
	}
}

func TestListAndDelete(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Now()
	for i, id := range []string{"r1", "r2", "r3"} {
		if err := store.Save(ctx, sampleResult(id, "A", "B", base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	entries, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "r3" || entries[1].ID != "r2" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if entries[0].Seconds != 4 || entries[0].Blocks != 2 || entries[0].MatchedSeconds != 2 {
		t.Fatalf("unexpected entry summary %+v", entries[0])
	}

	removed, err := store.Delete(ctx, "r3")
	if err != nil || !removed {
		t.Fatalf("Delete r3: removed=%v err=%v", removed, err)
	}
	removed, err = store.Delete(ctx, "r3")
	if err != nil || removed {
		t.Fatalf("second Delete r3: removed=%v err=%v", removed, err)
	}

	entries, err = store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after delete, got %d", len(entries))
	}
}

func TestSaveRejectsMissingID(t *testing.T) {
	store := openStore(t)
	if err := store.Save(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil result")
	}
	if err := store.Save(context.Background(), &comparison.Result{}); err == nil {
		t.Fatal("expected error for result without id")
	}
}

func TestReopenKeepsResults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")
	store, err := history.OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	if err := store.Save(context.Background(), sampleResult("keep", "A", "B", time.Now())); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := history.OpenPath(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Get(context.Background(), "keep")
	if err != nil || got == nil {
		t.Fatalf("expected result after reopen, got %+v, %v", got, err)
	}
	if reopened.Path() != path {
		t.Fatalf("unexpected path %q", reopened.Path())
	}
}
