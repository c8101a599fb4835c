package store_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"vibeandbuild/internal/content"
	"vibeandbuild/internal/store"
	"vibeandbuild/internal/testsupport"
)

func TestProjectsRoundTrip(t *testing.T) {
	stores := testsupport.MustOpenStores(t)
	ctx := context.Background()

	projects := []content.Project{
		{
			ID:          "project-01",
			Title:       "Generative Poster",
			Description: "A weekly poster",
			Tags:        []string{"design", "ai"},
			Thumbnails:  []string{"/images/thumbnails/01.webp"},
			Link:        "https://example.com/p1",
			Week:        1,
			Year:        2025,
		},
		{ID: "project-02", Title: "Sound Toy", Thumbnails: []string{"/images/thumbnails/02.webp"}, Week: 2, Year: 2025},
	}
	if err := stores.Projects.Save(ctx, projects); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := stores.Projects.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(projects, loaded) {
		t.Fatalf("round trip mismatch:\nsaved  %#v\nloaded %#v", projects, loaded)
	}
}

func TestLoadMissingFileYieldsEmptyCollection(t *testing.T) {
	stores := testsupport.MustOpenStores(t)

	projects, err := stores.Projects.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(projects))
	}
}

func TestSaveRejectsInvalidRecordWithoutTouchingFile(t *testing.T) {
	stores := testsupport.MustOpenStores(t)
	ctx := context.Background()

	valid := []content.Project{{ID: "project-01", Title: "Keep Me", Week: 1, Year: 2025}}
	if err := stores.Projects.Save(ctx, valid); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	before, err := os.ReadFile(stores.Projects.Path())
	if err != nil {
		t.Fatal(err)
	}

	invalid := append(valid, content.Project{Title: "No ID", Week: 2, Year: 2025})
	if err := stores.Projects.Save(ctx, invalid); err == nil {
		t.Fatal("expected validation error")
	}

	after, err := os.ReadFile(stores.Projects.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Fatal("failed save must leave the file byte-identical")
	}
}

func TestSaveDeduplicatesTags(t *testing.T) {
	stores := testsupport.MustOpenStores(t)
	ctx := context.Background()

	projects := []content.Project{{
		ID:    "project-01",
		Title: "Tagged",
		Tags:  []string{"ai", "ai", "design", "AI"},
		Week:  1,
		Year:  2025,
	}}
	if err := stores.Projects.Save(ctx, projects); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := stores.Projects.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// Dedup is case-sensitive exact match, first-seen order preserved.
	want := []string{"ai", "design", "AI"}
	if !reflect.DeepEqual(loaded[0].Tags, want) {
		t.Fatalf("expected persisted tags %v, got %v", want, loaded[0].Tags)
	}

	experiments := []content.Experiment{{
		ID:    "exp-01",
		Title: "Tagged",
		Tags:  []string{"css", "css", "motion"},
	}}
	if err := stores.Experiments.Save(ctx, experiments); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loadedExp, err := stores.Experiments.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loadedExp[0].Tags, []string{"css", "motion"}) {
		t.Fatalf("expected deduped experiment tags, got %v", loadedExp[0].Tags)
	}
}

func TestThumbnailScanOrdering(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"03.webp", "03-2.webp", "03-1.webp", "04.webp", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got := store.ScanWeekThumbnails(dir, 3)
	want := []string{"03.webp", "03-1.webp", "03-2.webp"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	// Unchanged directory contents must yield the same ordered list.
	again := store.ScanWeekThumbnails(dir, 3)
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("scan not idempotent: %v vs %v", got, again)
	}
}

func TestThumbnailScanMissingDirectoryDegrades(t *testing.T) {
	if got := store.ScanWeekThumbnails(filepath.Join(t.TempDir(), "absent"), 3); len(got) != 0 {
		t.Fatalf("expected no thumbnails, got %v", got)
	}
}

func TestLoadMergesScannedThumbnails(t *testing.T) {
	stores, cfg := testsupport.MustOpenStoresWithConfig(t)
	ctx := context.Background()

	thumbs := filepath.Join(cfg.Paths.PublicDir, "images", "thumbnails")
	for _, name := range []string{"05.webp", "05-1.webp"} {
		if err := os.WriteFile(filepath.Join(thumbs, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	saved := []content.Project{{ID: "project-05", Title: "Scanned", Week: 5, Year: 2025}}
	if err := stores.Projects.Save(ctx, saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := stores.Projects.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := []string{"/images/thumbnails/05.webp", "/images/thumbnails/05-1.webp"}
	if !reflect.DeepEqual(loaded[0].Thumbnails, want) {
		t.Fatalf("expected merged thumbnails %v, got %v", want, loaded[0].Thumbnails)
	}

	// The merge is never persisted.
	raw, err := os.ReadFile(stores.Projects.Path())
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(raw, []byte("05.webp")) {
		t.Fatal("thumbnail scan must not be written back to disk")
	}

	// Stored reads skip the merge, so a read-modify-write flow cannot
	// persist scanned thumbnails either.
	stored, err := stores.Projects.Stored(ctx)
	if err != nil {
		t.Fatalf("Stored failed: %v", err)
	}
	if len(stored[0].Thumbnails) != 0 {
		t.Fatalf("expected no thumbnails in stored view, got %v", stored[0].Thumbnails)
	}
}

func TestExperimentsAndIdeasRoundTrip(t *testing.T) {
	stores := testsupport.MustOpenStores(t)
	ctx := context.Background()

	experiments := []content.Experiment{
		{ID: "exp-01", Title: "Marquee", Tags: []string{"css"}, Tokens: 1200, Text: "scrolling text", Images: []int{0, 1}},
		{ID: "exp-02", Title: "Vector Field", Tokens: 800, Images: []int{}, Video: "02.mp4"},
	}
	if err := stores.Experiments.Save(ctx, experiments); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loadedExp, err := stores.Experiments.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(experiments, loadedExp) {
		t.Fatalf("experiment round trip mismatch: %#v", loadedExp)
	}

	ideas := []string{"knitting simulator", "weather chimes"}
	if err := stores.Ideas.Save(ctx, ideas); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loadedIdeas, err := stores.Ideas.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(ideas, loadedIdeas) {
		t.Fatalf("idea round trip mismatch: %#v", loadedIdeas)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	stores := testsupport.MustOpenStores(t)
	if err := os.WriteFile(stores.Experiments.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := stores.Experiments.Load(context.Background()); err == nil {
		t.Fatal("expected error for malformed collection file")
	}
}
