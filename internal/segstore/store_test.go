package segstore

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"vodsnip/internal/detect"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "segments.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleSegments() []detect.Segment {
	return []detect.Segment{
		{Identity: "dQw4w9WgXcQ", StartSec: 30, EndSec: 135, Title: "Funny Moment"},
		{Identity: "zXy987AbCdE", StartSec: 300, EndSec: 420, Title: "Other Video"},
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.SaveRun(ctx, "run-1", "/vods/stream.mp4", sampleSegments()); err != nil {
		t.Fatal(err)
	}

	segments, err := store.RunSegments(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Identity != "dQw4w9WgXcQ" || segments[0].StartSec != 30 {
		t.Fatalf("unexpected first segment: %+v", segments[0])
	}
	if segments[1].Title != "Other Video" {
		t.Fatalf("unexpected second segment: %+v", segments[1])
	}
}

func TestListRunsAndLatest(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.SaveRun(ctx, "run-1", "/vods/a.mp4", sampleSegments()); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveRun(ctx, "run-2", "/vods/b.mp4", nil); err != nil {
		t.Fatal(err)
	}

	runs, err := store.ListRuns(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	for _, run := range runs {
		switch run.ID {
		case "run-1":
			if run.SegmentCount != 2 {
				t.Fatalf("run-1 segment count = %d", run.SegmentCount)
			}
		case "run-2":
			if run.SegmentCount != 0 {
				t.Fatalf("run-2 segment count = %d", run.SegmentCount)
			}
		default:
			t.Fatalf("unexpected run %q", run.ID)
		}
	}

	latest, err := store.LatestRun(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if latest.ID != "run-1" && latest.ID != "run-2" {
		t.Fatalf("unexpected latest run %q", latest.ID)
	}
}

func TestLatestRunEmpty(t *testing.T) {
	store := openStore(t)
	if _, err := store.LatestRun(context.Background()); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestRunSegmentsMissingRun(t *testing.T) {
	store := openStore(t)
	if _, err := store.RunSegments(context.Background(), "nope"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestDeleteRunCascades(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.SaveRun(ctx, "run-1", "/vods/a.mp4", sampleSegments()); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteRun(ctx, "run-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.RunSegments(ctx, "run-1"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound after delete, got %v", err)
	}
	if err := store.DeleteRun(ctx, "run-1"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound for double delete, got %v", err)
	}
}

func TestWriteCSV(t *testing.T) {
	var out strings.Builder
	if err := WriteCSV(&out, sampleSegments()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "identity,start_sec,end_sec,title" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "dQw4w9WgXcQ,30,135,Funny Moment" {
		t.Fatalf("row = %q", lines[1])
	}
}
