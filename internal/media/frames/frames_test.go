package frames

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"vodsnip/internal/config"
)

func writeFrames(t *testing.T, dir string, count int) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= count; i++ {
		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.jpg", i))
		if err := os.WriteFile(path, []byte("jpeg"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSampleCount(t *testing.T) {
	cases := []struct {
		duration float64
		interval int
		want     int
	}{
		{0, 3, 0},
		{1, 3, 1},
		{3, 3, 2},
		{10, 3, 4},
		{3600, 3, 1201},
		{10, 0, 0},
	}
	for _, tc := range cases {
		if got := SampleCount(tc.duration, tc.interval); got != tc.want {
			t.Errorf("SampleCount(%v, %d) = %d, want %d", tc.duration, tc.interval, got, tc.want)
		}
	}
}

func TestIndexPathsAndTimes(t *testing.T) {
	root := t.TempDir()
	identityDir := filepath.Join(root, "identity")
	titleDir := filepath.Join(root, "title")
	writeFrames(t, identityDir, 3)
	writeFrames(t, titleDir, 3)

	index, err := NewIndex(identityDir, titleDir, 3)
	if err != nil {
		t.Fatal(err)
	}
	if index.Count() != 3 {
		t.Fatalf("count = %d, want 3", index.Count())
	}
	if index.Time(2) != 6 {
		t.Fatalf("Time(2) = %v, want 6", index.Time(2))
	}

	path, err := index.IdentityCrop(0)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "frame_0001.jpg" {
		t.Fatalf("IdentityCrop(0) = %s", path)
	}
	path, err = index.TitleCrop(2)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "frame_0003.jpg" {
		t.Fatalf("TitleCrop(2) = %s", path)
	}
}

func TestIndexOutOfRange(t *testing.T) {
	root := t.TempDir()
	identityDir := filepath.Join(root, "identity")
	titleDir := filepath.Join(root, "title")
	writeFrames(t, identityDir, 2)
	writeFrames(t, titleDir, 2)

	index, err := NewIndex(identityDir, titleDir, 3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := index.IdentityCrop(2); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := index.TitleCrop(-1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestIndexUsesSmallerRegionCount(t *testing.T) {
	root := t.TempDir()
	identityDir := filepath.Join(root, "identity")
	titleDir := filepath.Join(root, "title")
	writeFrames(t, identityDir, 5)
	writeFrames(t, titleDir, 4)

	index, err := NewIndex(identityDir, titleDir, 3)
	if err != nil {
		t.Fatal(err)
	}
	if index.Count() != 4 {
		t.Fatalf("count = %d, want 4", index.Count())
	}
}

func TestIndexEmptyDirectories(t *testing.T) {
	root := t.TempDir()
	identityDir := filepath.Join(root, "identity")
	titleDir := filepath.Join(root, "title")
	if err := os.MkdirAll(identityDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(titleDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := NewIndex(identityDir, titleDir, 3); err == nil {
		t.Fatal("expected an error for empty frame directories")
	}
}

func TestCropFilter(t *testing.T) {
	roi := config.ROI{XFrac: 0.055, YFrac: 0.03, WFrac: 0.4, HFrac: 0.06}
	got := CropFilter(roi, 3)
	want := "fps=1/3,crop=in_w*0.4:in_h*0.06:in_w*0.055:in_h*0.03"
	if got != want {
		t.Fatalf("CropFilter = %q, want %q", got, want)
	}
}
