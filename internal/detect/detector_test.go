package detect

import (
	"context"
	"fmt"
	"testing"

	"vodsnip/internal/ocrcache"
)

type fakeFrames struct {
	count    int
	interval int
}

func (f fakeFrames) Count() int             { return f.count }
func (f fakeFrames) Time(index int) float64 { return float64(index * f.interval) }
func (f fakeFrames) TitleCrop(index int) (string, error) {
	return fmt.Sprintf("title/%d.jpg", index), nil
}

type fakeSource struct {
	entries map[int]ocrcache.Entry
}

func (f *fakeSource) Get(_ context.Context, index int) (ocrcache.Entry, error) {
	return f.entries[index], nil
}

type countingResolver struct {
	calls int
	title string
}

func (r *countingResolver) ResolveTitle(context.Context, string) (string, error) {
	r.calls++
	return r.title, nil
}

func testParams() Params {
	return Params{
		IntervalSeconds:     3,
		ScanStride:          3,
		LookbackSamples:     20,
		EndBufferSamples:    5,
		MaxGapSeconds:       60,
		MinSegmentSeconds:   5,
		SimilarityThreshold: 0.7,
	}
}

// sourceWithRun builds a sample sequence where id is visible on every sample
// in [from, to] and nothing is visible elsewhere.
func sourceWithRun(id, title string, from, to int) *fakeSource {
	entries := make(map[int]ocrcache.Entry)
	for i := from; i <= to; i++ {
		entries[i] = ocrcache.Entry{IdentityText: id, TitleText: title}
	}
	return &fakeSource{entries: entries}
}

func TestRunLocatesContinuousIdentityRun(t *testing.T) {
	frames := fakeFrames{count: 100, interval: 3}
	source := sourceWithRun("ABCDE12345", "Some Video Title", 10, 40)
	detector := New(testParams(), frames, source, nil, nil)

	result, err := detector.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Raw) != 1 {
		t.Fatalf("expected 1 raw segment, got %d: %+v", len(result.Raw), result.Raw)
	}
	raw := result.Raw[0]
	if raw.Identity != "ABCDE12345" {
		t.Fatalf("identity = %q", raw.Identity)
	}
	if raw.StartSample != 10 {
		t.Fatalf("start sample = %d, want 10", raw.StartSample)
	}
	// Sample 41 is empty, so the located end 40 gains the configured buffer.
	if raw.EndSample < 40 || raw.EndSample > 40+testParams().EndBufferSamples {
		t.Fatalf("end sample = %d, want 40..45", raw.EndSample)
	}
	if raw.Title != "Some Video Title" {
		t.Fatalf("title = %q", raw.Title)
	}

	if len(result.Segments) != 1 {
		t.Fatalf("expected 1 canonical segment, got %d", len(result.Segments))
	}
	if result.Segments[0].StartSec != 30 {
		t.Fatalf("start_sec = %v, want 30", result.Segments[0].StartSec)
	}
	if result.RunID == "" {
		t.Fatal("expected a run ID")
	}
}

func TestBoundariesExactFromAnyOrigin(t *testing.T) {
	frames := fakeFrames{count: 100, interval: 3}
	source := sourceWithRun("ABCDE12345", "Some Video Title", 10, 40)
	detector := New(testParams(), frames, source, nil, nil)
	ctx := context.Background()

	for _, origin := range []int{10, 12, 17, 25, 33, 39, 40} {
		if start := detector.locateStart(ctx, origin, -1, "ABCDE12345", "ABCDE12345"); start != 10 {
			t.Errorf("locateStart from %d = %d, want 10", origin, start)
		}
		if end := detector.locateEnd(ctx, origin, "ABCDE12345"); end != 40 {
			t.Errorf("locateEnd from %d = %d, want 40", origin, end)
		}
	}
}

func TestLocateStartRespectsPreviousSegment(t *testing.T) {
	frames := fakeFrames{count: 100, interval: 3}
	source := sourceWithRun("ABCDE12345", "Some Video Title", 10, 40)
	detector := New(testParams(), frames, source, nil, nil)

	// A previous segment ending at 14 caps the window even though the
	// identity is visible earlier.
	start := detector.locateStart(context.Background(), 20, 14, "ABCDE12345", "ABCDE12345")
	if start != 15 {
		t.Fatalf("locateStart = %d, want 15", start)
	}
}

func TestRunExtendsToRecordingEnd(t *testing.T) {
	frames := fakeFrames{count: 100, interval: 3}
	source := sourceWithRun("ABCDE12345", "Some Video Title", 90, 99)
	detector := New(testParams(), frames, source, nil, nil)

	result, err := detector.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Raw) != 1 {
		t.Fatalf("expected 1 raw segment, got %d", len(result.Raw))
	}
	if result.Raw[0].EndSample != 99 {
		t.Fatalf("end sample = %d, want 99", result.Raw[0].EndSample)
	}
}

func TestRunZeroBufferBeforeDifferentIdentity(t *testing.T) {
	entries := make(map[int]ocrcache.Entry)
	for i := 10; i <= 20; i++ {
		entries[i] = ocrcache.Entry{IdentityText: "ABCDE12345", TitleText: "First Video"}
	}
	for i := 21; i <= 30; i++ {
		entries[i] = ocrcache.Entry{IdentityText: "zXy987AbCdE", TitleText: "Second Video"}
	}
	frames := fakeFrames{count: 100, interval: 3}
	detector := New(testParams(), frames, &fakeSource{entries: entries}, nil, nil)

	result, err := detector.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Raw) != 2 {
		t.Fatalf("expected 2 raw segments, got %d: %+v", len(result.Raw), result.Raw)
	}
	if result.Raw[0].EndSample != 20 {
		t.Fatalf("first segment end = %d, want exact end 20", result.Raw[0].EndSample)
	}
	if result.Raw[1].StartSample != 21 {
		t.Fatalf("second segment start = %d, want 21", result.Raw[1].StartSample)
	}
}

func TestTitleResolvedOncePerIdentity(t *testing.T) {
	entries := make(map[int]ocrcache.Entry)
	for i := 10; i <= 20; i++ {
		entries[i] = ocrcache.Entry{IdentityText: "ABCDE12345", TitleText: "ocr text"}
	}
	for i := 60; i <= 70; i++ {
		entries[i] = ocrcache.Entry{IdentityText: "ABCDE12345", TitleText: "ocr text"}
	}
	frames := fakeFrames{count: 200, interval: 3}
	resolver := &countingResolver{title: "Resolved Title"}
	detector := New(testParams(), frames, &fakeSource{entries: entries}, resolver, nil)

	result, err := detector.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Raw) != 2 {
		t.Fatalf("expected 2 raw segments, got %d: %+v", len(result.Raw), result.Raw)
	}
	if resolver.calls != 1 {
		t.Fatalf("resolver called %d times, want 1", resolver.calls)
	}
	for _, raw := range result.Raw {
		if raw.Title != "Resolved Title" {
			t.Fatalf("raw title = %q", raw.Title)
		}
	}
}

func TestRunNoIdentityFindsNothing(t *testing.T) {
	frames := fakeFrames{count: 50, interval: 3}
	detector := New(testParams(), frames, &fakeSource{entries: map[int]ocrcache.Entry{}}, nil, nil)

	result, err := detector.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Raw) != 0 || len(result.Segments) != 0 {
		t.Fatalf("expected no segments, got %+v", result)
	}
}

func TestRunInvalidParams(t *testing.T) {
	params := testParams()
	params.ScanStride = 0
	detector := New(params, fakeFrames{count: 10, interval: 3}, &fakeSource{}, nil, nil)
	if _, err := detector.Run(context.Background()); err == nil {
		t.Fatal("expected an error for zero stride")
	}
}
