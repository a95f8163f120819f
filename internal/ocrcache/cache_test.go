package ocrcache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

type stubEngine struct {
	mu    sync.Mutex
	calls int
	texts map[string]string
}

func (s *stubEngine) ExtractText(_ context.Context, imagePath string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if text, ok := s.texts[imagePath]; ok {
		return text, nil
	}
	return "text for " + imagePath, nil
}

func (s *stubEngine) Close() error { return nil }

func (s *stubEngine) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubSource struct{}

func (stubSource) IdentityCrop(index int) (string, error) {
	return fmt.Sprintf("identity/%d.jpg", index), nil
}

func (stubSource) TitleCrop(index int) (string, error) {
	return fmt.Sprintf("title/%d.jpg", index), nil
}

func TestGetComputesOnceAndCaches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ocr_cache.json")
	engine := &stubEngine{}
	cache, err := Open(path, engine, stubSource{}, 100, nil)
	if err != nil {
		t.Fatal(err)
	}

	first, err := cache.Get(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if first.IdentityText != "text for identity/7.jpg" {
		t.Fatalf("unexpected identity text %q", first.IdentityText)
	}
	if engine.callCount() != 2 {
		t.Fatalf("expected 2 engine calls, got %d", engine.callCount())
	}

	second, err := cache.Get(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Fatalf("cached entry changed: %+v vs %+v", second, first)
	}
	if engine.callCount() != 2 {
		t.Fatalf("cache hit invoked the engine: %d calls", engine.callCount())
	}
}

func TestWarmCacheNeverTouchesEngine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ocr_cache.json")
	seed := &stubEngine{}
	cache, err := Open(path, seed, stubSource{}, 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, index := range []int{0, 1, 2} {
		if _, err := cache.Get(context.Background(), index); err != nil {
			t.Fatal(err)
		}
	}
	if err := cache.Flush(); err != nil {
		t.Fatal(err)
	}

	engine := &stubEngine{}
	cache, err = Open(path, engine, stubSource{}, 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cache.Count() != 3 {
		t.Fatalf("expected 3 loaded entries, got %d", cache.Count())
	}
	if _, err := cache.Get(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if engine.callCount() != 0 {
		t.Fatalf("warm cache invoked the engine %d times", engine.callCount())
	}
}

type failingEngine struct {
	stubEngine
}

func (f *failingEngine) ExtractText(ctx context.Context, imagePath string) (string, error) {
	_, _ = f.stubEngine.ExtractText(ctx, imagePath)
	return "", fmt.Errorf("tesseract crashed reading %s", imagePath)
}

func TestEngineFailureCachedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ocr_cache.json")
	engine := &failingEngine{}
	cache, err := Open(path, engine, stubSource{}, 100, nil)
	if err != nil {
		t.Fatal(err)
	}

	entry, err := cache.Get(context.Background(), 4)
	if err != nil {
		t.Fatalf("engine failure surfaced as an error: %v", err)
	}
	if entry != (Entry{}) {
		t.Fatalf("expected empty entry for a failing sample, got %+v", entry)
	}
	first := engine.callCount()

	// The empty result must be cached write-once like any other, so
	// repeated boundary probes of the same index stay out of the engine.
	if _, err := cache.Get(context.Background(), 4); err != nil {
		t.Fatal(err)
	}
	if engine.callCount() != first {
		t.Fatalf("failing sample re-invoked the engine: %d calls, then %d", first, engine.callCount())
	}
	if cache.Count() != 1 {
		t.Fatalf("expected the failure to be stored, have %d entries", cache.Count())
	}
}

func TestEngineFailureCountsTowardFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ocr_cache.json")
	cache, err := Open(path, &failingEngine{}, stubSource{}, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Get(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("failed sample did not trigger a flush: %v", err)
	}
}

func TestFlushCadence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ocr_cache.json")
	cache, err := Open(path, &stubEngine{}, stubSource{}, 2, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := cache.Get(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("cache persisted before reaching the flush threshold")
	}
	if _, err := cache.Get(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("cache not persisted at flush threshold: %v", err)
	}
}

func TestCorruptFileRebuilds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ocr_cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	cache, err := Open(path, &stubEngine{}, stubSource{}, 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cache.Count() != 0 {
		t.Fatalf("expected empty cache, got %d entries", cache.Count())
	}
	if _, err := cache.Get(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
}

func TestCorruptEntrySkippedIndividually(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ocr_cache.json")
	payload := `{
  "0": {"identity_text": "ok", "title_text": "ok"},
  "1": "not an object",
  "banana": {"identity_text": "x", "title_text": "y"}
}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
	cache, err := Open(path, &stubEngine{}, stubSource{}, 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cache.Count() != 1 {
		t.Fatalf("expected 1 surviving entry, got %d", cache.Count())
	}
	entry, ok := cache.Lookup(0)
	if !ok || entry.IdentityText != "ok" {
		t.Fatalf("surviving entry wrong: %+v ok=%v", entry, ok)
	}
}
