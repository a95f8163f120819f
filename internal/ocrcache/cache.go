package ocrcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"vodsnip/internal/logging"
	"vodsnip/internal/ocr"
)

// Entry holds the OCR text read from both screen regions of one sample.
type Entry struct {
	IdentityText string `json:"identity_text"`
	TitleText    string `json:"title_text"`
}

// Source resolves a sample index to the crop image paths OCR should read.
type Source interface {
	IdentityCrop(index int) (string, error)
	TitleCrop(index int) (string, error)
}

// Cache memoizes per-sample OCR results on disk so interrupted or repeated
// detection runs never re-read a frame Tesseract has already seen. Entries
// are write-once: once a sample has a value it is never recomputed.
type Cache struct {
	path       string
	engine     ocr.Engine
	source     Source
	flushEvery int
	logger     *slog.Logger

	mu      sync.Mutex
	entries map[int]Entry
	dirty   int
}

// Open loads the cache file at path, creating an empty cache when the file
// does not exist. A corrupt file is logged and rebuilt rather than aborting
// the run; individually corrupt entries are skipped the same way. Every
// flushEvery new entries the cache persists itself.
func Open(path string, engine ocr.Engine, source Source, flushEvery int, logger *slog.Logger) (*Cache, error) {
	if engine == nil {
		return nil, errors.New("ocrcache: nil engine")
	}
	if source == nil {
		return nil, errors.New("ocrcache: nil source")
	}
	if flushEvery <= 0 {
		flushEvery = 100
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "ocrcache")

	c := &Cache{
		path:       path,
		engine:     engine,
		source:     source,
		flushEvery: flushEvery,
		logger:     logger,
		entries:    make(map[int]Entry),
	}
	if err := c.load(); err != nil {
		logger.Warn("failed to load ocr cache",
			logging.String(logging.FieldEventType, "ocrcache_load_failed"),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "cache will start empty"),
			logging.String(logging.FieldImpact, "previously read frames will be re-processed"))
		c.entries = make(map[int]Entry)
	}
	return c, nil
}

// Get returns the OCR text for a sample, reading both crop images through
// the engine on a cache miss. An engine failure is logged and stored as an
// empty Entry rather than returned, so failing frames are not re-read on
// every probe; only crop lookup and cache persistence can error. Concurrent
// callers for the same index may both compute; the first stored value wins.
func (c *Cache) Get(ctx context.Context, index int) (Entry, error) {
	c.mu.Lock()
	if entry, ok := c.entries[index]; ok {
		c.mu.Unlock()
		return entry, nil
	}
	c.mu.Unlock()

	identityPath, err := c.source.IdentityCrop(index)
	if err != nil {
		return Entry{}, err
	}
	titlePath, err := c.source.TitleCrop(index)
	if err != nil {
		return Entry{}, err
	}
	// Engine failures are cached as empty text like any other unreadable
	// frame, so a bad sample is read exactly once and the scan keeps going.
	entry := Entry{}
	identityText, err := c.engine.ExtractText(ctx, identityPath)
	if err != nil {
		c.warnExtractFailed(index, identityPath, err)
	} else {
		entry.IdentityText = identityText
		titleText, err := c.engine.ExtractText(ctx, titlePath)
		if err != nil {
			c.warnExtractFailed(index, titlePath, err)
			entry = Entry{}
		} else {
			entry.TitleText = titleText
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[index]; ok {
		return existing, nil
	}
	c.entries[index] = entry
	c.dirty++
	if c.dirty >= c.flushEvery {
		if err := c.save(); err != nil {
			return Entry{}, fmt.Errorf("persist ocr cache: %w", err)
		}
		c.dirty = 0
	}
	return entry, nil
}

func (c *Cache) warnExtractFailed(index int, imagePath string, err error) {
	c.logger.Warn("ocr extraction failed",
		logging.String(logging.FieldEventType, "ocr_extract_failed"),
		logging.Int("sample_index", index),
		logging.String("image", imagePath),
		logging.Error(err),
		logging.String(logging.FieldImpact, "sample treated as empty text"))
}

// Lookup returns a cached entry without computing anything on a miss.
func (c *Cache) Lookup(index int) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[index]
	return entry, ok
}

// Count returns the number of cached samples.
func (c *Cache) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Flush persists any unsaved entries to disk.
func (c *Cache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dirty == 0 {
		return nil
	}
	if err := c.save(); err != nil {
		return fmt.Errorf("persist ocr cache: %w", err)
	}
	c.dirty = 0
	return nil
}

// load reads the cache file into memory, skipping entries that fail to
// decode so one bad value costs one re-read, not the whole file.
func (c *Cache) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse cache file: %w", err)
	}

	skipped := 0
	for key, message := range raw {
		index, err := strconv.Atoi(key)
		if err != nil || index < 0 {
			skipped++
			continue
		}
		var entry Entry
		if err := json.Unmarshal(message, &entry); err != nil {
			skipped++
			continue
		}
		c.entries[index] = entry
	}
	if skipped > 0 {
		c.logger.Warn("skipped undecodable cache entries",
			logging.Int("skipped", skipped),
			logging.String(logging.FieldImpact, "those frames will be re-processed"))
	}

	c.logger.Debug("loaded ocr cache",
		logging.Int("entry_count", len(c.entries)),
		logging.String("path", c.path))
	return nil
}

// save writes the cache to disk atomically.
func (c *Cache) save() error {
	flat := make(map[string]Entry, len(c.entries))
	for index, entry := range c.entries {
		flat[strconv.Itoa(index)] = entry
	}
	data, err := json.MarshalIndent(flat, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
