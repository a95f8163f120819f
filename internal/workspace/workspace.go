package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"vodsnip/internal/textutil"
)

// Workspace is the per-VOD working directory holding extracted frames and
// the OCR cache. A file lock guards it so two runs never process the same
// VOD concurrently.
type Workspace struct {
	root     string
	lockPath string
	lock     *flock.Flock
}

// Open creates (or reuses) the working directory for a VOD under workDir
// and acquires its lock. Reusing a directory is how interrupted runs
// resume: extracted frames and the cache survive between runs.
func Open(workDir, vodPath string) (*Workspace, error) {
	stem := vodStem(vodPath)
	if stem == "" {
		return nil, errors.New("workspace: cannot derive a name from the VOD path")
	}
	root := filepath.Join(workDir, stem)
	for _, dir := range []string{root, filepath.Join(root, "identity"), filepath.Join(root, "title")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("workspace: create %s: %w", dir, err)
		}
	}

	lockPath := filepath.Join(root, "vodsnip.lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("workspace: acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("workspace: another run is already processing %s", stem)
	}

	return &Workspace{root: root, lockPath: lockPath, lock: lock}, nil
}

// Root returns the workspace directory.
func (w *Workspace) Root() string {
	return w.root
}

// IdentityDir returns the directory holding identity-region crops.
func (w *Workspace) IdentityDir() string {
	return filepath.Join(w.root, "identity")
}

// TitleDir returns the directory holding title-region crops.
func (w *Workspace) TitleDir() string {
	return filepath.Join(w.root, "title")
}

// CacheFile returns the path of the persisted OCR cache.
func (w *Workspace) CacheFile() string {
	return filepath.Join(w.root, "ocr_cache.json")
}

// Clean removes extracted frames and the OCR cache, forcing the next run to
// start from scratch. The lock file stays.
func (w *Workspace) Clean() error {
	for _, path := range []string{w.IdentityDir(), w.TitleDir(), w.CacheFile()} {
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("workspace: remove %s: %w", path, err)
		}
	}
	return nil
}

// Close releases the workspace lock.
func (w *Workspace) Close() error {
	if w == nil || w.lock == nil {
		return nil
	}
	return w.lock.Unlock()
}

func vodStem(vodPath string) string {
	base := filepath.Base(strings.TrimSpace(vodPath))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return textutil.SanitizeFileName(stem)
}
