package segstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"vodsnip/internal/detect"
)

// ErrRunNotFound indicates the requested run does not exist.
var ErrRunNotFound = errors.New("run not found")

// Run describes one persisted detection run.
type Run struct {
	ID           string
	VODPath      string
	CreatedAt    time.Time
	SegmentCount int
}

// Store persists detection runs and their segments, backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the segment database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun persists a completed detection run with its segments in one
// transaction.
func (s *Store) SaveRun(ctx context.Context, runID, vodPath string, segments []detect.Segment) error {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return errors.New("segstore: empty run id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO runs (id, vod_path, created_at) VALUES (?, ?, ?)",
		runID, vodPath, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	for position, segment := range segments {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO segments (run_id, position, identity, start_sec, end_sec, title) VALUES (?, ?, ?, ?, ?, ?)",
			runID, position, segment.Identity, segment.StartSec, segment.EndSec, segment.Title)
		if err != nil {
			return fmt.Errorf("insert segment %d: %w", position, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns all persisted runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.vod_path, r.created_at, COUNT(s.run_id)
		FROM runs r
		LEFT JOIN segments s ON s.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LatestRun returns the most recently saved run.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT r.id, r.vod_path, r.created_at, COUNT(s.run_id)
		FROM runs r
		LEFT JOIN segments s ON s.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC
		LIMIT 1`)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	return run, err
}

// RunSegments returns the segments of a run in position order.
func (s *Store) RunSegments(ctx context.Context, runID string) ([]detect.Segment, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM runs WHERE id = ?", runID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check run: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT identity, start_sec, end_sec, title FROM segments WHERE run_id = ? ORDER BY position",
		runID)
	if err != nil {
		return nil, fmt.Errorf("query segments: %w", err)
	}
	defer rows.Close()

	var segments []detect.Segment
	for rows.Next() {
		var segment detect.Segment
		if err := rows.Scan(&segment.Identity, &segment.StartSec, &segment.EndSec, &segment.Title); err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		segments = append(segments, segment)
	}
	return segments, rows.Err()
}

// DeleteRun removes a run and its segments.
func (s *Store) DeleteRun(ctx context.Context, runID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", runID)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var createdAt string
	if err := row.Scan(&run.ID, &run.VODPath, &createdAt, &run.SegmentCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		run.CreatedAt = parsed
	}
	return run, nil
}
