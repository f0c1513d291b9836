package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"vadcut/internal/clip"
	"vadcut/internal/fileutil"
	"vadcut/internal/services"
)

// Store manages clip catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Run identifies one pipeline invocation in the catalog.
type Run struct {
	ID         string
	Source     string
	SampleRate int
}

// Entry is one catalog row: a clip record plus its run context.
type Entry struct {
	clip.Record
	RunID      string
	Source     string
	SampleRate int
	CreatedAt  time.Time
}

// Open initializes or connects to the catalog database and applies the schema.
func Open(path string) (*Store, error) {
	if err := fileutil.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("ensure catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
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

	store := &Store{db: db, path: path}
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

// WriteRecords persists the ordered record list for one run in a single
// transaction: either every record lands or none do.
func (s *Store) WriteRecords(ctx context.Context, run Run, records []clip.Record) error {
	if len(records) == 0 {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return services.Wrap(services.ErrSink, "catalog", "write", "begin tx", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO clips (
            run_id, source, sample_rate, clip_name,
            start_time, end_time, duration, padded_duration,
            start_padding_seconds, end_padding_seconds, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return services.Wrap(services.ErrSink, "catalog", "write", "prepare insert", err)
	}
	defer stmt.Close()

	for _, record := range records {
		if _, err := stmt.ExecContext(ctx,
			run.ID, run.Source, run.SampleRate, record.ClipName,
			record.StartTime, record.EndTime, record.Duration, record.PaddedDuration,
			record.StartPaddingSeconds, record.EndPaddingSeconds, now,
		); err != nil {
			return services.Wrap(services.ErrSink, "catalog", "write", record.ClipName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return services.Wrap(services.ErrSink, "catalog", "write", "commit", err)
	}
	return nil
}

// List returns catalog entries, newest first, capped at limit (0 for all).
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT run_id, source, sample_rate, clip_name,
            start_time, end_time, duration, padded_duration,
            start_padding_seconds, end_padding_seconds, created_at
        FROM clips ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query clips: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var createdAt string
		if err := rows.Scan(
			&entry.RunID, &entry.Source, &entry.SampleRate, &entry.ClipName,
			&entry.StartTime, &entry.EndTime, &entry.Duration, &entry.PaddedDuration,
			&entry.StartPaddingSeconds, &entry.EndPaddingSeconds, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan clip row: %w", err)
		}
		if ts, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			entry.CreatedAt = ts
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ListRun returns the entries for one run in insertion order.
func (s *Store) ListRun(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, source, sample_rate, clip_name,
            start_time, end_time, duration, padded_duration,
            start_padding_seconds, end_padding_seconds, created_at
        FROM clips WHERE run_id = ? ORDER BY id ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run clips: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var createdAt string
		if err := rows.Scan(
			&entry.RunID, &entry.Source, &entry.SampleRate, &entry.ClipName,
			&entry.StartTime, &entry.EndTime, &entry.Duration, &entry.PaddedDuration,
			&entry.StartPaddingSeconds, &entry.EndPaddingSeconds, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan clip row: %w", err)
		}
		if ts, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			entry.CreatedAt = ts
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// RunSink adapts a store and run into the metadata sink capability.
type RunSink struct {
	store *Store
	run   Run
}

// NewRunSink binds the store to one run's identity.
func NewRunSink(store *Store, run Run) *RunSink {
	return &RunSink{store: store, run: run}
}

// WriteRecords implements clip.MetadataSink.
func (s *RunSink) WriteRecords(ctx context.Context, records []clip.Record) error {
	return s.store.WriteRecords(ctx, s.run, records)
}
