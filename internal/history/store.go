package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/GusBusDraws/aps-directional/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; old databases are rejected rather than migrated in place.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store manages render history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	keep int
}

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, keep: cfg.History.Keep}
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

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// Record inserts a render record, prunes old completed rows past the
// configured retention, and returns the new row id.
func (s *Store) Record(ctx context.Context, rec Record) (int64, error) {
	if rec.Kind == "" || rec.Status == "" {
		return 0, errors.New("history record requires kind and status")
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO renders (
            kind, source_dir, pattern, output, fps, frame_count,
            args, status, error_message, duration_ms, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(rec.Kind),
		rec.SourceDir,
		rec.Pattern,
		rec.Output,
		rec.FPS,
		rec.FrameCount,
		rec.Args,
		string(rec.Status),
		rec.ErrorMessage,
		rec.Duration.Milliseconds(),
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert render record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read insert id: %w", err)
	}

	if s.keep > 0 {
		if err := s.prune(ctx); err != nil {
			return id, fmt.Errorf("prune history: %w", err)
		}
	}
	return id, nil
}

// List returns the most recent records, newest first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT id, kind, source_dir, pattern, output, fps, frame_count,
            args, status, error_message, duration_ms, created_at
        FROM renders ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list render records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var kind, status, createdAt string
		var durationMS int64
		if err := rows.Scan(
			&rec.ID, &kind, &rec.SourceDir, &rec.Pattern, &rec.Output,
			&rec.FPS, &rec.FrameCount, &rec.Args, &status, &rec.ErrorMessage,
			&durationMS, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan render record: %w", err)
		}
		rec.Kind = Kind(kind)
		rec.Status = Status(status)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = ts
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate render records: %w", err)
	}
	return records, nil
}

func (s *Store) prune(ctx context.Context) error {
	_, err := s.execWithRetry(
		ctx,
		`DELETE FROM renders WHERE id NOT IN (
            SELECT id FROM renders ORDER BY created_at DESC, id DESC LIMIT ?
        )`,
		s.keep,
	)
	return err
}
