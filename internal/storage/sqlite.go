package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// CreateRun inserts a new run row with its start timestamp.
func (s *SQLiteStorage) CreateRun(ctx context.Context, run *Run) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	query := `
		INSERT INTO runs (id, repo_path, output_dir, max_words, started_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		run.ID, run.RepoPath, run.OutputDir, run.MaxWords, run.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// FinishRun records the final counters and finish timestamp of a run.
func (s *SQLiteStorage) FinishRun(ctx context.Context, run *Run) error {
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	query := `
		UPDATE runs SET
			text_files = ?, code_files = ?, other_files = ?,
			code_blocks = ?, comment_lines = ?,
			markdown_chunks = ?, comment_chunks = ?,
			skipped_files = ?, finished_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		run.TextFiles, run.CodeFiles, run.OtherFiles,
		run.CodeBlocks, run.CommentLines,
		run.MarkdownChunks, run.CommentChunks,
		run.SkippedFiles, run.FinishedAt, run.ID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, runID string) (*Run, error) {
	query := `
		SELECT id, repo_path, output_dir, max_words,
		       text_files, code_files, other_files,
		       code_blocks, comment_lines, markdown_chunks, comment_chunks,
		       skipped_files, started_at, finished_at
		FROM runs WHERE id = ?
	`
	run := &Run{}
	var finished sql.NullTime
	err := s.db.QueryRowContext(ctx, query, runID).Scan(
		&run.ID, &run.RepoPath, &run.OutputDir, &run.MaxWords,
		&run.TextFiles, &run.CodeFiles, &run.OtherFiles,
		&run.CodeBlocks, &run.CommentLines, &run.MarkdownChunks, &run.CommentChunks,
		&run.SkippedFiles, &run.StartedAt, &finished)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if finished.Valid {
		run.FinishedAt = finished.Time
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT id, repo_path, output_dir, max_words,
		       text_files, code_files, other_files,
		       code_blocks, comment_lines, markdown_chunks, comment_chunks,
		       skipped_files, started_at, finished_at
		FROM runs ORDER BY started_at DESC LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		var finished sql.NullTime
		if err := rows.Scan(
			&run.ID, &run.RepoPath, &run.OutputDir, &run.MaxWords,
			&run.TextFiles, &run.CodeFiles, &run.OtherFiles,
			&run.CodeBlocks, &run.CommentLines, &run.MarkdownChunks, &run.CommentChunks,
			&run.SkippedFiles, &run.StartedAt, &finished); err != nil {
			return nil, err
		}
		if finished.Valid {
			run.FinishedAt = finished.Time
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// InsertUnits stores emitted units in a single transaction.
func (s *SQLiteStorage) InsertUnits(ctx context.Context, units []*Unit) error {
	if len(units) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO units (run_id, stream, global_id, path, lang, content, word_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, u := range units {
		if _, err := stmt.ExecContext(ctx,
			u.RunID, u.Stream, u.GlobalID, u.Path, u.Lang, u.Content, u.WordCount); err != nil {
			return fmt.Errorf("failed to insert unit %s/%s: %w", u.Stream, u.GlobalID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit units: %w", err)
	}
	return nil
}

// CountUnits returns the number of stored units for a run.
func (s *SQLiteStorage) CountUnits(ctx context.Context, runID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM units WHERE run_id = ?", runID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count units: %w", err)
	}
	return count, nil
}

// ListUnits returns a run's units for one stream, in insertion order.
func (s *SQLiteStorage) ListUnits(ctx context.Context, runID, stream string) ([]*Unit, error) {
	query := `
		SELECT id, run_id, stream, global_id, path, lang, content, word_count
		FROM units WHERE run_id = ? AND stream = ? ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query, runID, stream)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var units []*Unit
	for rows.Next() {
		u := &Unit{}
		if err := rows.Scan(&u.ID, &u.RunID, &u.Stream, &u.GlobalID,
			&u.Path, &u.Lang, &u.Content, &u.WordCount); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}
