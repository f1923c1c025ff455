// Package storage provides SQLite-based persistence for completed runs and
// arena outcomes. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/starmap/internal/starmap"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunEntry is one completed campaign.
type RunEntry struct {
	ID        int64
	RunID     string
	TotalMs   int64
	CreatedAt time.Time
}

// ArenaResult is the outcome of one arena session.
type ArenaResult struct {
	ID         int64
	RunID      string
	Outcome    string // "win", "loss" or "quit"
	DurationMs int64
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			total_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(total_ms ASC);

		CREATE TABLE IF NOT EXISTS arena_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_arena_results_run ON arena_results(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InsertRun records a completed run.
// Returns the ID of the inserted record.
func (s *Store) InsertRun(runID string, totalMs int64) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (run_id, total_ms) VALUES (?, ?)",
		runID, totalMs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveRun implements starmap.Recorder.
func (s *Store) SaveRun(runID string, totalMs int64) error {
	_, err := s.InsertRun(runID, totalMs)
	return err
}

// BestRuns retrieves the N fastest runs, fastest first.
func (s *Store) BestRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, total_ms, created_at
		 FROM runs
		 ORDER BY total_ms ASC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// AllRuns retrieves every run, most recent first.
func (s *Store) AllRuns() ([]RunEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, total_ms, created_at
		 FROM runs
		 ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]RunEntry, error) {
	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.TotalMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestTime returns the fastest recorded run. ok is false when no run has
// been recorded.
func (s *Store) BestTime() (ms int64, ok bool, err error) {
	var best sql.NullInt64
	err = s.db.QueryRow("SELECT MIN(total_ms) FROM runs").Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}

	if !best.Valid {
		return 0, false, nil
	}

	return best.Int64, true, nil
}

// ClearRuns deletes all recorded runs.
func (s *Store) ClearRuns() error {
	_, err := s.db.Exec("DELETE FROM runs")
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// InsertArenaResult records the outcome of an arena session.
// Returns the ID of the inserted record.
func (s *Store) InsertArenaResult(result ArenaResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO arena_results (run_id, outcome, duration_ms)
		 VALUES (?, ?, ?)`,
		result.RunID,
		result.Outcome,
		result.DurationMs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save arena result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveArenaResult implements starmap.Recorder.
func (s *Store) SaveArenaResult(runID, outcome string, durationMs int64) error {
	_, err := s.InsertArenaResult(ArenaResult{
		RunID:      runID,
		Outcome:    outcome,
		DurationMs: durationMs,
	})
	return err
}

// Ensure Store implements Recorder
var _ starmap.Recorder = (*Store)(nil)

// RecentArenaResults retrieves the most recent arena outcomes.
func (s *Store) RecentArenaResults(limit int) ([]ArenaResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, outcome, duration_ms, created_at
		 FROM arena_results
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query arena results: %w", err)
	}
	defer rows.Close()

	var results []ArenaResult
	for rows.Next() {
		var r ArenaResult
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.Outcome, &r.DurationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// ArenaStats contains aggregated arena statistics.
type ArenaStats struct {
	Attempts     int
	Wins         int
	Losses       int
	Quits        int
	FastestWinMs int64 // 0 when there are no wins
	LastPlayed   time.Time
}

// GetArenaStats retrieves aggregated arena statistics.
func (s *Store) GetArenaStats() (*ArenaStats, error) {
	stats := &ArenaStats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'win' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = 'loss' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = 'quit' THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(CASE WHEN outcome = 'win' THEN duration_ms END), 0)
		 FROM arena_results`,
	).Scan(&stats.Attempts, &stats.Wins, &stats.Losses, &stats.Quits, &stats.FastestWinMs)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get arena stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM arena_results ORDER BY id DESC LIMIT 1`,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
