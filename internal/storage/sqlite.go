// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/chaos-economy/internal/economy"
	"github.com/vovakirdan/chaos-economy/internal/sink"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// ResultEntry represents a single recorded game.
type ResultEntry struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"session_id"`
	FinalPeriod  int       `json:"final_period"`
	Survived     bool      `json:"survived"`
	Outcome      string    `json:"outcome"` // Category name, e.g. "Fearful"
	Consumptions []float64 `json:"consumptions"`
	CreatedAt    time.Time `json:"created_at"`
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
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			final_period INTEGER NOT NULL,
			survived INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			consumptions TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(final_period DESC);
		CREATE INDEX IF NOT EXISTS idx_results_session ON results(session_id);
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

// SaveResult records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r sink.Result) (int64, error) {
	return s.insert(context.Background(), r)
}

// Append implements sink.Sink.
func (s *Store) Append(ctx context.Context, r sink.Result) error {
	_, err := s.insert(ctx, r)
	return err
}

var _ sink.Sink = (*Store)(nil)

func (s *Store) insert(ctx context.Context, r sink.Result) (int64, error) {
	consumptions := r.Consumptions
	if consumptions == nil {
		consumptions = []float64{}
	}
	encoded, err := json.Marshal(consumptions)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode consumptions: %w", err)
	}

	survived := 0
	if r.Survived {
		survived = 1
	}

	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO results (session_id, final_period, survived, outcome, consumptions, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.SessionID,
		r.FinalPeriod,
		survived,
		economy.OutcomeFor(r.FinalPeriod).String(),
		string(encoded),
		ts.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopResults retrieves the N games that lasted longest.
// Ties go to the earlier game.
func (s *Store) TopResults(limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT id, session_id, final_period, survived, outcome, consumptions, created_at
		 FROM results
		 ORDER BY final_period DESC, created_at ASC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// RecentResults retrieves the most recently recorded games.
func (s *Store) RecentResults(limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryResults(
		`SELECT id, session_id, final_period, survived, outcome, consumptions, created_at
		 FROM results
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryResults(query string, args ...any) ([]ResultEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var survived int
		var encoded string
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SessionID, &e.FinalPeriod, &survived, &e.Outcome, &encoded, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Survived = survived != 0
		if err := json.Unmarshal([]byte(encoded), &e.Consumptions); err != nil {
			return nil, fmt.Errorf("storage: cannot decode consumptions of result %d: %w", e.ID, err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestPeriod returns the furthest period anyone has reached.
// Returns 0 if no results exist.
func (s *Store) BestPeriod() (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(final_period) FROM results").Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best period: %w", err)
	}

	if !best.Valid {
		return 0, nil
	}

	return int(best.Int64), nil
}

// ClearResults deletes every recorded game.
func (s *Store) ClearResults() error {
	_, err := s.db.Exec("DELETE FROM results")
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over all recorded games.
type Stats struct {
	Games      int
	Survivors  int
	BestPeriod int
	AvgPeriod  float64
	ByOutcome  map[string]int
	LastPlayed time.Time
}

// GetStats retrieves aggregated statistics.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{ByOutcome: make(map[string]int)}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(survived), 0), COALESCE(MAX(final_period), 0),
		        COALESCE(AVG(final_period), 0), MAX(created_at)
		 FROM results`,
	).Scan(&stats.Games, &stats.Survivors, &stats.BestPeriod, &stats.AvgPeriod, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	rows, err := s.db.Query(`SELECT outcome, COUNT(*) FROM results GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get outcome histogram: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats.ByOutcome[outcome] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
