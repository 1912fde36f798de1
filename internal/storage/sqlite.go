// Package storage provides SQLite-based persistence for play sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the session log.
type Store struct {
	db *sql.DB
}

// End reasons recorded for a session.
const (
	EndQuit  = "quit"
	EndError = "error"
)

// Session is one finished run of the runtime.
type Session struct {
	ID         int64
	User       string
	View       string // view the session started at
	Backend    string // tcell, tea or ssh
	Frames     int64
	LastFPS    int
	DurationMs int64
	EndReason  string
	CreatedAt  time.Time
}

// ViewStats aggregates the sessions that started at one view.
type ViewStats struct {
	View        string
	Sessions    int
	TotalFrames int64
	AvgFPS      float64
	LastPlayed  time.Time
}

// DefaultPath returns ~/.shooter/sessions.db.
func DefaultPath() string {
	return "~/.shooter/sessions.db"
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// One writer at a time; SSH sessions finish concurrently.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user TEXT NOT NULL DEFAULT '',
			view TEXT NOT NULL,
			backend TEXT NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			last_fps INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_view ON sessions(view);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);
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

// SaveSession records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(rec Session) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions (user, view, backend, frames, last_fps, duration_ms, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.User, rec.View, rec.Backend, rec.Frames, rec.LastFPS, rec.DurationMs, rec.EndReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, user, view, backend, frames, last_fps, duration_ms, end_reason, created_at
		 FROM sessions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var rec Session
		var createdAt any
		if err := rows.Scan(
			&rec.ID,
			&rec.User,
			&rec.View,
			&rec.Backend,
			&rec.Frames,
			&rec.LastFPS,
			&rec.DurationMs,
			&rec.EndReason,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.CreatedAt = parseTime(createdAt)
		sessions = append(sessions, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// AllViewStats retrieves statistics for every view that started a session.
func (s *Store) AllViewStats() (map[string]*ViewStats, error) {
	rows, err := s.db.Query(
		`SELECT view, COUNT(*), SUM(frames), AVG(last_fps), MAX(created_at)
		 FROM sessions
		 GROUP BY view`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get view stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ViewStats)
	for rows.Next() {
		var vs ViewStats
		var lastPlayed any
		if err := rows.Scan(&vs.View, &vs.Sessions, &vs.TotalFrames, &vs.AvgFPS, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		vs.LastPlayed = parseTime(lastPlayed)
		stats[vs.View] = &vs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearSessions deletes the whole session log.
func (s *Store) ClearSessions() error {
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// parseTime handles the driver returning either time.Time or a string.
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

// Finish returns rec completed with the outcome of a run that began at start.
func (rec Session) Finish(start time.Time, frames int64, lastFPS int, runErr error) Session {
	rec.Frames = frames
	rec.LastFPS = lastFPS
	rec.DurationMs = time.Since(start).Milliseconds()
	rec.EndReason = EndQuit
	if runErr != nil {
		rec.EndReason = EndError
	}
	return rec
}
