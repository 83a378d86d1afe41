package history

import (
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS recent_files (
	path      TEXT PRIMARY KEY,
	opened_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS session_files (
	position INTEGER PRIMARY KEY,
	path     TEXT NOT NULL
);`

// SQLite keeps the lists in a SQLite database file
type SQLite struct {
	db        *sql.DB
	maxRecent int
	now       func() time.Time
}

// OpenSQLite opens or creates the history database at path
func OpenSQLite(path string, maxRecent int) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("history path is required")
	}
	if maxRecent <= 0 {
		maxRecent = DefaultMaxRecent
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &SQLite{db: db, maxRecent: maxRecent, now: time.Now}, nil
}

// Close closes the database handle
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecentFiles returns paths most-recent-first. Read failures are logged
// and yield an empty list.
func (s *SQLite) RecentFiles() []string {
	paths, err := s.queryPaths(`SELECT path FROM recent_files ORDER BY opened_at DESC, rowid DESC LIMIT ?`, s.maxRecent)
	if err != nil {
		log.Printf("Failed to read recent files: %v", err)
		return nil
	}
	return paths
}

// AddRecent moves path to the front of the list and trims the oldest entries
func (s *SQLite) AddRecent(path string) error {
	if path == "" {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Nanoseconds keep two adds within the same millisecond ordered
	if _, err := tx.Exec(
		`INSERT INTO recent_files (path, opened_at) VALUES (?, ?)
		 ON CONFLICT(path) DO UPDATE SET opened_at = excluded.opened_at`,
		path, s.now().UnixNano(),
	); err != nil {
		return fmt.Errorf("record recent file: %w", err)
	}
	if _, err := tx.Exec(
		`DELETE FROM recent_files WHERE path NOT IN (
		   SELECT path FROM recent_files ORDER BY opened_at DESC LIMIT ?
		 )`,
		s.maxRecent,
	); err != nil {
		return fmt.Errorf("trim recent files: %w", err)
	}
	return tx.Commit()
}

// SessionFiles returns the paths recorded by the last SetSessionFiles
func (s *SQLite) SessionFiles() []string {
	paths, err := s.queryPaths(`SELECT path FROM session_files ORDER BY position`)
	if err != nil {
		log.Printf("Failed to read session files: %v", err)
		return nil
	}
	return paths
}

// SetSessionFiles replaces the session list
func (s *SQLite) SetSessionFiles(paths []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM session_files`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	for i, p := range dedupe(paths) {
		if _, err := tx.Exec(`INSERT INTO session_files (position, path) VALUES (?, ?)`, i, p); err != nil {
			return fmt.Errorf("record session file: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLite) queryPaths(query string, args ...any) ([]string, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
