package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/randalmurphal/animexpr/pkg/animexpr/expr"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists configs to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// Compile-time interface check.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (and if needed creates) a SQLite store.
// The path should be a file path or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// An in-memory database exists per connection.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS node_configs (
			engine_id TEXT NOT NULL,
			tag INTEGER NOT NULL,
			sequence INTEGER NOT NULL,
			updated_at TEXT NOT NULL,
			data BLOB NOT NULL,
			PRIMARY KEY (engine_id, tag)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store. Overwriting keeps the original sequence.
// Sequences count per engine and restart at 1 after DeleteEngine.
func (s *SQLiteStore) Save(engineID string, tag expr.Tag, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		INSERT INTO node_configs (engine_id, tag, sequence, updated_at, data)
		VALUES (
			?, ?,
			COALESCE((SELECT MAX(sequence) FROM node_configs WHERE engine_id = ?), 0) + 1,
			?, ?
		)
		ON CONFLICT(engine_id, tag) DO UPDATE SET
			updated_at = excluded.updated_at,
			data = excluded.data
	`, engineID, int64(tag), engineID, time.Now().UTC().Format(time.RFC3339Nano), data)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load(engineID string, tag expr.Tag) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	var data []byte
	err := s.db.QueryRow(`
		SELECT data FROM node_configs
		WHERE engine_id = ? AND tag = ?
	`, engineID, int64(tag)).Scan(&data)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return data, nil
}

// List implements Store.
func (s *SQLiteStore) List(engineID string) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT tag, sequence, updated_at, LENGTH(data)
		FROM node_configs
		WHERE engine_id = ?
		ORDER BY sequence
	`, engineID)
	if err != nil {
		return nil, fmt.Errorf("list configs: %w", err)
	}
	defer rows.Close()

	infos := []Info{}
	for rows.Next() {
		var (
			info      Info
			tag       int64
			updatedAt string
		)
		if err := rows.Scan(&tag, &info.Sequence, &updatedAt, &info.Size); err != nil {
			return nil, fmt.Errorf("scan config info: %w", err)
		}
		info.EngineID = engineID
		info.Tag = expr.Tag(tag)
		info.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate configs: %w", err)
	}
	return infos, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(engineID string, tag expr.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`
		DELETE FROM node_configs WHERE engine_id = ? AND tag = ?
	`, engineID, int64(tag)); err != nil {
		return fmt.Errorf("delete config: %w", err)
	}
	return nil
}

// DeleteEngine implements Store.
func (s *SQLiteStore) DeleteEngine(engineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`
		DELETE FROM node_configs WHERE engine_id = ?
	`, engineID); err != nil {
		return fmt.Errorf("delete engine configs: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
