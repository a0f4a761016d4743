// Package store persists native expression configs so an engine can
// rebuild its node table after a restart.
package store

import (
	"errors"
	"time"

	"github.com/randalmurphal/animexpr/pkg/animexpr/expr"
)

// Store persists serialized node configs.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores the config of node tag for an engine.
	// Overwrites an existing entry.
	Save(engineID string, tag expr.Tag, data []byte) error

	// Load retrieves a config.
	// Returns ErrNotFound if it doesn't exist.
	Load(engineID string, tag expr.Tag) ([]byte, error)

	// List returns all entries for an engine in the order they were first saved.
	// Returns an empty slice (not error) if the engine has none.
	List(engineID string) ([]Info, error)

	// Delete removes one entry.
	// Returns nil if it doesn't exist.
	Delete(engineID string, tag expr.Tag) error

	// DeleteEngine removes all entries for an engine.
	DeleteEngine(engineID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info describes a stored entry without loading it.
type Info struct {
	EngineID  string
	Tag       expr.Tag
	Sequence  int
	UpdatedAt time.Time
	Size      int64
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates an entry doesn't exist.
	ErrNotFound = errors.New("config not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("config store closed")
)
