package store

import (
	"sort"
	"sync"
	"time"

	"github.com/randalmurphal/animexpr/pkg/animexpr/expr"
)

// MemoryStore keeps configs in memory. Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]map[expr.Tag]entry // engineID -> tag -> entry
	seq    map[string]int                // engineID -> last sequence
	closed bool
}

type entry struct {
	data      []byte
	sequence  int
	updatedAt time.Time
}

// Compile-time interface check.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[expr.Tag]entry),
		seq:  make(map[string]int),
	}
}

// Save implements Store. Overwriting keeps the original sequence.
func (m *MemoryStore) Save(engineID string, tag expr.Tag, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if m.data[engineID] == nil {
		m.data[engineID] = make(map[expr.Tag]entry)
	}

	seq := m.data[engineID][tag].sequence
	if seq == 0 {
		m.seq[engineID]++
		seq = m.seq[engineID]
	}

	// Copy data to avoid retaining caller's slice
	stored := make([]byte, len(data))
	copy(stored, data)

	m.data[engineID][tag] = entry{
		data:      stored,
		sequence:  seq,
		updatedAt: time.Now().UTC(),
	}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(engineID string, tag expr.Tag) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	e, ok := m.data[engineID][tag]
	if !ok {
		return nil, ErrNotFound
	}

	result := make([]byte, len(e.data))
	copy(result, e.data)
	return result, nil
}

// List implements Store.
func (m *MemoryStore) List(engineID string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	entries := m.data[engineID]
	infos := make([]Info, 0, len(entries))
	for tag, e := range entries {
		infos = append(infos, Info{
			EngineID:  engineID,
			Tag:       tag,
			Sequence:  e.sequence,
			UpdatedAt: e.updatedAt,
			Size:      int64(len(e.data)),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Sequence < infos[j].Sequence
	})
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(engineID string, tag expr.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data[engineID], tag)
	return nil
}

// DeleteEngine implements Store.
func (m *MemoryStore) DeleteEngine(engineID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, engineID)
	delete(m.seq, engineID)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	m.seq = nil
	return nil
}

// Len returns the number of entries across all engines.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, entries := range m.data {
		count += len(entries)
	}
	return count
}
