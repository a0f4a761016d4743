package store_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/randalmurphal/animexpr/pkg/animexpr/expr"
	"github.com/randalmurphal/animexpr/pkg/animexpr/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nodes.db")

	store1, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store1.Save("engine-1", 4, []byte("persistent")))
	require.NoError(t, store1.Close())

	store2, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store2.Close()

	data, err := store2.Load("engine-1", 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("persistent"), data)

	// Sequence continues after reopening.
	require.NoError(t, store2.Save("engine-1", 5, []byte("next")))
	infos, err := store2.List("engine-1")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, 2, infos[1].Sequence)
}

func TestSQLiteStore_InvalidPath(t *testing.T) {
	_, err := store.NewSQLiteStore("/nonexistent/path/db.sqlite")
	assert.Error(t, err)
}

func TestSQLiteStore_CloseIdempotent(t *testing.T) {
	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)

	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestSQLiteStore_Concurrent(t *testing.T) {
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "concurrent.db"))
	require.NoError(t, err)
	defer s.Close()

	const numGoroutines = 10
	const numOps = 10

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for g := 0; g < numGoroutines; g++ {
		go func(g int) {
			defer wg.Done()
			for i := 0; i < numOps; i++ {
				tag := expr.Tag(g*numOps + i)
				assert.NoError(t, s.Save("engine-1", tag, []byte("x")))
				_, err := s.Load("engine-1", tag)
				assert.NoError(t, err)
			}
		}(g)
	}
	wg.Wait()

	infos, err := s.List("engine-1")
	require.NoError(t, err)
	assert.Len(t, infos, numGoroutines*numOps)
}
