package cell

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dep string

func (d dep) ID() string { return string(d) }

func TestNew_AllocatesDistinctTags(t *testing.T) {
	a := New(1)
	b := New(2)
	assert.NotEqual(t, a.Tag(), b.Tag())
	assert.Greater(t, int(b.Tag()), int(a.Tag()))
}

func TestGetSet(t *testing.T) {
	c := NewWithTag(42, 1.5)
	assert.Equal(t, 1.5, c.Get())

	c.Set(-3)
	assert.Equal(t, -3.0, c.Get())
	assert.EqualValues(t, 42, c.Tag())
}

func TestDependents_DuplicatesAreKept(t *testing.T) {
	c := New(0)
	d := dep("expr-1")

	c.AddDependent(d)
	c.AddDependent(d)
	require.Len(t, c.Dependents(), 2)

	c.RemoveDependent(d)
	require.Len(t, c.Dependents(), 1)

	c.RemoveDependent(d)
	assert.Empty(t, c.Dependents())

	// Removing an unknown dependent is a no-op
	c.RemoveDependent(dep("missing"))
	assert.Empty(t, c.Dependents())
}

func TestDependents_SnapshotIsACopy(t *testing.T) {
	c := New(0)
	c.AddDependent(dep("a"))

	snap := c.Dependents()
	snap[0] = dep("b")

	assert.Equal(t, dep("a"), c.Dependents()[0])
}

func TestConcurrentAccess(t *testing.T) {
	c := New(0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Set(float64(i))
			_ = c.Get()
			c.AddDependent(dep("d"))
		}(i)
	}
	wg.Wait()

	assert.Len(t, c.Dependents(), 50)
}
