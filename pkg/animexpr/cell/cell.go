// Package cell provides an in-process animated value cell: a mutable scalar
// with a stable tag and a list of dependents.
package cell

import (
	"sync"
	"sync/atomic"

	"github.com/randalmurphal/animexpr/pkg/animexpr/expr"
)

var lastTag atomic.Int64

// NextTag allocates a process-unique tag. Tags start at 1.
func NextTag() expr.Tag {
	return expr.Tag(lastTag.Add(1))
}

// Cell is a mutable scalar. It is safe for concurrent use.
type Cell struct {
	tag expr.Tag

	mu         sync.RWMutex
	value      float64
	dependents []expr.Dependent
}

// Compile-time interface checks.
var (
	_ expr.Cell  = (*Cell)(nil)
	_ expr.Owner = (*Cell)(nil)
)

// New creates a cell holding v with a freshly allocated tag.
func New(v float64) *Cell {
	return &Cell{tag: NextTag(), value: v}
}

// NewWithTag creates a cell with a caller-chosen tag.
func NewWithTag(tag expr.Tag, v float64) *Cell {
	return &Cell{tag: tag, value: v}
}

// Tag returns the cell's stable tag.
func (c *Cell) Tag() expr.Tag { return c.tag }

// Get returns the current value.
func (c *Cell) Get() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set replaces the current value.
func (c *Cell) Set(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
}

// AddDependent registers d. Registering the same dependent twice keeps
// two entries.
func (c *Cell) AddDependent(d expr.Dependent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dependents = append(c.dependents, d)
}

// RemoveDependent removes one registration of d, if any.
func (c *Cell) RemoveDependent(d expr.Dependent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.dependents {
		if existing == d {
			c.dependents = append(c.dependents[:i], c.dependents[i+1:]...)
			return
		}
	}
}

// Dependents returns a snapshot of the registered dependents.
func (c *Cell) Dependents() []expr.Dependent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]expr.Dependent, len(c.dependents))
	copy(out, c.dependents)
	return out
}
