package engine

import (
	"errors"
	"fmt"

	"github.com/randalmurphal/animexpr/pkg/animexpr/expr"
)

// Sentinel errors for node table operations.
var (
	// ErrNodeExists indicates CreateValue or CreateNode on a tag already in use.
	ErrNodeExists = errors.New("node already exists")

	// ErrNodeNotFound indicates an operation on a tag not in the table.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNotValueNode indicates SetValue on an expression node.
	ErrNotValueNode = errors.New("node is not a value node")

	// ErrUnknownNodeType indicates a native config whose type is neither
	// "value" nor "expression".
	ErrUnknownNodeType = errors.New("unknown native node type")
)

// NodeError wraps an error with the tag of the node it concerns.
type NodeError struct {
	// Tag is the node's tag.
	Tag expr.Tag
	// Op is the operation that failed ("create", "update", "restore").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	return fmt.Sprintf("node %d: %s: %v", e.Tag, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *NodeError) Unwrap() error {
	return e.Err
}

// StoreError wraps errors from config store operations.
type StoreError struct {
	// Tag is the node whose persistence failed.
	Tag expr.Tag
	// Op is the operation that failed ("save", "delete", "marshal").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s for node %d: %v", e.Op, e.Tag, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *StoreError) Unwrap() error {
	return e.Err
}
