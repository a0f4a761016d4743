package expr

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph construction, compilation and conversion.
var (
	// ErrUnresolvedKind indicates a node whose type has no evaluator or
	// converter entry.
	ErrUnresolvedKind = errors.New("unrecognized expression kind")

	// ErrInvalidTarget indicates a set node whose target is not a value
	// reference.
	ErrInvalidTarget = errors.New("set target must be a value reference")

	// ErrUnresolvable indicates a factory argument that is neither a number,
	// a node, nor a value cell.
	ErrUnresolvable = errors.New("argument cannot be resolved to an expression node")

	// ErrNilNode indicates a missing child node.
	ErrNilNode = errors.New("nil expression node")

	// ErrMalformedTree indicates a wire tree that is missing a field or holds
	// a field of the wrong shape.
	ErrMalformedTree = errors.New("malformed expression tree")
)

// KindError reports which node type caused a compile, convert or decode
// failure.
type KindError struct {
	// Type is the wire name of the offending node, or a description of the
	// raw kind when it has no wire name.
	Type string
	// Err is the underlying sentinel.
	Err error
}

// Error implements the error interface.
func (e *KindError) Error() string {
	return fmt.Sprintf("node type %s: %v", e.Type, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *KindError) Unwrap() error {
	return e.Err
}

func unresolvedKind(k Kind) error {
	name := k.String()
	if !k.Valid() {
		name = fmt.Sprintf("kind(%d)", uint8(k))
	}
	return &KindError{Type: name, Err: ErrUnresolvedKind}
}

// FieldError reports a malformed field in a wire tree.
type FieldError struct {
	Type  string
	Field string
	Err   error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("node type %s: field %q: %v", e.Type, e.Field, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *FieldError) Unwrap() error {
	return e.Err
}
