package animexpr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the expression lifecycle.
var (
	// ErrAlreadyAttached indicates Attach on an attached expression.
	ErrAlreadyAttached = errors.New("expression already attached")

	// ErrNotAttached indicates Detach on an expression that is not attached.
	ErrNotAttached = errors.New("expression not attached")
)

// ExpressionError wraps an error with the expression it concerns.
type ExpressionError struct {
	// ID is the expression's ID.
	ID string
	// Op is the operation that failed ("attach", "detach", "compile", "convert").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ExpressionError) Error() string {
	return fmt.Sprintf("expression %s: %s: %v", e.ID, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExpressionError) Unwrap() error {
	return e.Err
}
