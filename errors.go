package reorder

import (
	"errors"
	"fmt"
)

// ErrInvalidIndex is returned when an index argument falls outside [0, len).
var ErrInvalidIndex = errors.New("invalid index")

// IndexError reports an out-of-range index passed to an operation.
//
// IndexError unwraps to ErrInvalidIndex, so callers can match either the
// sentinel with errors.Is or the concrete type with errors.As.
type IndexError struct {
	// Op is the name of the operation that rejected the index.
	Op string

	// Index is the offending index.
	Index int

	// Len is the length of the slice at the time of the call.
	Len int
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: %v %d for sequence of length %d", e.Op, ErrInvalidIndex, e.Index, e.Len)
}

// Unwrap returns ErrInvalidIndex.
func (e *IndexError) Unwrap() error {
	return ErrInvalidIndex
}

// IsInvalidIndex returns true if err is or wraps ErrInvalidIndex.
func IsInvalidIndex(err error) bool {
	return errors.Is(err, ErrInvalidIndex)
}

// checkIndex returns an *IndexError unless 0 <= i < n.
func checkIndex(op string, i, n int) error {
	if i < 0 || i >= n {
		return &IndexError{Op: op, Index: i, Len: n}
	}
	return nil
}
