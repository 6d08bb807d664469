package grid

import (
	"errors"
	"fmt"
)

// ErrEmptySpec is returned by Expand when the spec contains no axes.
var ErrEmptySpec = errors.New("parameter spec contains no axes")

// ArityMismatchError reports a paired-axis value whose arity does not match
// the number of names on its axis.
type ArityMismatchError struct {
	Axis  string
	Index int
	Want  int
	Got   int
}

// Error implements the error interface for ArityMismatchError.
func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("axis %q: value %d has arity %d, want %d", e.Axis, e.Index, e.Got, e.Want)
}

// DuplicateKeyError reports two axes flattening to the same parameter name.
type DuplicateKeyError struct {
	Key string
}

// Error implements the error interface for DuplicateKeyError.
func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("parameter name %q is defined by more than one axis", e.Key)
}
