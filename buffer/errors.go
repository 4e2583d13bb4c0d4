package buffer

import (
	"errors"
	"fmt"
)

var (
	// ErrRange is returned when a range does not fit inside the Buffer.
	ErrRange = errors.New("buffer: range out of bounds")

	// ErrCancelled is returned when the context passed to ApplyRange or
	// View.Apply is done before every element was visited.
	ErrCancelled = errors.New("cancelled")

	// ErrNilFunc is returned when ApplyRange or View.Apply is given a nil Func.
	ErrNilFunc = errors.New("buffer: nil element func")
)

// ElementError is returned when a Func fails on an element.
type ElementError struct {
	// Index is the Buffer index of the failing element.
	Index int

	// Err is the error returned by the Func.
	Err error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("element %d: %v", e.Index, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}
