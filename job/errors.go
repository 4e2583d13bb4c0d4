package job

import (
	"errors"
	"fmt"

	"github.com/MasterOfBinary/gojob/buffer"
	"github.com/MasterOfBinary/gojob/plan"
)

var (
	// ErrIncompleteResult is returned by Handle.Result while the run is still
	// in progress.
	ErrIncompleteResult = errors.New("job: result of unfinished run")

	// ErrCancelled marks a run that was stopped by Cancel or by its context.
	// The result of such a run is partial: elements that were reached hold
	// their new values and the rest are unchanged.
	ErrCancelled = buffer.ErrCancelled

	// ErrAlreadyRunning is returned when a run is started on a Job whose
	// previous run has not finished.
	ErrAlreadyRunning = errors.New("job: run already in progress")

	// ErrNilBuffer is returned when a Job was created without a buffer.
	ErrNilBuffer = errors.New("job: nil buffer")

	// ErrNilCallback is returned when a Job was created without an element
	// function.
	ErrNilCallback = errors.New("job: nil element func")

	// ErrPanic is wrapped by a WorkerError when the element function panicked.
	ErrPanic = errors.New("job: element func panicked")
)

// WorkerError is returned when a worker's element function failed. Only the
// first failure of a run is reported, after every worker has stopped.
type WorkerError struct {
	// Worker is the index of the failing worker in the run's plan.
	Worker int

	// Range is the index range assigned to the worker.
	Range plan.Range

	// Err is the failure. It is usually a *buffer.ElementError.
	Err error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d %v: %v", e.Worker, e.Range, e.Err)
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}
