package job

import (
	"context"

	"github.com/MasterOfBinary/gojob/plan"
)

// Handle tracks one run started by Job.RunAsync.
//
// A Handle is either running or done, and once done it stays done. It becomes
// done when every worker of the run has returned, whether it finished its
// range, failed, or was cancelled. All methods are safe to call from any
// goroutine.
type Handle[T any] struct {
	r *run[T]
}

// IsRunning reports whether any worker of the run is still active. It never
// blocks and is cheap enough to call on every frame of a host loop.
func (h *Handle[T]) IsRunning() bool {
	select {
	case <-h.r.done:
		return false
	default:
		return true
	}
}

// Done returns a channel that is closed when the run finishes.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.r.done
}

// Result returns the contents of the buffer at the end of the run together
// with the run's error. It returns ErrIncompleteResult instead of blocking if
// the run is still in progress.
//
// Every call returns the same slice. Callers that modify it should copy it
// first.
func (h *Handle[T]) Result() ([]T, error) {
	if h.IsRunning() {
		return nil, ErrIncompleteResult
	}
	return h.r.result, h.r.err
}

// Wait blocks until the run finishes or ctx is done. If ctx ends first, Wait
// returns ctx's error and the run keeps going.
func (h *Handle[T]) Wait(ctx context.Context) ([]T, error) {
	select {
	case <-h.r.done:
		return h.r.result, h.r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// RunID returns the identifier used to tag the run's log messages.
func (h *Handle[T]) RunID() string {
	return h.r.id
}

// Plan returns the ranges assigned to the run's workers.
func (h *Handle[T]) Plan() plan.Plan {
	return h.r.plan
}
