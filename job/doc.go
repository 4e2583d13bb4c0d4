// Package job runs a per-element function over a buffer in parallel.
//
// The main type is Job, created with New or NewWithOptions from a
// buffer.Buffer and a buffer.Func. A run splits the buffer's index space into
// one contiguous range per worker (see package plan), starts one worker per
// range, and lets each worker apply the function to every element of its
// range. Because the ranges never overlap, workers write to the shared
// storage without locks and the final contents do not depend on scheduling
// order.
//
// There are two ways to start a run:
//
//	// Block until every worker has finished.
//	result, err := j.RunSync(ctx, 4)
//
//	// Return immediately and poll from a frame or event loop.
//	h, err := j.RunAsync(ctx, 4)
//	...
//	if !h.IsRunning() {
//		result, err := h.Result()
//	}
//
// By default each worker locks a dedicated OS thread that exits together with
// the worker, so every run gets a fresh set of threads. Config can switch to
// shared runtime threads or pin each worker thread to a CPU.
//
// If the source buffer is protected, the Job works on a private copy made at
// construction and the source is never modified.
//
// Cancel stops a run cooperatively. Workers check for cancellation between
// elements, so each element is either fully updated or untouched, and the run
// ends with a partial result and an error matching ErrCancelled. Cancelling
// the context passed to RunSync or RunAsync has the same effect.
//
// If the function fails (or panics) on an element, that worker stops and the
// run reports a *WorkerError once all workers have returned. Other workers
// finish their ranges unless ConfigValues.StopOnError is set.
package job
