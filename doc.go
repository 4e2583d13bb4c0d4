// Package gojob runs a function over every element of a slice using a fixed
// number of parallel workers.
//
// The work is split into one contiguous index range per worker. Workers
// 1..k-1 each get an equal share counted from the start of the slice, and
// worker 0 takes the remaining tail, so worker 0 may do slightly more work
// than the others. Because ranges never overlap, workers update elements in
// place without locks.
//
// Run and Go cover the common cases:
//
//	// Update data in place and wait.
//	_, err := gojob.Run(ctx, data, 8, fn)
//
//	// Work on a copy of data and poll for the result.
//	h, err := gojob.Go(ctx, data, 8, fn)
//	...
//	if !h.IsRunning() {
//		result, err := h.Result()
//	}
//
// For repeated runs over the same buffer, logging, statistics, or thread
// configuration, use package job directly. Packages buffer and plan hold the
// storage and partitioning types, callback has helpers for building element
// functions, and tick polls many running jobs from a host loop.
package gojob
