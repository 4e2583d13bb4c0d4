package gojob

import (
	"context"

	"github.com/MasterOfBinary/gojob/buffer"
	"github.com/MasterOfBinary/gojob/job"
)

// Run applies fn to every element of data using the given number of workers
// and waits for them to finish. data is updated in place. The returned slice
// is a copy of data taken when the run ended.
//
// The number of workers is clamped to [1, len(data)]. On cancellation or
// failure the partial result is returned along with the error; see package
// job for the error types.
func Run[T any](ctx context.Context, data []T, workers int, fn buffer.Func[T]) ([]T, error) {
	return job.New(buffer.New(data), fn).RunSync(ctx, workers)
}

// Go starts applying fn to a copy of data using the given number of workers
// and returns immediately. data itself is never modified.
//
// Cancelling ctx stops the run cooperatively.
func Go[T any](ctx context.Context, data []T, workers int, fn buffer.Func[T]) (*job.Handle[T], error) {
	return job.New(buffer.NewProtected(data), fn).RunAsync(ctx, workers)
}
