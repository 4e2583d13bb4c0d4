package callback

import (
	"github.com/MasterOfBinary/gojob/buffer"
	"github.com/MasterOfBinary/gojob/job"
)

// WithStats wraps fn so that every element is recorded in stats as processed
// or failed. If stats is nil, fn is returned unchanged.
//
// A Job already records element totals in its own collector; pass a
// separate collector here to measure one function on its own.
//
// Example:
//
//	perFunc := job.NewBasicStatsCollector()
//	fn := callback.WithStats(project, perFunc)
func WithStats[T any](fn buffer.Func[T], stats job.StatsCollector) buffer.Func[T] {
	if fn == nil || stats == nil {
		return fn
	}

	return func(index int, elem *T) error {
		err := fn(index, elem)
		if err != nil {
			stats.RecordElementError()
		} else {
			stats.RecordElementProcessed()
		}
		return err
	}
}
