package callback

import (
	"github.com/MasterOfBinary/gojob/buffer"
	"github.com/MasterOfBinary/gojob/job"
)

// WithLogging wraps fn so that every failing element is logged at Debug level
// under name. If logger is nil, fn is returned unchanged.
//
// Example:
//
//	logger := job.NewSimpleLogger(job.LogLevelDebug)
//	fn := callback.WithLogging(parseRecord, logger, "parse")
func WithLogging[T any](fn buffer.Func[T], logger job.Logger, name string) buffer.Func[T] {
	if fn == nil || logger == nil {
		return fn
	}
	if name == "" {
		name = "callback"
	}

	return func(index int, elem *T) error {
		err := fn(index, elem)
		if err != nil {
			logger.Debug("%s: element %d failed: %v", name, index, err)
		}
		return err
	}
}
