package job

import "github.com/MasterOfBinary/gojob/buffer"

// Options groups the optional collaborators of a Job.
type Options struct {
	// Config supplies per-run settings. If nil, the zero ConfigValues apply.
	Config Config

	// Logger receives progress messages. If nil, nothing is logged.
	Logger Logger

	// Stats receives run metrics. If nil, nothing is collected.
	Stats StatsCollector
}

// WithDefaults returns Options with default values where not specified.
func (o *Options) WithDefaults() *Options {
	if o == nil {
		o = &Options{}
	}

	if o.Config == nil {
		o.Config = NewConstantConfig(nil)
	}
	if o.Logger == nil {
		o.Logger = &NoOpLogger{}
	}
	if o.Stats == nil {
		o.Stats = &NoOpStatsCollector{}
	}

	return o
}

// NewWithOptions creates a Job over src that applies fn, configured by opts.
//
// Example:
//
//	opts := &job.Options{
//		Config: job.NewConstantConfig(&job.ConfigValues{
//			MaxWorkers:  8,
//			StopOnError: true,
//		}),
//		Logger: job.NewSimpleLogger(job.LogLevelInfo),
//	}
//	j := job.NewWithOptions(buffer.New(vertices), project, opts)
func NewWithOptions[T any](src *buffer.Buffer[T], fn buffer.Func[T], opts *Options) *Job[T] {
	opts = opts.WithDefaults()

	j := New(src, fn)
	j.config = opts.Config
	j.logger = opts.Logger
	j.stats = opts.Stats
	return j
}
