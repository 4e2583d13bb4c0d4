package job

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MasterOfBinary/gojob/affinity"
	"github.com/MasterOfBinary/gojob/buffer"
	"github.com/MasterOfBinary/gojob/plan"
)

// Job applies one element function to every element of one buffer using a
// number of parallel workers chosen per run.
//
// To create a Job, call New or NewWithOptions. A Job can be run any number of
// times, but only one run may be active at once; starting another returns
// ErrAlreadyRunning. Consecutive runs operate on the same buffer, so a second
// run sees the results of the first.
type Job[T any] struct {
	buf    *buffer.Buffer[T]
	fn     buffer.Func[T]
	config Config
	logger Logger
	stats  StatsCollector

	mu      sync.Mutex
	current *run[T]
}

// run is the state of one invocation. result and err are written before done
// is closed and never change afterwards.
type run[T any] struct {
	id      string
	plan    plan.Plan
	cancel  context.CancelFunc
	started time.Time
	log     Logger

	done   chan struct{}
	result []T
	err    error
}

// New creates a Job that applies fn to the elements of src. If src is
// protected, the Job makes a private copy now and never touches src.
//
// A nil src or fn is reported as ErrNilBuffer or ErrNilCallback by the first
// run.
func New[T any](src *buffer.Buffer[T], fn buffer.Func[T]) *Job[T] {
	buf := src
	if src != nil && src.Protected() {
		buf = buffer.CopyOf(src)
	}

	return &Job[T]{
		buf:    buf,
		fn:     fn,
		config: NewConstantConfig(nil),
		logger: &NoOpLogger{},
		stats:  &NoOpStatsCollector{},
	}
}

// WithLogger sets the Logger that receives progress messages. If logger is
// nil, logging is disabled.
//
// Panics if called while a run is in progress.
func (j *Job[T]) WithLogger(logger Logger) *Job[T] {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.current != nil {
		panic("job: WithLogger cannot be called while a run is in progress")
	}

	if logger == nil {
		logger = &NoOpLogger{}
	}
	j.logger = logger
	return j
}

// WithStats sets the StatsCollector that receives run metrics. If stats is
// nil, no metrics are collected.
//
// Panics if called while a run is in progress.
func (j *Job[T]) WithStats(stats StatsCollector) *Job[T] {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.current != nil {
		panic("job: WithStats cannot be called while a run is in progress")
	}

	if stats == nil {
		stats = &NoOpStatsCollector{}
	}
	j.stats = stats
	return j
}

// WithConfig sets the Config read at the start of every run. If config is
// nil, the zero ConfigValues apply.
//
// Panics if called while a run is in progress.
func (j *Job[T]) WithConfig(config Config) *Job[T] {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.current != nil {
		panic("job: WithConfig cannot be called while a run is in progress")
	}

	if config == nil {
		config = NewConstantConfig(nil)
	}
	j.config = config
	return j
}

// Len returns the number of elements the Job operates on.
func (j *Job[T]) Len() int {
	if j.buf == nil {
		return 0
	}
	return j.buf.Len()
}

// Running reports whether a run is in progress.
func (j *Job[T]) Running() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.current != nil
}

// RunSync runs the Job with the requested number of workers and blocks until
// every worker has returned.
//
// The worker count is clamped to [1, n] for n elements, after applying
// ConfigValues.MaxWorkers. With no elements, no worker is started and RunSync
// returns immediately.
//
// The returned slice is a copy of the buffer after the run. It is returned
// even when err is non-nil: after a cancellation it holds the partial result,
// and after a worker failure it holds everything the workers completed.
func (j *Job[T]) RunSync(ctx context.Context, workers int) ([]T, error) {
	r, err := j.start(ctx, workers)
	if err != nil {
		return nil, err
	}

	<-r.done
	return r.result, r.err
}

// RunAsync starts the Job like RunSync but returns as soon as the workers are
// started. The Handle reports when the run is done and then yields its result.
//
// The run stops early if ctx is cancelled.
func (j *Job[T]) RunAsync(ctx context.Context, workers int) (*Handle[T], error) {
	r, err := j.start(ctx, workers)
	if err != nil {
		return nil, err
	}
	return &Handle[T]{r: r}, nil
}

// Cancel asks every worker of the current run to stop. Workers check between
// elements, so no element is left half-updated. The run then finishes with an
// error matching ErrCancelled. Cancel does not wait for the workers; use the
// Handle or the return of RunSync for that.
//
// Cancel does nothing if no run is in progress.
func (j *Job[T]) Cancel() {
	j.mu.Lock()
	r := j.current
	j.mu.Unlock()

	if r == nil {
		return
	}

	r.log.Warn("cancel requested")
	r.cancel()
}

// start plans a run, registers it as the current run and launches its
// workers. It returns once every worker has been started.
func (j *Job[T]) start(ctx context.Context, workers int) (*run[T], error) {
	if ctx == nil {
		ctx = context.Background()
	}

	r, runCtx, views, cfg, err := j.prepare(ctx, workers)
	if err != nil {
		return nil, err
	}

	if len(views) == 0 {
		r.log.Debug("no elements, nothing to start")
		j.finish(r, nil)
		return r, nil
	}

	j.spawn(runCtx, r, views, cfg)
	return r, nil
}

// prepare does everything that must happen under the start guard. The
// returned context is cancelled by Cancel and when the run finishes.
func (j *Job[T]) prepare(ctx context.Context, workers int) (*run[T], context.Context, []*buffer.View[T], ConfigValues, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.current != nil {
		return nil, nil, nil, ConfigValues{}, ErrAlreadyRunning
	}
	if j.buf == nil {
		return nil, nil, nil, ConfigValues{}, ErrNilBuffer
	}
	if j.fn == nil {
		return nil, nil, nil, ConfigValues{}, ErrNilCallback
	}

	cfg := j.config.Get()
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, ConfigValues{}, err
	}

	if cfg.MaxWorkers > 0 && workers > cfg.MaxWorkers {
		workers = cfg.MaxWorkers
	}
	p := plan.New(j.buf.Len(), workers)

	views, err := j.buf.Split(p)
	if err != nil {
		// plan.New always yields a partition; reaching this is a bug.
		return nil, nil, nil, ConfigValues{}, fmt.Errorf("job: invalid plan %v: %w", p, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	id := uuid.NewString()
	r := &run[T]{
		id:      id,
		plan:    p,
		cancel:  cancel,
		started: time.Now(),
		log:     runLogger{Logger: j.logger, id: id},
		done:    make(chan struct{}),
	}

	j.stats.RecordRunStart(len(p), j.buf.Len())
	if len(views) > 0 {
		j.current = r
	}

	return r, runCtx, views, cfg, nil
}

// spawn starts one worker per view. Workers 1 through n-1 are started before
// worker 0, which holds the remainder of the plan.
func (j *Job[T]) spawn(ctx context.Context, r *run[T], views []*buffer.View[T], cfg ConfigValues) {
	var g *errgroup.Group
	if cfg.StopOnError {
		g, ctx = errgroup.WithContext(ctx)
	} else {
		g = &errgroup.Group{}
	}

	var cpus []int
	if cfg.PinThreads {
		var err error
		if cpus, err = affinity.CPUs(); err != nil {
			r.log.Warn("cannot list cpus, workers will not be pinned: %v", err)
		}
	}

	r.log.Info("starting %d worker(s) for %d %s", len(views), j.buf.Len(), typeName[T]())

	for w := 1; w < len(views); w++ {
		j.startWorker(ctx, g, r, w, views[w], cfg, cpus)
	}
	j.startWorker(ctx, g, r, 0, views[0], cfg, cpus)

	go func() {
		j.finish(r, g.Wait())
	}()
}

func (j *Job[T]) startWorker(ctx context.Context, g *errgroup.Group, r *run[T], w int, v *buffer.View[T], cfg ConfigValues, cpus []int) {
	r.log.Debug("worker %d computes %v", w, v.Range())

	g.Go(func() (err error) {
		if !cfg.SharedThreads {
			// Never unlocked: the thread is discarded when the worker returns.
			runtime.LockOSThread()

			if len(cpus) > 0 {
				cpu := cpus[w%len(cpus)]
				if pinErr := affinity.Pin(cpu); pinErr != nil {
					r.log.Warn("worker %d: %v", w, pinErr)
				}
			}
		}

		start := time.Now()
		var processed int
		defer func() {
			if p := recover(); p != nil {
				err = &WorkerError{Worker: w, Range: v.Range(), Err: fmt.Errorf("%w: %v", ErrPanic, p)}
			}
			j.stats.RecordWorkerComplete(processed, time.Since(start))
			if err != nil && !errors.Is(err, ErrCancelled) {
				j.stats.RecordElementError()
				r.log.Debug("worker %d failed after %d element(s): %v", w, processed, err)
			}
		}()

		processed, err = v.Apply(ctx, j.fn)
		if err != nil && !errors.Is(err, ErrCancelled) {
			return &WorkerError{Worker: w, Range: v.Range(), Err: err}
		}
		return err
	})
}

// finish records the outcome of r, releases the start guard and marks the run
// done.
func (j *Job[T]) finish(r *run[T], err error) {
	duration := time.Since(r.started)

	switch {
	case err == nil:
		j.stats.RecordRunComplete(duration)
		r.log.Info("complete in %v", duration)
	case errors.Is(err, ErrCancelled):
		j.stats.RecordRunCancelled(duration)
		r.log.Warn("cancelled after %v: %v", duration, err)
	default:
		j.stats.RecordRunFailed(duration)
		r.log.Error("failed after %v: %v", duration, err)
	}

	r.result = j.buf.Snapshot()
	r.err = err
	r.cancel()

	j.mu.Lock()
	if j.current == r {
		j.current = nil
	}
	j.mu.Unlock()

	close(r.done)
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
