package job

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// StatsCollector receives metrics from a Job. Implementations may keep them
// in memory or forward them to a monitoring system. If no StatsCollector is
// set, a NoOpStatsCollector is used.
type StatsCollector interface {
	// RecordRunStart is called when a run has planned its workers, before any
	// worker starts.
	RecordRunStart(workers, elements int)

	// RecordRunComplete is called when every worker of a run finished
	// without error.
	RecordRunComplete(duration time.Duration)

	// RecordRunCancelled is called when a run was stopped by Cancel or by its
	// context.
	RecordRunCancelled(duration time.Duration)

	// RecordRunFailed is called when a run ended with a worker failure.
	RecordRunFailed(duration time.Duration)

	// RecordWorkerComplete is called when a worker returns, with the number of
	// elements it completed and how long it ran.
	RecordWorkerComplete(elements int, duration time.Duration)

	// RecordElementProcessed is called for each element that was processed
	// individually, outside of RecordWorkerComplete.
	RecordElementProcessed()

	// RecordElementError is called when the element function fails.
	RecordElementError()

	// GetStats returns a snapshot of the current statistics.
	GetStats() Stats
}

// Stats holds aggregated statistics about job runs.
type Stats struct {
	// RunsStarted is the number of runs started, including empty ones.
	RunsStarted uint64

	// RunsCompleted is the number of runs that finished without error.
	RunsCompleted uint64

	// RunsCancelled is the number of runs stopped by cancellation.
	RunsCancelled uint64

	// RunsFailed is the number of runs that ended with a worker failure.
	RunsFailed uint64

	// WorkersSpawned is the total number of workers started.
	WorkersSpawned uint64

	// WorkersCompleted is the total number of workers that returned.
	WorkersCompleted uint64

	// ElementsProcessed is the total number of elements completed.
	ElementsProcessed uint64

	// ElementErrors is the total number of failed elements.
	ElementErrors uint64

	// TotalRunTime is the cumulative duration of all finished runs.
	TotalRunTime time.Duration

	// MinRunTime is the shortest finished run.
	MinRunTime time.Duration

	// MaxRunTime is the longest finished run.
	MaxRunTime time.Duration

	// TotalWorkerTime is the cumulative running time of all workers.
	TotalWorkerTime time.Duration

	// MinWorkers is the smallest number of workers used by a run.
	MinWorkers int

	// MaxWorkers is the largest number of workers used by a run.
	MaxWorkers int

	// StartTime is when statistics collection began.
	StartTime time.Time

	// LastUpdateTime is when statistics were last updated.
	LastUpdateTime time.Time
}

// RunsFinished returns the number of runs that reached a terminal state.
func (s *Stats) RunsFinished() uint64 {
	return s.RunsCompleted + s.RunsCancelled + s.RunsFailed
}

// AverageRunTime returns the mean duration of finished runs, or 0.
func (s *Stats) AverageRunTime() time.Duration {
	finished := s.RunsFinished()
	if finished == 0 {
		return 0
	}
	return s.TotalRunTime / time.Duration(finished)
}

// AverageWorkers returns the mean number of workers per started run, or 0.
func (s *Stats) AverageWorkers() float64 {
	if s.RunsStarted == 0 {
		return 0
	}
	return float64(s.WorkersSpawned) / float64(s.RunsStarted)
}

// ErrorRate returns the percentage of elements that failed, or 0.
func (s *Stats) ErrorRate() float64 {
	total := s.ElementsProcessed + s.ElementErrors
	if total == 0 {
		return 0
	}
	return float64(s.ElementErrors) / float64(total) * 100
}

// Duration returns the time between the start of collection and the last
// update.
func (s *Stats) Duration() time.Duration {
	return s.LastUpdateTime.Sub(s.StartTime)
}

// NoOpStatsCollector discards all metrics. It is the default StatsCollector.
type NoOpStatsCollector struct{}

// RecordRunStart implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordRunStart(workers, elements int) {}

// RecordRunComplete implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordRunComplete(duration time.Duration) {}

// RecordRunCancelled implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordRunCancelled(duration time.Duration) {}

// RecordRunFailed implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordRunFailed(duration time.Duration) {}

// RecordWorkerComplete implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordWorkerComplete(elements int, duration time.Duration) {}

// RecordElementProcessed implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordElementProcessed() {}

// RecordElementError implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordElementError() {}

// GetStats implements the StatsCollector interface.
func (n *NoOpStatsCollector) GetStats() Stats {
	return Stats{}
}

// BasicStatsCollector is an in-memory StatsCollector. It is safe for
// concurrent use by the workers of a run.
type BasicStatsCollector struct {
	mu    sync.RWMutex
	stats Stats

	// Per-element counters are updated without the mutex.
	elementsProcessed atomic.Uint64
	elementErrors     atomic.Uint64
}

// NewBasicStatsCollector creates a new BasicStatsCollector.
func NewBasicStatsCollector() *BasicStatsCollector {
	now := time.Now()
	return &BasicStatsCollector{
		stats: Stats{
			StartTime:      now,
			LastUpdateTime: now,
			MinRunTime:     time.Duration(math.MaxInt64),
		},
	}
}

// RecordRunStart implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordRunStart(workers, elements int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stats.RunsStarted++
	b.stats.WorkersSpawned += uint64(workers)
	b.stats.LastUpdateTime = time.Now()

	if workers < b.stats.MinWorkers || b.stats.RunsStarted == 1 {
		b.stats.MinWorkers = workers
	}
	if workers > b.stats.MaxWorkers {
		b.stats.MaxWorkers = workers
	}
}

// RecordRunComplete implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordRunComplete(duration time.Duration) {
	b.recordRunEnd(&b.stats.RunsCompleted, duration)
}

// RecordRunCancelled implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordRunCancelled(duration time.Duration) {
	b.recordRunEnd(&b.stats.RunsCancelled, duration)
}

// RecordRunFailed implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordRunFailed(duration time.Duration) {
	b.recordRunEnd(&b.stats.RunsFailed, duration)
}

func (b *BasicStatsCollector) recordRunEnd(counter *uint64, duration time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	*counter++
	b.stats.LastUpdateTime = time.Now()
	b.stats.TotalRunTime += duration

	if duration < b.stats.MinRunTime {
		b.stats.MinRunTime = duration
	}
	if duration > b.stats.MaxRunTime {
		b.stats.MaxRunTime = duration
	}
}

// RecordWorkerComplete implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordWorkerComplete(elements int, duration time.Duration) {
	b.elementsProcessed.Add(uint64(elements))

	b.mu.Lock()
	defer b.mu.Unlock()

	b.stats.WorkersCompleted++
	b.stats.TotalWorkerTime += duration
	b.stats.LastUpdateTime = time.Now()
}

// RecordElementProcessed implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordElementProcessed() {
	b.elementsProcessed.Add(1)
}

// RecordElementError implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordElementError() {
	b.elementErrors.Add(1)
}

// GetStats implements the StatsCollector interface.
func (b *BasicStatsCollector) GetStats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stats := b.stats
	stats.ElementsProcessed = b.elementsProcessed.Load()
	stats.ElementErrors = b.elementErrors.Load()

	if stats.RunsFinished() == 0 {
		stats.MinRunTime = 0
	}

	return stats
}
