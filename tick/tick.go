// Package tick polls many running jobs from a host loop.
//
// A host that owns a frame or event loop calls Loop.Tick once per iteration;
// jobs that have finished since the previous tick get their completion
// callback run on the host's goroutine. Hosts without a loop of their own can
// use Loop.Run.
package tick

import (
	"context"
	"sync"
	"time"

	"github.com/eapache/queue"
)

// Poller reports whether some work is still in progress. *job.Handle
// satisfies it.
type Poller interface {
	IsRunning() bool
}

type entry struct {
	p      Poller
	onDone func()
}

// Loop holds pending pollers in the order they were added.
//
// Add may be called from any goroutine, including from an onDone callback.
// Tick and Run must not be called concurrently with each other.
type Loop struct {
	mu      sync.Mutex
	pending *queue.Queue
}

// NewLoop returns an empty Loop.
func NewLoop() *Loop {
	return &Loop{pending: queue.New()}
}

// Add queues p. onDone, if not nil, runs on the first Tick that sees p
// finished.
func (l *Loop) Add(p Poller, onDone func()) {
	if p == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending.Add(entry{p: p, onDone: onDone})
}

// Len returns the number of pollers still pending.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending.Length()
}

// Tick polls every pending entry once. Finished entries are removed and
// their callbacks run in the order the entries were added; the rest stay
// queued. It returns the number of entries that finished.
func (l *Loop) Tick() int {
	var done []entry

	l.mu.Lock()
	for n := l.pending.Length(); n > 0; n-- {
		e := l.pending.Remove().(entry)
		if e.p.IsRunning() {
			l.pending.Add(e)
			continue
		}
		done = append(done, e)
	}
	l.mu.Unlock()

	// Outside the lock so callbacks can Add.
	for _, e := range done {
		if e.onDone != nil {
			e.onDone()
		}
	}
	return len(done)
}

// Run calls Tick every interval until nothing is pending or ctx is done. It
// returns ctx.Err() in the latter case.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		l.Tick()
		if l.Len() == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
