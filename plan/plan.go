// Package plan computes how the index space of a job is split across workers.
//
// A Plan is a deterministic partition of [0, n) into one contiguous range per
// worker. Workers 1 through k-1 each receive exactly n/k indices, assigned in
// increasing order from 0. Worker 0 receives everything that is left, so it
// absorbs the remainder of the integer division and is the largest range
// whenever k does not divide n:
//
//	New(10, 3) // worker 1: [0, 3), worker 2: [3, 6), worker 0: [6, 10)
//
// Requests for fewer than one worker are treated as one, and requests for
// more workers than there are indices are reduced to one worker per index.
// Neither case is an error.
package plan

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrOutOfBounds is returned when a range falls outside [0, n).
	ErrOutOfBounds = errors.New("plan: range out of bounds")

	// ErrOverlap is returned when two ranges share at least one index.
	ErrOverlap = errors.New("plan: ranges overlap")

	// ErrCoverage is returned when the ranges leave part of [0, n) uncovered.
	ErrCoverage = errors.New("plan: ranges do not cover the index space")
)

// Range is the half-open index interval [First, Last).
type Range struct {
	First int
	Last  int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.Last < r.First {
		return 0
	}
	return r.Last - r.First
}

// Contains reports whether i lies inside the range.
func (r Range) Contains(i int) bool {
	return i >= r.First && i < r.Last
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.First, r.Last)
}

// Plan holds one Range per worker, indexed by worker number.
type Plan []Range

// Workers returns the number of workers a plan over n indices will use when
// k workers are requested: k clamped to [1, n], or 0 when n is 0.
func Workers(n, k int) int {
	if n <= 0 {
		return 0
	}
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	return k
}

// New returns the plan for n indices and k requested workers.
func New(n, k int) Plan {
	workers := Workers(n, k)
	if workers == 0 {
		return Plan{}
	}

	batch := n / workers
	p := make(Plan, workers)

	first := 0
	for w := 1; w < workers; w++ {
		p[w] = Range{First: first, Last: first + batch}
		first += batch
	}
	// Worker 0 takes whatever the others left, including the remainder.
	p[0] = Range{First: first, Last: n}

	return p
}

// Workers returns the number of workers in the plan.
func (p Plan) Workers() int {
	return len(p)
}

// Len returns the total number of indices covered by the plan.
func (p Plan) Len() int {
	total := 0
	for _, r := range p {
		total += r.Len()
	}
	return total
}

// Disjoint returns ErrOverlap if any two ranges in the plan share an index,
// or ErrOutOfBounds if a range is reversed or starts below zero.
func (p Plan) Disjoint() error {
	var prev Range
	for _, r := range p.sorted() {
		if r.First < 0 || r.Last < r.First {
			return fmt.Errorf("%w: %v", ErrOutOfBounds, r)
		}
		if r.Len() == 0 {
			continue
		}
		if prev.Len() > 0 && prev.Last > r.First {
			return fmt.Errorf("%w: %v and %v", ErrOverlap, prev, r)
		}
		prev = r
	}
	return nil
}

// Validate checks that the plan is a partition of [0, n): every range lies
// inside [0, n), no two ranges overlap, and together they cover every index.
func (p Plan) Validate(n int) error {
	if err := p.Disjoint(); err != nil {
		return err
	}

	next := 0
	for _, r := range p.sorted() {
		if r.Last > n {
			return fmt.Errorf("%w: %v exceeds %d", ErrOutOfBounds, r, n)
		}
		if r.Len() == 0 {
			continue
		}
		if r.First != next {
			return fmt.Errorf("%w: gap at [%d, %d)", ErrCoverage, next, r.First)
		}
		next = r.Last
	}
	if next != n {
		return fmt.Errorf("%w: gap at [%d, %d)", ErrCoverage, next, n)
	}

	return nil
}

func (p Plan) sorted() Plan {
	sorted := make(Plan, len(p))
	copy(sorted, p)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].First == sorted[j].First {
			return sorted[i].Last < sorted[j].Last
		}
		return sorted[i].First < sorted[j].First
	})
	return sorted
}
