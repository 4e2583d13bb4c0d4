// Package buffer holds the element storage a job operates on.
//
// A Buffer owns a fixed-length slice of plain values. The only mutation it
// offers is applying a Func to every element of a half-open index range, and
// it takes no locks while doing so: running overlapping ranges concurrently is
// a data race. Split is the safe way to hand ranges to concurrent workers. It
// cuts the storage into capacity-capped views that cannot reach each other's
// elements, and it rejects overlapping ranges outright.
//
// A Buffer may be marked protected. A protected Buffer is shared source data;
// consumers that intend to mutate it must work on CopyOf instead.
package buffer

import (
	"context"
	"fmt"

	"github.com/MasterOfBinary/gojob/plan"
)

// Func is applied to a single element. It receives the element's absolute
// index in the Buffer and a pointer into the backing storage, and may update
// the element in place. A non-nil error stops the range it was called from.
//
// A Func may be called concurrently for different indices of the same Buffer.
// It must not touch other elements, and any state it shares across indices
// needs its own synchronization.
type Func[T any] func(index int, elem *T) error

// Buffer is a fixed-length sequence of values.
type Buffer[T any] struct {
	data      []T
	protected bool
}

// New returns a Buffer that takes ownership of data. The caller must not use
// data afterwards except through the Buffer.
func New[T any](data []T) *Buffer[T] {
	return &Buffer[T]{data: data}
}

// NewProtected returns a Buffer over data that is marked protected. Jobs never
// mutate a protected Buffer; they work on a copy.
func NewProtected[T any](data []T) *Buffer[T] {
	return &Buffer[T]{data: data, protected: true}
}

// CopyOf returns an unprotected Buffer holding a copy of other's elements.
// A nil other yields an empty Buffer.
func CopyOf[T any](other *Buffer[T]) *Buffer[T] {
	if other == nil {
		return New[T](nil)
	}
	data := make([]T, len(other.data))
	copy(data, other.data)
	return New(data)
}

// Protected reports whether the Buffer is shared source data that must not be
// mutated in place.
func (b *Buffer[T]) Protected() bool {
	return b.protected
}

// Len returns the number of elements.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// ApplyRange calls fn for every index in [first, last), in increasing order.
// It returns the number of elements fn completed without error.
//
// ctx is checked before each element. If it is done, ApplyRange stops and
// returns an error matching ErrCancelled; elements already visited keep their
// new values and the rest are left untouched. If fn fails, ApplyRange stops at
// that element and returns an *ElementError.
//
// ApplyRange does no locking. Callers must not run overlapping ranges of the
// same Buffer at the same time.
func (b *Buffer[T]) ApplyRange(ctx context.Context, fn Func[T], first, last int) (int, error) {
	if first < 0 || last > len(b.data) || first > last {
		return 0, fmt.Errorf("%w: [%d, %d) of %d elements", ErrRange, first, last, len(b.data))
	}
	return apply(ctx, b.data[first:last:last], first, fn)
}

// Snapshot returns a copy of the current contents. It must not be called while
// a worker is still applying a Func to the Buffer.
func (b *Buffer[T]) Snapshot() []T {
	out := make([]T, len(b.data))
	copy(out, b.data)
	return out
}

// Split returns one View per range, in the same order. The ranges must lie
// inside the Buffer and must not overlap. Each View can only reach the
// elements of its own range, so the views may be handed to concurrent workers.
func (b *Buffer[T]) Split(ranges []plan.Range) ([]*View[T], error) {
	for _, r := range ranges {
		if r.First < 0 || r.Last > len(b.data) || r.First > r.Last {
			return nil, fmt.Errorf("%w: %v of %d elements", ErrRange, r, len(b.data))
		}
	}
	if err := plan.Plan(ranges).Disjoint(); err != nil {
		return nil, err
	}

	views := make([]*View[T], len(ranges))
	for i, r := range ranges {
		views[i] = &View[T]{
			r:     r,
			elems: b.data[r.First:r.Last:r.Last],
		}
	}
	return views, nil
}

func apply[T any](ctx context.Context, elems []T, offset int, fn Func[T]) (int, error) {
	if fn == nil {
		return 0, ErrNilFunc
	}

	done := ctx.Done()
	for i := range elems {
		select {
		case <-done:
			return i, fmt.Errorf("%w: %w", ErrCancelled, context.Cause(ctx))
		default:
		}

		if err := fn(offset+i, &elems[i]); err != nil {
			return i, &ElementError{Index: offset + i, Err: err}
		}
	}

	return len(elems), nil
}
