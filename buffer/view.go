package buffer

import (
	"context"

	"github.com/MasterOfBinary/gojob/plan"
)

// View is a mutable window onto one range of a Buffer, created by Split.
type View[T any] struct {
	r     plan.Range
	elems []T
}

// Range returns the Buffer indices the View covers.
func (v *View[T]) Range() plan.Range {
	return v.r
}

// First returns the first Buffer index of the View.
func (v *View[T]) First() int {
	return v.r.First
}

// Last returns the Buffer index just past the View.
func (v *View[T]) Last() int {
	return v.r.Last
}

// Len returns the number of elements in the View.
func (v *View[T]) Len() int {
	return len(v.elems)
}

// Apply calls fn for every element of the View with the same contract as
// Buffer.ApplyRange. Indices passed to fn are Buffer indices, not offsets
// into the View.
func (v *View[T]) Apply(ctx context.Context, fn Func[T]) (int, error) {
	return apply(ctx, v.elems, v.r.First, fn)
}
