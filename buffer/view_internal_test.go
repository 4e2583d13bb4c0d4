package buffer

import (
	"testing"

	"github.com/MasterOfBinary/gojob/plan"
)

func TestSplit_ViewsCannotGrowIntoNeighbours(t *testing.T) {
	b := New([]int{0, 1, 2, 3, 4, 5})
	views, err := b.Split([]plan.Range{{First: 0, Last: 3}, {First: 3, Last: 6}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := views[0]
	if cap(first.elems) != 3 {
		t.Fatalf("view capacity = %d, want 3", cap(first.elems))
	}

	// Appending must reallocate rather than write into the next range.
	grown := append(first.elems, 99)
	grown[0] = -1
	if b.data[3] != 3 {
		t.Errorf("neighbouring element overwritten: %v", b.data)
	}
	if b.data[0] != 0 {
		t.Errorf("append did not reallocate: %v", b.data)
	}
}
