package plan_test

import (
	"errors"
	"testing"

	"github.com/MasterOfBinary/gojob/plan"
)

func TestWorkers(t *testing.T) {
	tests := []struct {
		name string
		n, k int
		want int
	}{
		{"empty index space", 0, 4, 0},
		{"empty with zero request", 0, 0, 0},
		{"zero request clamps to one", 10, 0, 1},
		{"negative request clamps to one", 10, -3, 1},
		{"request within bounds", 10, 3, 3},
		{"request equal to n", 10, 10, 10},
		{"request above n clamps to n", 10, 100, 10},
		{"single index", 1, 8, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plan.Workers(tt.n, tt.k); got != tt.want {
				t.Errorf("Workers(%d, %d) = %d, want %d", tt.n, tt.k, got, tt.want)
			}
		})
	}
}

func TestNew_Partition(t *testing.T) {
	for n := 0; n <= 64; n++ {
		for k := -2; k <= 70; k++ {
			p := plan.New(n, k)

			if got, want := p.Workers(), plan.Workers(n, k); got != want {
				t.Fatalf("New(%d, %d): %d workers, want %d", n, k, got, want)
			}
			if err := p.Validate(n); err != nil {
				t.Fatalf("New(%d, %d) = %v: %v", n, k, p, err)
			}
			if p.Len() != n {
				t.Fatalf("New(%d, %d) covers %d indices, want %d", n, k, p.Len(), n)
			}
		}
	}
}

func TestNew_WorkerZeroTakesRemainder(t *testing.T) {
	for n := 1; n <= 50; n++ {
		for k := 1; k <= n; k++ {
			p := plan.New(n, k)
			batch := n / k

			for w := 1; w < k; w++ {
				want := plan.Range{First: (w - 1) * batch, Last: w * batch}
				if p[w] != want {
					t.Fatalf("New(%d, %d): worker %d got %v, want %v", n, k, w, p[w], want)
				}
			}

			want := plan.Range{First: (k - 1) * batch, Last: n}
			if p[0] != want {
				t.Fatalf("New(%d, %d): worker 0 got %v, want %v", n, k, p[0], want)
			}
			for w := 1; w < k; w++ {
				if p[0].Len() < p[w].Len() {
					t.Fatalf("New(%d, %d): worker 0 smaller than worker %d", n, k, w)
				}
			}
		}
	}
}

func TestNew_Scenarios(t *testing.T) {
	t.Run("ten indices three workers", func(t *testing.T) {
		p := plan.New(10, 3)
		want := plan.Plan{{6, 10}, {0, 3}, {3, 6}}
		if len(p) != len(want) {
			t.Fatalf("got %v, want %v", p, want)
		}
		for i := range want {
			if p[i] != want[i] {
				t.Errorf("worker %d: got %v, want %v", i, p[i], want[i])
			}
		}
	})

	t.Run("more workers than indices", func(t *testing.T) {
		p := plan.New(10, 100)
		if p.Workers() != 10 {
			t.Fatalf("expected 10 workers, got %d", p.Workers())
		}
		for i, r := range p {
			if r.Len() != 1 {
				t.Errorf("worker %d: expected one index, got %v", i, r)
			}
		}
	})

	t.Run("empty index space", func(t *testing.T) {
		for _, k := range []int{-1, 0, 1, 5} {
			if p := plan.New(0, k); len(p) != 0 {
				t.Errorf("New(0, %d) = %v, want empty plan", k, p)
			}
		}
	})
}

func TestPlan_Validate(t *testing.T) {
	tests := []struct {
		name string
		p    plan.Plan
		n    int
		want error
	}{
		{"valid", plan.Plan{{2, 4}, {0, 2}}, 4, nil},
		{"valid with empty range", plan.Plan{{0, 4}, {4, 4}}, 4, nil},
		{"overlap", plan.Plan{{0, 3}, {2, 4}}, 4, plan.ErrOverlap},
		{"overlap past an empty range", plan.Plan{{0, 5}, {3, 3}, {4, 6}}, 6, plan.ErrOverlap},
		{"gap", plan.Plan{{0, 1}, {2, 4}}, 4, plan.ErrCoverage},
		{"short", plan.Plan{{0, 3}}, 4, plan.ErrCoverage},
		{"past end", plan.Plan{{0, 5}}, 4, plan.ErrOutOfBounds},
		{"negative start", plan.Plan{{-1, 4}}, 4, plan.ErrOutOfBounds},
		{"reversed", plan.Plan{{3, 1}}, 4, plan.ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate(tt.n)
			if tt.want == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRange(t *testing.T) {
	r := plan.Range{First: 3, Last: 6}

	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
	if !r.Contains(3) || !r.Contains(5) || r.Contains(6) || r.Contains(2) {
		t.Errorf("Contains gave wrong answers for %v", r)
	}
	if r.String() != "[3, 6)" {
		t.Errorf("String() = %q", r.String())
	}
	if (plan.Range{First: 4, Last: 2}).Len() != 0 {
		t.Error("reversed range should have zero length")
	}
}
