package callback

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/MasterOfBinary/gojob/buffer"
)

func applyAll[T any](t *testing.T, data []T, fn buffer.Func[T]) ([]T, error) {
	t.Helper()
	buf := buffer.New(data)
	_, err := buf.ApplyRange(context.Background(), fn, 0, buf.Len())
	return data, err
}

func TestTransform(t *testing.T) {
	t.Run("replaces values", func(t *testing.T) {
		fn := Transform(func(i int, v int) (int, error) {
			return v*10 + i, nil
		})

		got, err := applyAll(t, []int{1, 2, 3}, fn)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := []int{10, 21, 32}; !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("keeps old value on error", func(t *testing.T) {
		fn := Transform(func(_ int, v string) (string, error) {
			if _, err := strconv.Atoi(v); err != nil {
				return "", errors.New("not a number: " + v)
			}
			return v + "!", nil
		})

		data := []string{"1", "x", "3"}
		got, err := applyAll(t, data, fn)

		var elemErr *buffer.ElementError
		if !errors.As(err, &elemErr) {
			t.Fatalf("expected *buffer.ElementError, got %v", err)
		}
		if elemErr.Index != 1 {
			t.Errorf("expected failure at index 1, got %d", elemErr.Index)
		}
		if want := []string{"1!", "x", "3"}; !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("nil func", func(t *testing.T) {
		got, err := applyAll(t, []int{1, 2}, Transform[int](nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := []int{1, 2}; !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})
}

func TestMap(t *testing.T) {
	got, err := applyAll(t, []float64{1, 2, 3}, Map(func(v float64) float64 { return v * v }))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []float64{1, 4, 9}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got, _ = applyAll(t, []float64{5}, Map[float64](nil))
	if got[0] != 5 {
		t.Errorf("nil map changed value to %v", got[0])
	}
}

func TestChain(t *testing.T) {
	addOne := Map(func(v int) int { return v + 1 })
	double := Map(func(v int) int { return v * 2 })
	errBoom := errors.New("boom")

	tests := []struct {
		name    string
		fns     []buffer.Func[int]
		want    []int
		wantErr error
	}{
		{
			name: "empty",
			want: []int{1, 2, 3},
		},
		{
			name: "order matters",
			fns:  []buffer.Func[int]{addOne, double},
			want: []int{4, 6, 8},
		},
		{
			name: "reverse order",
			fns:  []buffer.Func[int]{double, addOne},
			want: []int{3, 5, 7},
		},
		{
			name: "nil entries skipped",
			fns:  []buffer.Func[int]{nil, addOne, nil},
			want: []int{2, 3, 4},
		},
		{
			name:    "stops at first error",
			fns:     []buffer.Func[int]{addOne, Fail[int](errBoom, 1), double},
			want:    []int{2, 2, 3},
			wantErr: errBoom,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := applyAll(t, []int{1, 2, 3}, Chain(test.fns...))
			if !errors.Is(err, test.wantErr) {
				t.Errorf("expected error %v, got %v", test.wantErr, err)
			}
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("got %v, want %v", got, test.want)
			}
		})
	}
}

func TestWhen(t *testing.T) {
	even := func(_ int, v int) bool { return v%2 == 0 }
	negate := Map(func(v int) int { return -v })

	got, err := applyAll(t, []int{1, 2, 3, 4}, When(even, negate))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int{1, -2, 3, -4}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	t.Run("nil predicate matches all", func(t *testing.T) {
		got, _ := applyAll(t, []int{1, 2}, When(nil, negate))
		if want := []int{-1, -2}; !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("by index", func(t *testing.T) {
		tail := func(i int, _ int) bool { return i >= 2 }
		got, _ := applyAll(t, []int{1, 2, 3, 4}, When(tail, negate))
		if want := []int{1, 2, -3, -4}; !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})
}
