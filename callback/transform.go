package callback

import "github.com/MasterOfBinary/gojob/buffer"

// TransformFunc computes a new value for the element at index.
type TransformFunc[T any] func(index int, value T) (T, error)

// Transform returns a Func that replaces each element with fn's result. If fn
// fails the element keeps its old value. A nil fn leaves elements unchanged.
func Transform[T any](fn TransformFunc[T]) buffer.Func[T] {
	return func(index int, elem *T) error {
		if fn == nil {
			return nil
		}

		v, err := fn(index, *elem)
		if err != nil {
			return err
		}
		*elem = v
		return nil
	}
}

// Map returns a Func that replaces each element with fn applied to it.
func Map[T any](fn func(T) T) buffer.Func[T] {
	return func(_ int, elem *T) error {
		if fn != nil {
			*elem = fn(*elem)
		}
		return nil
	}
}

// Chain returns a Func that applies fns in order and stops at the first
// error. Nil entries are skipped.
func Chain[T any](fns ...buffer.Func[T]) buffer.Func[T] {
	chain := make([]buffer.Func[T], 0, len(fns))
	for _, fn := range fns {
		if fn != nil {
			chain = append(chain, fn)
		}
	}

	return func(index int, elem *T) error {
		for _, fn := range chain {
			if err := fn(index, elem); err != nil {
				return err
			}
		}
		return nil
	}
}

// Predicate reports whether the element at index should be processed.
type Predicate[T any] func(index int, value T) bool

// When returns a Func that applies fn only to elements for which pred holds.
// A nil pred matches every element.
func When[T any](pred Predicate[T], fn buffer.Func[T]) buffer.Func[T] {
	return func(index int, elem *T) error {
		if fn == nil {
			return nil
		}
		if pred != nil && !pred(index, *elem) {
			return nil
		}
		return fn(index, elem)
	}
}
