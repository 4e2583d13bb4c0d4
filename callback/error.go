package callback

import "github.com/MasterOfBinary/gojob/buffer"

// Fail returns a Func that returns err for every index divisible by every,
// and does nothing otherwise. An every of 1 or less fails every index.
func Fail[T any](err error, every int) buffer.Func[T] {
	if every < 1 {
		every = 1
	}
	return func(index int, _ *T) error {
		if index%every == 0 {
			return err
		}
		return nil
	}
}

// Nil returns a Func that leaves every element unchanged.
func Nil[T any]() buffer.Func[T] {
	return func(int, *T) error {
		return nil
	}
}
