//go:build !linux

package affinity

import "runtime"

func pin(int) error {
	return ErrUnsupported
}

func cpus() ([]int, error) {
	out := make([]int, runtime.NumCPU())
	for i := range out {
		out[i] = i
	}
	return out, nil
}
