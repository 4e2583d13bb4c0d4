// Package affinity binds OS threads to CPUs.
//
// The calls act on the calling OS thread, so the goroutine must be locked to
// its thread with runtime.LockOSThread before calling Pin. Platform code lives
// in files guarded by build tags; on platforms without support Pin returns
// ErrUnsupported.
package affinity

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned by Pin on platforms without thread affinity.
var ErrUnsupported = errors.New("affinity: not supported on this platform")

// Pin binds the calling OS thread to the given logical CPU.
func Pin(cpu int) error {
	if cpu < 0 {
		return fmt.Errorf("affinity: invalid cpu %d", cpu)
	}
	return pin(cpu)
}

// CPUs returns the logical CPUs the process is allowed to run on, in
// increasing order.
func CPUs() ([]int, error) {
	return cpus()
}
