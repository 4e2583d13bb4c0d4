//go:build linux

package affinity

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// maxCPUs matches CPU_SETSIZE.
const maxCPUs = 1024

func pin(cpu int) error {
	if cpu >= maxCPUs {
		return fmt.Errorf("affinity: cpu %d exceeds %d", cpu, maxCPUs)
	}

	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)

	// pid 0 targets the calling thread.
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: sched_setaffinity cpu %d: %w", cpu, err)
	}
	return nil
}

func cpus() ([]int, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return nil, fmt.Errorf("affinity: sched_getaffinity: %w", err)
	}

	count := set.Count()
	out := make([]int, 0, count)
	for cpu := 0; cpu < maxCPUs && len(out) < count; cpu++ {
		if set.IsSet(cpu) {
			out = append(out, cpu)
		}
	}
	return out, nil
}
