package job_test

import (
	"fmt"
	"strings"
	"sync"

	"github.com/MasterOfBinary/gojob/buffer"
	"github.com/MasterOfBinary/gojob/job"
)

func seq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}

func bufferOf(s []int) *buffer.Buffer[int] {
	return buffer.New(s)
}

func double(_ int, v *int) error {
	*v *= 2
	return nil
}

// recordingLogger keeps every formatted message for inspection.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Log(level job.LogLevel, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf("[%s] ", level)+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Debug(format string, args ...any) { l.Log(job.LogLevelDebug, format, args...) }
func (l *recordingLogger) Info(format string, args ...any)  { l.Log(job.LogLevelInfo, format, args...) }
func (l *recordingLogger) Warn(format string, args ...any)  { l.Log(job.LogLevelWarn, format, args...) }
func (l *recordingLogger) Error(format string, args ...any) { l.Log(job.LogLevelError, format, args...) }

func (l *recordingLogger) matching(substr string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []string
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			out = append(out, line)
		}
	}
	return out
}

// gate blocks the element func at a chosen index until released.
type gate struct {
	at      int
	reached chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGate(at int) *gate {
	return &gate{
		at:      at,
		reached: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (g *gate) wrap(fn func(int, *int) error) func(int, *int) error {
	return func(i int, v *int) error {
		if i == g.at {
			g.once.Do(func() { close(g.reached) })
			<-g.release
		}
		return fn(i, v)
	}
}
