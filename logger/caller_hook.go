package logger

import (
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// wrapperPackages are skipped when resolving the caller of a log entry.
var wrapperPackages = []string{
	"sirupsen/logrus",
	"futurewire/logger",
	"futurewire/internal/metrics",
}

// callerHook adjusts the caller reported by logrus so it points to the
// first call site outside of the logging and metric wrappers.
type callerHook struct{}

// Levels returns all log levels for this hook.
func (h *callerHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire sets the entry's Caller to the first frame outside of logrus
// and this package.
func (h *callerHook) Fire(entry *logrus.Entry) error {
	pcs := make([]uintptr, 16)
	// Skip runtime.Callers, this method, logrus internals and our wrappers.
	n := runtime.Callers(6, pcs)
	if n == 0 {
		return nil
	}
	if frame, ok := firstCaller(runtime.CallersFrames(pcs[:n]).Next); ok {
		entry.Caller = &frame
	}
	return nil
}

// firstCaller returns the first frame from next that is not a wrapper. The
// final frame counts too.
func firstCaller(next func() (runtime.Frame, bool)) (runtime.Frame, bool) {
	for {
		frame, more := next()
		if frame.Function != "" && !isWrapperFrame(frame.Function) {
			return frame, true
		}
		if !more {
			return runtime.Frame{}, false
		}
	}
}

func isWrapperFrame(fn string) bool {
	for _, pkg := range wrapperPackages {
		if strings.Contains(fn, pkg) {
			return true
		}
	}
	return false
}
