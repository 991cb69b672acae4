package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var (
	handlerMu sync.RWMutex
	handler   ErrorHandler = &LogHandler{}

	captureStacks atomic.Bool
)

// SetHandler replaces the process-wide error handler. Nil restores a quiet
// LogHandler writing to slog.Default().
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	handler = h
	handlerMu.Unlock()
}

// Handler returns the current error handler.
func Handler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return handler
}

// SetCaptureStacks makes Report record the reporting call stack on errors
// that carry none. It is off by default.
func SetCaptureStacks(on bool) {
	captureStacks.Store(on)
}

// Report stamps err and passes it to the handler.
func Report(err *LayoutError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if err.StackTrace == "" && captureStacks.Load() {
		err.StackTrace = callers(3)
	}
	Handler().HandleError(err)
}

// ReportPanic stamps err and passes it to the handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandlePanic(err)
}

// Recover reports a panic in the calling function and lets it return
// normally. A *PreconditionError is panicked again: the tree is corrupt and
// must not be used further.
//
//	defer errors.Recover("anchor.watch")
func Recover(op string) {
	r := recover()
	if r == nil {
		return
	}
	if pe, ok := r.(*PreconditionError); ok {
		panic(pe)
	}
	ReportPanic(&PanicError{Op: op, Value: r, StackTrace: callers(4)})
}

// CaptureStack returns the stack of its caller.
func CaptureStack() string {
	return callers(3)
}

// callers formats the stack starting skip frames above runtime.Callers.
func callers(skip int) string {
	pcs := make([]uintptr, 32)
	pcs = pcs[:runtime.Callers(skip, pcs)]
	if len(pcs) == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs)
	for {
		f, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		if !more {
			return sb.String()
		}
	}
}
