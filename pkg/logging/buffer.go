package logging

import (
	"strings"
	"sync"
)

// captureDepth is how many recent lines each capture buffer retains.
const captureDepth = 50

// LogCaptureWriter is a thread-safe writer that keeps the most recent lines
// written through it, for the UI overlay and /api/log/latest.
type LogCaptureWriter struct {
	mu    sync.RWMutex
	lines []string
}

// GlobalLogCapture is the singleton instance for capturing logs.
var GlobalLogCapture = &LogCaptureWriter{}

// GlobalEventCapture is the singleton instance for capturing nav events.
var GlobalEventCapture = &LogCaptureWriter{}

// Write implements io.Writer.
func (w *LogCaptureWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lines = append(w.lines, strings.TrimRight(string(p), "\n"))
	if len(w.lines) > captureDepth {
		w.lines = w.lines[len(w.lines)-captureDepth:]
	}
	return len(p), nil
}

// GetLastLine returns the most recent captured line.
func (w *LogCaptureWriter) GetLastLine() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if len(w.lines) == 0 {
		return ""
	}
	return w.lines[len(w.lines)-1]
}

// GetLines returns a copy of the captured lines, oldest first.
func (w *LogCaptureWriter) GetLines() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, len(w.lines))
	copy(out, w.lines)
	return out
}
