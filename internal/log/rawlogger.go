package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger records every raw input event before translation, for
// debugging device mappings offline.
type RawLogger interface {
	Log(event string)
}

// rawLogger implements RawLogger with thread-safe writes.
type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw creates a new RawLogger. If writer is nil, returns a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// Log emits one timestamped line per raw event.
func (r *rawLogger) Log(event string) {
	if r.w == nil {
		return
	}
	line := fmt.Sprintf("%s %s\n", time.Now().Format("2006/01/02 15:04:05.000"), event)
	r.mu.Lock()
	_, _ = r.w.Write([]byte(line))
	r.mu.Unlock()
}
