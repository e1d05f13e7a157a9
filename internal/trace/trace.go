// Package trace implements the diagnostic channel for a single lbrk run.
//
// Every message is prefixed with a short run ID so traces from several
// invocations sharing one terminal or log file can be told apart.
package trace

import (
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"lbrk/internal/styles"
)

// Tracer writes debug and diagnostic messages.
// A nil *Tracer is valid and discards everything.
type Tracer struct {
	runID  string
	debug  bool
	logger *log.Logger
	styles styles.Styles
}

// New creates a tracer writing to w. Debug messages are only written when
// debug is set; errors are always written.
func New(w io.Writer, debug bool) *Tracer {
	id := uuid.New().String()
	st := styles.New(w)
	prefix := st.Trace.Render(fmt.Sprintf("lbrk[%s] ", id[:8]))

	return &Tracer{
		runID:  id,
		debug:  debug,
		logger: log.New(w, prefix, 0),
		styles: st,
	}
}

// Discard returns a tracer that writes nothing.
func Discard() *Tracer {
	return New(io.Discard, false)
}

// RunID returns the full ID of this run.
func (t *Tracer) RunID() string {
	if t == nil {
		return ""
	}
	return t.runID
}

// Enabled reports whether debug messages are written.
func (t *Tracer) Enabled() bool {
	return t != nil && t.debug
}

// Debugf writes a debug message when tracing is enabled.
func (t *Tracer) Debugf(format string, args ...any) {
	if !t.Enabled() {
		return
	}
	t.logger.Printf(format, args...)
}

// Errorf writes a diagnostic error regardless of the debug setting.
func (t *Tracer) Errorf(format string, args ...any) {
	if t == nil {
		return
	}
	t.logger.Print(t.styles.Error.Render("error: ") + fmt.Sprintf(format, args...))
}
