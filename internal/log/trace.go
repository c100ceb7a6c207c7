package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cflee/planck/control"
	"github.com/cflee/planck/keycode"
	"github.com/cflee/planck/layer"
)

// TraceLogger writes one line per processed transition.
type TraceLogger interface {
	Log(res control.Result, active layer.Mask, report []byte)
	// Named returns a logger writing to the same destination that renders
	// keycodes with name.
	Named(name func(keycode.Keycode) string) TraceLogger
}

type traceLogger struct {
	w    io.Writer
	name func(keycode.Keycode) string
	now  func() time.Time
	mu   *sync.Mutex
}

// NewTrace creates a TraceLogger. If w is nil the logger discards
// everything. name renders keycodes and defaults to keycode.Name.
func NewTrace(w io.Writer, name func(keycode.Keycode) string) TraceLogger {
	if name == nil {
		name = keycode.Name
	}
	return &traceLogger{w: w, name: name, now: time.Now, mu: new(sync.Mutex)}
}

func (l *traceLogger) Named(name func(keycode.Keycode) string) TraceLogger {
	if name == nil {
		name = keycode.Name
	}
	return &traceLogger{w: l.w, name: name, now: l.now, mu: l.mu}
}

// Log emits a single timestamped line. report is the host report after the
// transition and is omitted when nil; handled transitions never carry one.
func (l *traceLogger) Log(res control.Result, active layer.Mask, report []byte) {
	if l.w == nil {
		return
	}

	var line bytes.Buffer
	fmt.Fprintf(&line, "%s %-16s %-22s layers=0x%08x",
		l.now().Format("2006/01/02 15:04:05.000"),
		res.Transition,
		l.name(res.Keycode),
		uint32(active))
	if res.Handled {
		line.WriteString(" handled")
	}
	if report != nil {
		line.WriteString(" report: ")
		writeHex(&line, report)
	}
	line.WriteByte('\n')

	l.mu.Lock()
	_, _ = l.w.Write(line.Bytes())
	l.mu.Unlock()
}

func writeHex(buf *bytes.Buffer, data []byte) {
	const hexdigits = "0123456789abcdef"
	for i, b := range data {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteByte(hexdigits[b>>4])
		buf.WriteByte(hexdigits[b&0x0f])
	}
}
