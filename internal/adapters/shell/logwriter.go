package shell

import (
	"bytes"
	"strings"

	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/remold/internal/ui/style"
)

// LogWriter forwards the lines written to it through a logger, each prefixed.
// Lines carrying a warning or error icon are forwarded as warnings, lines with
// the debug icon as debug messages, everything else as info. Indented lines
// continue the previous message and keep its level.
type LogWriter struct {
	logger ports.Logger
	prefix string
	buf    []byte
	last   func(string)
}

// NewLogWriter creates a LogWriter. Call Close to flush a trailing partial line.
func NewLogWriter(logger ports.Logger, prefix string) *LogWriter {
	return &LogWriter{logger: logger, prefix: prefix}
}

func (w *LogWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}

		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

// Close flushes the buffered partial line.
func (w *LogWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *LogWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if strings.TrimSpace(msg) == "" {
		return
	}

	if w.last != nil && (msg[0] == ' ' || msg[0] == '\t') {
		w.last(w.prefix + msg)
		return
	}

	w.last = w.logger.Info
	for _, icon := range []string{style.Cross, style.Warning} {
		if rest, ok := strings.CutPrefix(msg, icon+" "); ok {
			msg = rest
			w.last = w.logger.Warn
			break
		}
	}
	if rest, ok := strings.CutPrefix(msg, style.Dot+" "); ok {
		msg = rest
		w.last = w.logger.Debug
	}
	w.last(w.prefix + msg)
}
