package cli

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/log"

	"github.com/soypat/pixfx"
)

// newLogger creates a logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// installLibraryLogger routes pixfx library logs through l.
func installLibraryLogger(l *log.Logger) {
	pixfx.SetLogger(slog.New(l))
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Applied Red Only (12ms)"
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Infof("%s (%s)", msg, p.elapsed())
	if len(keyvals) > 0 {
		p.logger.Debug(msg, keyvals...)
	}
}

func (p *progress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}
