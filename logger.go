package pixfx

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards all records.
// Enabled returns false so callers skip building attributes.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by pixfx and its sub-packages.
// By default nothing is logged. Passing nil restores the silent default.
// SetLogger is safe for concurrent use.
//
// Levels used:
//   - [slog.LevelDebug]: per-apply diagnostics (dimensions, workers, GPU buffer sizes)
//   - [slog.LevelInfo]: GPU pipeline creation
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages share it through this call.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
