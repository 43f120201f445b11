package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/staggergrid/internal/engine"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps that writes to w
// and filters messages at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg followed by the elapsed time, e.g. "Packed 42 tiles (3ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// packObserver traces packing events at debug level. It returns nil when
// debug logging is off so the packer skips event construction.
func packObserver(l *log.Logger) engine.Observer {
	if l.GetLevel() > log.DebugLevel {
		return nil
	}
	return func(e engine.Event) {
		r := e.Rect
		l.Debug(e.Kind.String(), "item", e.Item, "left", r.Left, "top", r.Top, "right", r.Right, "bottom", r.Bottom)
	}
}
