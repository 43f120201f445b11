package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/staggergrid/internal/engine"
	"github.com/piwi3910/staggergrid/internal/model"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("packed")

	out := buf.String()
	if !strings.Contains(out, "packed (") || !strings.Contains(out, "ms)") {
		t.Errorf("unexpected progress output %q", out)
	}
}

func TestLoggerContext(t *testing.T) {
	logger := newLogger(&bytes.Buffer{}, log.InfoLevel)
	ctx := withLogger(context.Background(), logger)

	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext did not return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("expected log.Default() without an attached logger")
	}
}

func TestPackObserver(t *testing.T) {
	if packObserver(newLogger(&bytes.Buffer{}, log.InfoLevel)) != nil {
		t.Error("expected nil observer at info level")
	}

	var buf bytes.Buffer
	obs := packObserver(newLogger(&buf, log.DebugLevel))
	if obs == nil {
		t.Fatal("expected observer at debug level")
	}
	engine.Arrange([]model.Item{{Width: 10, Height: 10}}, model.Container{Width: 100, Height: 100}, model.DefaultSettings(), obs)

	out := buf.String()
	if !strings.Contains(out, "placed") || !strings.Contains(out, "region-added") {
		t.Errorf("expected packing events in log, got %q", out)
	}
}
