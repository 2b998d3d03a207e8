package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := New(h)

	logger.Info("resolved version", "version", "115.0.5790.170")

	output := buf.String()
	if !strings.Contains(output, "resolved version") {
		t.Errorf("expected output to contain 'resolved version', got: %s", output)
	}
	if !strings.Contains(output, "version=115.0.5790.170") {
		t.Errorf("expected output to contain version attr, got: %s", output)
	}
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(Logger)
		contains string
	}{
		{"Debug", func(l Logger) { l.Debug("debug msg") }, "debug msg"},
		{"Info", func(l Logger) { l.Info("info msg") }, "info msg"},
		{"Warn", func(l Logger) { l.Warn("warn msg") }, "warn msg"},
		{"Error", func(l Logger) { l.Error("error msg") }, "error msg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			logger := New(h)

			tt.logFunc(logger)

			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("expected output to contain %q, got: %s", tt.contains, output)
			}
			if !strings.Contains(output, strings.ToUpper(tt.name)) {
				t.Errorf("expected output to contain level %q, got: %s", tt.name, output)
			}
		})
	}
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := New(h).With("os", "linux")

	logger.Info("installing")

	output := buf.String()
	if !strings.Contains(output, "os=linux") {
		t.Errorf("expected output to contain bound attr, got: %s", output)
	}
}

func TestNoopLogger(t *testing.T) {
	// Must not panic, and With must return a usable logger.
	l := NewNoop()
	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d")
	l.With("k", "v").Info("e")
}

func TestDefaultLogger(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	SetDefault(New(h))

	Default().Info("via default")

	if !strings.Contains(buf.String(), "via default") {
		t.Errorf("expected default logger output, got: %s", buf.String())
	}
}
