package app

import (
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"bogus", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf strings.Builder
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Error("debug message logged below the configured level")
	}
	if strings.Contains(out, "info message") {
		t.Error("info message logged below the configured level")
	}
	if !strings.Contains(out, "warn message") {
		t.Error("warn message missing from output")
	}
	if !strings.Contains(out, "error message") {
		t.Error("error message missing from output")
	}
}

func TestLogger_Prefix(t *testing.T) {
	var buf strings.Builder
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf, Prefix: "codeshot"})

	logger.Info("hello")

	if !strings.Contains(buf.String(), "codeshot: hello") {
		t.Errorf("output = %q, want prefix before message", buf.String())
	}
}

func TestLogger_FormatArgs(t *testing.T) {
	var buf strings.Builder
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.Info("run %s exited %d", "abc", 1)

	if !strings.Contains(buf.String(), "run abc exited 1") {
		t.Errorf("output = %q, want formatted message", buf.String())
	}
}

func TestLogger_WithField(t *testing.T) {
	var buf strings.Builder
	base := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	derived := base.WithField("run_id", "abc")
	derived.Info("dispatched")

	if !strings.Contains(buf.String(), "run_id=abc") {
		t.Errorf("output = %q, want run_id field", buf.String())
	}

	buf.Reset()
	base.Info("plain")
	if strings.Contains(buf.String(), "run_id") {
		t.Error("field leaked into the base logger")
	}
}

func TestLogger_WithComponent(t *testing.T) {
	var buf strings.Builder
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf}).WithComponent("capture")

	logger.Info("ready")

	if !strings.Contains(buf.String(), "component=capture") {
		t.Errorf("output = %q, want component field", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	// Must not panic despite having no output writer.
	NullLogger.Error("dropped")
}
