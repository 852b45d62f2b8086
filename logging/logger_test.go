package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestNewSlogLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(LogLevelInfo, "json", &buf)

	logger.Info("pipeline.stage", "state", "start")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "pipeline.stage" {
		t.Errorf("msg = %v, want %q", entry["msg"], "pipeline.stage")
	}
	if entry["state"] != "start" {
		t.Errorf("state = %v, want %q", entry["state"], "start")
	}
}

func TestNewSlogLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(LogLevelDebug, "text", &buf)

	logger.Debug("agent.run", "agent", "Coordinator")

	out := buf.String()
	if !strings.Contains(out, "agent.run") || !strings.Contains(out, "Coordinator") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestNewSlogLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(LogLevelWarn, "json", &buf)

	logger.Debug("dropped")
	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("below-threshold messages written: %q", buf.String())
	}

	logger.Warn("kept")
	if buf.Len() == 0 {
		t.Error("warn message was dropped")
	}
}

func TestNoOpLogger(t *testing.T) {
	// Must not panic.
	l := NoOpLogger{}
	l.Debug("x")
	l.Info("x", "k", "v")
	l.Warn("x")
	l.Error("x")
}
