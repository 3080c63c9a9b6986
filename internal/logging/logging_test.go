package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelWarn)
	log.SetOutput(&buf)

	log.Debug("should not appear")
	log.Info("should not appear either")
	log.Warn("warning %d", 1)
	log.Error("failure: %s", "disk")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("filtered levels leaked:\n%s", out)
	}
	if !strings.Contains(out, "[WARN] warning 1") {
		t.Errorf("warn line missing:\n%s", out)
	}
	if !strings.Contains(out, "[ERROR] failure: disk") {
		t.Errorf("error line missing:\n%s", out)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelError)
	log.SetOutput(&buf)

	log.Info("hidden")
	log.SetLevel(LevelDebug)
	log.Debug("visible")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("message below level was logged")
	}
	if !strings.Contains(buf.String(), "visible") {
		t.Error("message at level was not logged after SetLevel")
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	// Must be safe and silent at every level.
	log.Debug("x")
	log.Info("x")
	log.Warn("x")
	log.Error("x")
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}
