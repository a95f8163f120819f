package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger = NewComponentLogger(logger, "detect")
	logger.Info("segment located", Int("start_sample", 10), String("identity", "ABCDE12345f"))

	line := buf.String()
	if !strings.Contains(line, "INFO detect: segment located") {
		t.Errorf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "start_sample=10") {
		t.Errorf("missing attr: %q", line)
	}
	if !strings.Contains(line, "identity=ABCDE12345f") {
		t.Errorf("missing attr: %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, new(slog.LevelVar)))

	logger.Info("title", String("value", "two words"))
	if !strings.Contains(buf.String(), `value="two words"`) {
		t.Errorf("value should be quoted: %q", buf.String())
	}
}

func TestConsoleHandlerFlattensGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, new(slog.LevelVar)))

	logger.With(slog.Group("roi", slog.Float64("x", 0.055))).Info("crop")
	if !strings.Contains(buf.String(), "roi.x=0.055") {
		t.Errorf("group should flatten: %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line should be filtered")
	}
	if !strings.Contains(out, "shown") {
		t.Error("warn line should pass")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestNopLoggerSilent(t *testing.T) {
	logger := NewNop()
	logger.Error("never seen", Error(nil))
	// Nothing to assert beyond not panicking.
}
