package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newBufferLogger(level string) (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(level))
	return slog.New(newConsoleHandler(buf, levelVar)), buf
}

func TestConsoleHandlerFormat(t *testing.T) {
	logger, buf := newBufferLogger("info")
	logger = NewComponentLogger(logger, "classify")

	logger.Info("file classified", String("path", "/tmp/a.jpg"), Int("count", 3))

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, " INFO classify: file classified") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "path=/tmp/a.jpg") {
		t.Fatalf("missing path attr: %q", line)
	}
	if !strings.Contains(line, "count=3") {
		t.Fatalf("missing count attr: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	logger, buf := newBufferLogger("info")

	logger.Warn("move failed", String("path", "/tmp/my photo.jpg"))

	if !strings.Contains(buf.String(), `path="/tmp/my photo.jpg"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestConsoleHandlerLevelFilter(t *testing.T) {
	logger, buf := newBufferLogger("warn")

	logger.Info("suppressed")
	logger.Warn("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info line leaked through warn level: %q", out)
	}
	if !strings.Contains(out, "emitted") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestParseLevelDefaults(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		" DEBUG ": slog.LevelDebug,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestConsoleHandlerRendersAttrHelpers(t *testing.T) {
	logger, buf := newBufferLogger("info")

	logger.Warn("duplicate archive failed",
		String("path", "/tmp/a.jpg"),
		Bool("dry_run", false),
		Int("attempt", 2),
		Error(errors.New("disk full")))

	line := buf.String()
	for _, want := range []string{"path=/tmp/a.jpg", "dry_run=false", "attempt=2", `error="disk full"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("missing %q in %q", want, line)
		}
	}
}

func TestNoopHandler(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("noop logger should never be enabled")
	}
	logger.Error("ignored", Error(nil))
}
