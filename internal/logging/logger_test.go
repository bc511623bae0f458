package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.With(String(FieldComponent, "pipeline")).Info(
		"stage started",
		String(FieldStage, "acquire"),
		Int64(FieldJobID, 7),
	)

	line := buf.String()
	if !strings.Contains(line, "INFO pipeline: stage started") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "stage=acquire") || !strings.Contains(line, "job_id=7") {
		t.Fatalf("expected attrs in console line: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be inlined, not rendered as attr: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Warn("caption fetch", String("detail", "no track found"))
	if !strings.Contains(buf.String(), `detail="no track found"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	handler := newConsoleHandler(&buf, levelVar)

	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info should be filtered at warn level")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("error should pass at warn level")
	}
}

func TestNoopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error("should not panic", Error(nil))
}
