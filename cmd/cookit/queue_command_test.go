package main

import (
	"strings"
	"testing"
	"time"

	"cookit/internal/api"
)

func TestRenderQueueTable(t *testing.T) {
	created := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	rendered := renderQueueTable([]api.JobView{
		{
			ID:        1,
			VideoID:   "youtube-0123456789abcdef",
			Platform:  "youtube",
			Status:    "completed",
			SourceURL: "https://youtu.be/abc",
			CreatedAt: created,
		},
		{
			ID:        2,
			VideoID:   "tiktok-fedcba9876543210",
			Platform:  "tiktok",
			Status:    "failed",
			Error:     "analysis timed out",
			CreatedAt: created,
		},
	})

	for _, expected := range []string{
		"youtube-0123456789abcdef",
		"completed",
		"analysis timed out",
		"ID",
		"Platform",
	} {
		if !strings.Contains(rendered, expected) {
			t.Errorf("rendered table missing %q:\n%s", expected, rendered)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 60); got != "short" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	long := strings.Repeat("x", 80)
	got := truncate(long, 60)
	if len(got) != 60 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected 60-char ellipsized string, got %d chars", len(got))
	}
}
