package main

import (
	"strings"
	"testing"
)

func TestRenderTableKeepsHeaderCasing(t *testing.T) {
	rendered := renderTable(
		[]string{"Video", "Status"},
		[][]string{{"youtube-0123456789abcdef", "completed"}},
		nil,
	)
	if !strings.Contains(rendered, "Video") {
		t.Fatalf("header casing lost:\n%s", rendered)
	}
	if strings.Contains(rendered, "VIDEO") {
		t.Fatalf("header should not be upcased:\n%s", rendered)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	rendered := renderTable(
		[]string{"ID", "Video", "Status"},
		[][]string{{"1"}},
		[]columnAlignment{alignRight},
	)
	if !strings.Contains(rendered, "1") {
		t.Fatalf("row content missing:\n%s", rendered)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("headerless table must render empty")
	}
}
