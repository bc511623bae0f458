package main

import (
	"strings"
	"testing"
)

func TestResolveVideoIDFromURL(t *testing.T) {
	id, err := resolveVideoID("https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.HasPrefix(id, "youtube-") {
		t.Fatalf("expected youtube-prefixed id, got %q", id)
	}

	same, err := resolveVideoID("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if same != id {
		t.Fatalf("URL variants resolved differently: %q vs %q", id, same)
	}
}

func TestResolveVideoIDPassesThroughIDs(t *testing.T) {
	id, err := resolveVideoID("  tiktok-0123456789abcdef  ")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id != "tiktok-0123456789abcdef" {
		t.Fatalf("expected trimmed id, got %q", id)
	}
}

func TestResolveVideoIDRejectsBadURL(t *testing.T) {
	if _, err := resolveVideoID("ftp://example.com/video"); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
}
