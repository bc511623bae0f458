package videoid

import (
	"strings"
	"testing"
)

func TestDeriveStableAcrossURLShapes(t *testing.T) {
	urls := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?si=tracking123",
		"https://m.youtube.com/watch?v=dQw4w9WgXcQ&feature=share",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&utm_source=newsletter",
	}
	platform, first, err := Derive(urls[0])
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if platform != PlatformYouTube {
		t.Fatalf("expected youtube platform, got %q", platform)
	}
	for _, u := range urls[1:] {
		_, id, err := Derive(u)
		if err != nil {
			t.Fatalf("Derive(%q): %v", u, err)
		}
		if id != first {
			t.Fatalf("id mismatch for %q: got %q want %q", u, id, first)
		}
	}
}

func TestDeriveIDFormat(t *testing.T) {
	_, id, err := Derive("https://www.tiktok.com/@cook/video/7299123456789")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if !strings.HasPrefix(id, "tiktok-") {
		t.Fatalf("expected tiktok prefix, got %q", id)
	}
	if len(id) != len("tiktok-")+16 {
		t.Fatalf("expected 16 hex chars after prefix, got %q", id)
	}
}

func TestDetectPlatforms(t *testing.T) {
	cases := []struct {
		url  string
		want Platform
	}{
		{"https://www.youtube.com/watch?v=abc12345678", PlatformYouTube},
		{"https://www.tiktok.com/@user/video/123", PlatformTikTok},
		{"https://www.instagram.com/reel/Cxyz/", PlatformInstagram},
		{"https://example.com/videos/pasta.mp4", PlatformGeneric},
	}
	for _, tc := range cases {
		platform, _, err := Derive(tc.url)
		if err != nil {
			t.Fatalf("Derive(%q): %v", tc.url, err)
		}
		if platform != tc.want {
			t.Fatalf("%q: got %q want %q", tc.url, platform, tc.want)
		}
	}
}

func TestCanonicalizeStripsTrackingAndSortsQuery(t *testing.T) {
	_, canonical, err := Canonicalize("https://example.com/v?b=2&a=1&utm_campaign=x&fbclid=y")
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	if canonical != "https://example.com/v?a=1&b=2" {
		t.Fatalf("unexpected canonical form %q", canonical)
	}
}

func TestCanonicalizeRejectsInvalidInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "ftp://example.com/video", "not a url at all"} {
		if _, _, err := Canonicalize(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestDifferentVideosGetDifferentIDs(t *testing.T) {
	_, a, err := Derive("https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatal(err)
	}
	_, b, err := Derive("https://youtu.be/oHg5SJYRHA0")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatalf("distinct videos must not collide: %q", a)
	}
}
