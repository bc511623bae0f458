package videoid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Platform identifies the hosting service a URL belongs to.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformGeneric   Platform = "video"
)

// trackingParams are query parameters that never affect which video a
// URL points at and are stripped before hashing.
var trackingParams = map[string]bool{
	"fbclid":  true,
	"gclid":   true,
	"si":      true,
	"feature": true,
	"ref":     true,
	"pp":      true,
}

// Derive canonicalizes rawURL and returns its platform together with a
// deterministic identifier of the form "<platform>-<16 hex chars>".
func Derive(rawURL string) (Platform, string, error) {
	platform, canonical, err := Canonicalize(rawURL)
	if err != nil {
		return "", "", err
	}
	sum := sha256.Sum256([]byte(canonical))
	return platform, fmt.Sprintf("%s-%s", platform, hex.EncodeToString(sum[:])[:16]), nil
}

// Canonicalize normalizes a video URL into a stable form: lowercased
// host with "www." and "m." prefixes removed, short-link and embed
// shapes resolved to the watch form, tracking parameters stripped, and
// remaining query parameters sorted.
func Canonicalize(rawURL string) (Platform, string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", "", fmt.Errorf("empty video URL")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", "", fmt.Errorf("parse video URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", "", fmt.Errorf("unsupported URL scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", "", fmt.Errorf("video URL missing host")
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")

	platform := detectPlatform(host)
	path := strings.TrimSuffix(parsed.Path, "/")
	query := parsed.Query()

	if platform == PlatformYouTube {
		if id := youtubeVideoID(host, path, query); id != "" {
			return platform, "https://youtube.com/watch?v=" + id, nil
		}
	}

	for key := range query {
		if trackingParams[key] || strings.HasPrefix(key, "utm_") {
			query.Del(key)
		}
	}

	canonical := "https://" + host + path
	if encoded := encodeSorted(query); encoded != "" {
		canonical += "?" + encoded
	}
	return platform, canonical, nil
}

func detectPlatform(host string) Platform {
	switch {
	case host == "youtu.be" || host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		return PlatformYouTube
	case host == "tiktok.com" || strings.HasSuffix(host, ".tiktok.com"):
		return PlatformTikTok
	case host == "instagram.com" || strings.HasSuffix(host, ".instagram.com"):
		return PlatformInstagram
	default:
		return PlatformGeneric
	}
}

// youtubeVideoID extracts the 11-character video id from the watch,
// short-link, shorts, embed, and live URL shapes. Returns "" when the
// URL carries no recognizable id.
func youtubeVideoID(host, path string, query url.Values) string {
	if host == "youtu.be" {
		return strings.TrimPrefix(path, "/")
	}
	if v := query.Get("v"); v != "" {
		return v
	}
	for _, prefix := range []string{"/shorts/", "/embed/", "/live/"} {
		if strings.HasPrefix(path, prefix) {
			rest := strings.TrimPrefix(path, prefix)
			if idx := strings.IndexByte(rest, '/'); idx >= 0 {
				rest = rest[:idx]
			}
			return rest
		}
	}
	return ""
}

func encodeSorted(query url.Values) string {
	if len(query) == 0 {
		return ""
	}
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for _, key := range keys {
		values := query[key]
		sort.Strings(values)
		for _, value := range values {
			if builder.Len() > 0 {
				builder.WriteByte('&')
			}
			builder.WriteString(url.QueryEscape(key))
			builder.WriteByte('=')
			builder.WriteString(url.QueryEscape(value))
		}
	}
	return builder.String()
}
