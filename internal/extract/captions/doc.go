// Package captions fetches platform-provided subtitle tracks with
// yt-dlp and flattens their cues into plain text with time hints.
// Authored and auto-generated tracks are both accepted.
package captions
