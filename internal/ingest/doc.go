// Package ingest downloads submitted videos into per-job staging
// directories with yt-dlp. Downloads retry on transient network
// failures; unsupported or removed videos fail fast.
package ingest
