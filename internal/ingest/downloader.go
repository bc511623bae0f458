package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"

	"cookit/internal/process"
	"cookit/internal/services"
)

const downloadAttempts = 3

// Downloader fetches videos with yt-dlp.
type Downloader struct {
	runner  process.Runner
	binary  string
	timeout time.Duration
}

// NewDownloader constructs a Downloader. An empty binary falls back to
// yt-dlp on PATH.
func NewDownloader(runner process.Runner, binary string, timeout time.Duration) *Downloader {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &Downloader{runner: runner, binary: binary, timeout: timeout}
}

// Download fetches videoURL into destDir and returns the path of the
// downloaded media file. Transient failures are retried up to three
// times with exponential backoff; context cancellation and tool
// timeouts abort immediately.
func (d *Downloader) Download(ctx context.Context, videoURL, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrAcquisition, "acquire", "download", "ensure staging dir", err)
	}

	attempt := func() error {
		_, err := d.runner.Run(ctx, process.Command{
			Name:    d.binary,
			Args:    BuildDownloadArgs(videoURL, destDir),
			Dir:     destDir,
			Timeout: d.timeout,
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, services.ErrTimeout) || ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), downloadAttempts-1),
		ctx,
	)
	if err := backoff.Retry(attempt, policy); err != nil {
		return "", services.Wrap(services.ErrAcquisition, "acquire", "download", "yt-dlp failed", err)
	}

	path, err := locateDownload(destDir)
	if err != nil {
		return "", services.Wrap(services.ErrAcquisition, "acquire", "download", "locate output", err)
	}
	return path, nil
}

// BuildDownloadArgs constructs the yt-dlp arguments for a single-video
// download with a predictable output name.
func BuildDownloadArgs(videoURL, destDir string) []string {
	return []string{
		"--no-playlist",
		"--no-progress",
		"--format", "bv*[height<=1080]+ba/b[height<=1080]/b",
		"--merge-output-format", "mp4",
		"--output", filepath.Join(destDir, "video.%(ext)s"),
		videoURL,
	}
}

func locateDownload(destDir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(destDir, "video.*"))
	if err != nil {
		return "", err
	}
	for _, match := range matches {
		switch filepath.Ext(match) {
		case ".part", ".ytdl", ".json", ".vtt", ".srt":
			continue
		}
		return match, nil
	}
	return "", fmt.Errorf("no media file found in %s", destDir)
}
