package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cookit/internal/process"
	"cookit/internal/services"
)

type scriptedRunner struct {
	calls    int
	failures int
	failErr  error
	onOK     func(cmd process.Command)
}

func (s *scriptedRunner) Run(_ context.Context, cmd process.Command) (process.Result, error) {
	s.calls++
	if s.calls <= s.failures {
		err := s.failErr
		if err == nil {
			err = fmt.Errorf("network reset: %w", services.ErrExternalTool)
		}
		return process.Result{}, err
	}
	if s.onOK != nil {
		s.onOK(cmd)
	}
	return process.Result{}, nil
}

func writeVideo(t *testing.T, dir string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "video.mp4"), []byte("media"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDownloadRetriesTransientFailures(t *testing.T) {
	dir := t.TempDir()
	runner := &scriptedRunner{failures: 2, onOK: func(process.Command) { writeVideo(t, dir) }}
	dl := NewDownloader(runner, "yt-dlp", time.Minute)

	path, err := dl.Download(context.Background(), "https://youtu.be/abc", dir)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if filepath.Base(path) != "video.mp4" {
		t.Fatalf("unexpected path %q", path)
	}
	if runner.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", runner.calls)
	}
}

func TestDownloadGivesUpAfterMaxAttempts(t *testing.T) {
	runner := &scriptedRunner{failures: 10}
	dl := NewDownloader(runner, "yt-dlp", time.Minute)

	_, err := dl.Download(context.Background(), "https://youtu.be/abc", t.TempDir())
	if !errors.Is(err, services.ErrAcquisition) {
		t.Fatalf("expected acquisition marker, got %v", err)
	}
	if runner.calls != downloadAttempts {
		t.Fatalf("expected %d attempts, got %d", downloadAttempts, runner.calls)
	}
}

func TestDownloadDoesNotRetryTimeouts(t *testing.T) {
	runner := &scriptedRunner{failures: 10, failErr: fmt.Errorf("tool: %w", services.ErrTimeout)}
	dl := NewDownloader(runner, "yt-dlp", time.Minute)

	_, err := dl.Download(context.Background(), "https://youtu.be/abc", t.TempDir())
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout marker, got %v", err)
	}
	if runner.calls != 1 {
		t.Fatalf("timeouts must not retry, got %d attempts", runner.calls)
	}
}

func TestDownloadErrorsWhenNoMediaProduced(t *testing.T) {
	runner := &scriptedRunner{}
	dl := NewDownloader(runner, "yt-dlp", time.Minute)
	if _, err := dl.Download(context.Background(), "https://youtu.be/abc", t.TempDir()); err == nil {
		t.Fatal("expected error when tool writes nothing")
	}
}

func TestBuildDownloadArgs(t *testing.T) {
	args := BuildDownloadArgs("https://youtu.be/abc", "/staging/youtube-1234")
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "--no-playlist") {
		t.Fatalf("missing --no-playlist: %s", joined)
	}
	if !strings.Contains(joined, filepath.Join("/staging/youtube-1234", "video.%(ext)s")) {
		t.Fatalf("missing output template: %s", joined)
	}
	if args[len(args)-1] != "https://youtu.be/abc" {
		t.Fatalf("url must be last arg: %v", args)
	}
}
