package speech

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cookit/internal/extract"
	"cookit/internal/media"
	"cookit/internal/process"
)

const sampleTranscript = `{
  "text": " 먼저 양파를 썰어주세요. 그 다음 고추장을 넣습니다.",
  "segments": [
    {"start": 0.0, "end": 4.2, "text": " 먼저 양파를 썰어주세요."},
    {"start": 4.2, "end": 9.8, "text": " 그 다음 고추장을 넣습니다."},
    {"start": 9.8, "end": 10.0, "text": "   "}
  ]
}`

type speechRunner struct {
	t          *testing.T
	transcript string
	commands   []process.Command
}

func (s *speechRunner) Run(_ context.Context, cmd process.Command) (process.Result, error) {
	s.commands = append(s.commands, cmd)
	switch {
	case strings.Contains(cmd.Name, "ffmpeg"):
		dest := cmd.Args[len(cmd.Args)-1]
		if err := os.WriteFile(dest, []byte("wav"), 0o644); err != nil {
			s.t.Fatal(err)
		}
	default:
		path := filepath.Join(cmd.Dir, "audio.json")
		if err := os.WriteFile(path, []byte(s.transcript), 0o644); err != nil {
			s.t.Fatal(err)
		}
	}
	return process.Result{}, nil
}

func TestExtractTranscribesAudio(t *testing.T) {
	runner := &speechRunner{t: t, transcript: sampleTranscript}
	processor := media.NewProcessor(runner, "ffmpeg", "ffprobe", time.Minute)
	tr := NewTranscriber(runner, processor, Options{Language: "ko"})

	result, err := tr.Extract(context.Background(), extract.Input{
		VideoPath: "video.mp4",
		WorkDir:   t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(result.Text, "양파를 썰어주세요") {
		t.Fatalf("unexpected transcript %q", result.Text)
	}
	if len(result.Hints) != 2 {
		t.Fatalf("blank segments should be dropped, got %+v", result.Hints)
	}
	if result.Hints[1].At != "00:00:04" {
		t.Fatalf("unexpected hint time %q", result.Hints[1].At)
	}

	whisperCmd := runner.commands[len(runner.commands)-1]
	joined := strings.Join(whisperCmd.Args, " ")
	if !strings.Contains(joined, "--output_format json") || !strings.Contains(joined, "--language ko") {
		t.Fatalf("unexpected whisper args %s", joined)
	}
}

func TestExtractFailsWhenTranscriptMissing(t *testing.T) {
	runner := &speechRunner{t: t, transcript: ""}
	processor := media.NewProcessor(runner, "ffmpeg", "ffprobe", time.Minute)
	tr := NewTranscriber(runner, processor, Options{})

	// Empty transcript file is invalid JSON, so loading must fail.
	if _, err := tr.Extract(context.Background(), extract.Input{
		VideoPath: "video.mp4",
		WorkDir:   t.TempDir(),
	}); err == nil {
		t.Fatal("expected error for unreadable transcript")
	}
}

func TestBuildTranscribeArgsOmitsEmptyLanguage(t *testing.T) {
	args := BuildTranscribeArgs("audio.wav", "/out", "small", "")
	if strings.Contains(strings.Join(args, " "), "--language") {
		t.Fatalf("language flag should be omitted: %v", args)
	}
}

func TestLoadSegments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audio.json")
	if err := os.WriteFile(path, []byte(sampleTranscript), 0o644); err != nil {
		t.Fatal(err)
	}
	segments, err := LoadSegments(path)
	if err != nil {
		t.Fatalf("LoadSegments: %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	if segments[0].End != 4.2 {
		t.Fatalf("unexpected segment %+v", segments[0])
	}
}
