package frames

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cookit/internal/extract"
	"cookit/internal/media"
	"cookit/internal/process"
)

// ocrRunner fakes both the ffmpeg sampling call and per-frame
// tesseract calls.
type ocrRunner struct {
	frames   map[string]string
	frameErr map[string]error
	dir      string
	t        *testing.T
}

func (r *ocrRunner) Run(_ context.Context, cmd process.Command) (process.Result, error) {
	if cmd.Name == "ffmpeg" {
		for name := range r.frames {
			if err := os.WriteFile(filepath.Join(r.dir, "frames", name), []byte("png"), 0o644); err != nil {
				r.t.Fatal(err)
			}
		}
		return process.Result{}, nil
	}
	base := filepath.Base(cmd.Args[0])
	if err, ok := r.frameErr[base]; ok {
		return process.Result{}, err
	}
	return process.Result{Stdout: r.frames[base]}, nil
}

func newOCRExtractor(t *testing.T, runner *ocrRunner) (*Extractor, extract.Input) {
	t.Helper()
	dir := t.TempDir()
	runner.dir = dir
	runner.t = t
	processor := media.NewProcessor(runner, "ffmpeg", "ffprobe", time.Minute)
	ex := NewExtractor(runner, processor, nil, Options{
		FrameInterval:   2,
		DedupeThreshold: 0.8,
	})
	return ex, extract.Input{VideoPath: filepath.Join(dir, "video.mp4"), WorkDir: dir}
}

func TestExtractDedupesNearDuplicateLines(t *testing.T) {
	runner := &ocrRunner{frames: map[string]string{
		"frame_00001.png": "양파를 얇게 썰어 준비합니다\n",
		"frame_00002.png": "양파를 얇게 썰어 준비합니다 l\n",
		"frame_00003.png": "고추장 2큰술\n",
	}}
	ex, input := newOCRExtractor(t, runner)
	result, err := ex.Extract(context.Background(), input)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	lines := strings.Split(result.Text, "\n\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 deduped blank-line-separated lines, got %d: %q", len(lines), result.Text)
	}
	// Keep-first: the clean first occurrence survives, not the noisy one.
	if lines[0] != "양파를 얇게 썰어 준비합니다" {
		t.Fatalf("unexpected surviving line %q", lines[0])
	}
	if lines[1] != "고추장 2큰술" {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}

func TestExtractSkipsFailedFrames(t *testing.T) {
	runner := &ocrRunner{
		frames: map[string]string{
			"frame_00001.png": "",
			"frame_00002.png": "add the stock\n",
		},
		frameErr: map[string]error{
			"frame_00001.png": errors.New("tesseract crashed"),
		},
	}
	ex, input := newOCRExtractor(t, runner)
	result, err := ex.Extract(context.Background(), input)
	if err != nil {
		t.Fatalf("Extract should tolerate frame failures: %v", err)
	}
	if result.Text != "add the stock" {
		t.Fatalf("unexpected text %q", result.Text)
	}
}

func TestExtractEmptyWhenNothingRecognized(t *testing.T) {
	runner := &ocrRunner{frames: map[string]string{
		"frame_00001.png": "   \n",
		"frame_00002.png": "",
	}}
	ex, input := newOCRExtractor(t, runner)
	result, err := ex.Extract(context.Background(), input)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if result.Succeeded() {
		t.Fatalf("expected empty result, got %q", result.Text)
	}
}

func TestExtractHintsCarryFrameTimes(t *testing.T) {
	runner := &ocrRunner{frames: map[string]string{
		"frame_00001.png": "first caption\n",
		"frame_00003.png": "totally different words\n",
	}}
	ex, input := newOCRExtractor(t, runner)
	result, err := ex.Extract(context.Background(), input)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(result.Hints) != 2 {
		t.Fatalf("expected 2 hints, got %+v", result.Hints)
	}
	if result.Hints[0].At != "00:00:00" {
		t.Fatalf("frame 1 should map to 00:00:00, got %q", result.Hints[0].At)
	}
	if result.Hints[1].At != "00:00:04" {
		t.Fatalf("frame 3 at 2s interval should map to 00:00:04, got %q", result.Hints[1].At)
	}
}

func TestBuildOCRArgs(t *testing.T) {
	args := BuildOCRArgs("/frames/frame_00001.png", "kor+eng")
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "stdout") || !strings.Contains(joined, "-l kor+eng") {
		t.Fatalf("unexpected args %s", joined)
	}
}

func TestFrameSeconds(t *testing.T) {
	if got := frameSeconds("/work/frames/frame_00005.png", 3); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
	if got := frameSeconds("/work/frames/unnamed.png", 3); got != 0 {
		t.Fatalf("unparseable names map to 0, got %d", got)
	}
}
