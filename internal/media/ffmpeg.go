package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cookit/internal/process"
)

// CropRegion names the part of the frame sampled for OCR. Cooking
// videos overlay captions near the bottom edge, so the default trims
// everything else away before tesseract sees the image.
type CropRegion string

const (
	CropBottomQuarter CropRegion = "bottom_quarter"
	CropBottomThird   CropRegion = "bottom_third"
	CropBottomHalf    CropRegion = "bottom_half"
	CropFull          CropRegion = "full"
)

// cropFilters maps region names to ffmpeg crop expressions.
var cropFilters = map[CropRegion]string{
	CropBottomQuarter: "crop=iw:ih/4:0:3*ih/4",
	CropBottomThird:   "crop=iw:ih/3:0:2*ih/3",
	CropBottomHalf:    "crop=iw:ih/2:0:ih/2",
	CropFull:          "",
}

// Processor runs ffmpeg and ffprobe through the shared process runner.
type Processor struct {
	runner  process.Runner
	ffmpeg  string
	ffprobe string
	timeout time.Duration
}

// NewProcessor constructs a Processor. Empty binary names fall back to
// the commands on PATH.
func NewProcessor(runner process.Runner, ffmpegBinary, ffprobeBinary string, timeout time.Duration) *Processor {
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	if ffprobeBinary == "" {
		ffprobeBinary = "ffprobe"
	}
	return &Processor{runner: runner, ffmpeg: ffmpegBinary, ffprobe: ffprobeBinary, timeout: timeout}
}

// ExtractAudio extracts the audio stream of source into a mono 16kHz
// PCM WAV at dest, the input format whisper expects.
func (p *Processor) ExtractAudio(ctx context.Context, source, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("extract audio: ensure dest dir: %w", err)
	}
	_, err := p.runner.Run(ctx, process.Command{
		Name:    p.ffmpeg,
		Args:    BuildAudioExtractArgs(source, dest),
		Timeout: p.timeout,
	})
	if err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}
	return nil
}

// SampleFrames writes one PNG every intervalSeconds of source into
// outputDir, cropped to region, and returns the frame paths in
// chronological order.
func (p *Processor) SampleFrames(ctx context.Context, source, outputDir string, intervalSeconds int, region CropRegion) ([]string, error) {
	if intervalSeconds <= 0 {
		return nil, fmt.Errorf("sample frames: invalid interval %d", intervalSeconds)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("sample frames: ensure output dir: %w", err)
	}
	args, err := BuildFrameSampleArgs(source, outputDir, intervalSeconds, region)
	if err != nil {
		return nil, fmt.Errorf("sample frames: %w", err)
	}
	if _, err := p.runner.Run(ctx, process.Command{
		Name:    p.ffmpeg,
		Args:    args,
		Timeout: p.timeout,
	}); err != nil {
		return nil, fmt.Errorf("sample frames: %w", err)
	}
	frames, err := filepath.Glob(filepath.Join(outputDir, "frame_*.png"))
	if err != nil {
		return nil, fmt.Errorf("sample frames: list output: %w", err)
	}
	sort.Strings(frames)
	return frames, nil
}

// Duration probes source and returns its playback length.
func (p *Processor) Duration(ctx context.Context, source string) (time.Duration, error) {
	result, err := p.runner.Run(ctx, process.Command{
		Name: p.ffprobe,
		Args: []string{
			"-v", "error",
			"-show_entries", "format=duration",
			"-of", "default=noprint_wrappers=1:nokey=1",
			source,
		},
		Timeout: p.timeout,
	})
	if err != nil {
		return 0, fmt.Errorf("probe duration: %w", err)
	}
	return ParseProbeDuration(result.Stdout)
}

// BuildAudioExtractArgs constructs the ffmpeg arguments for mono 16kHz
// WAV extraction.
func BuildAudioExtractArgs(source, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
}

// BuildFrameSampleArgs constructs the ffmpeg arguments for periodic
// frame sampling with an optional crop filter.
func BuildFrameSampleArgs(source, outputDir string, intervalSeconds int, region CropRegion) ([]string, error) {
	crop, ok := cropFilters[region]
	if !ok {
		return nil, fmt.Errorf("unknown crop region %q", region)
	}
	filter := fmt.Sprintf("fps=1/%d", intervalSeconds)
	if crop != "" {
		filter += "," + crop
	}
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vf", filter,
		"-vsync", "vfr",
		filepath.Join(outputDir, "frame_%05d.png"),
	}, nil
}

// ParseProbeDuration parses ffprobe's duration output (seconds as a
// decimal string) into a time.Duration.
func ParseProbeDuration(output string) (time.Duration, error) {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return 0, fmt.Errorf("probe duration: empty output")
	}
	seconds, err := time.ParseDuration(trimmed + "s")
	if err != nil {
		return 0, fmt.Errorf("probe duration: parse %q: %w", trimmed, err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("probe duration: negative value %q", trimmed)
	}
	return seconds, nil
}
