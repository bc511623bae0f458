package frames

import (
	"context"
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cookit/internal/extract"
	"cookit/internal/extract/captions"
	"cookit/internal/logging"
	"cookit/internal/media"
	"cookit/internal/process"
	"cookit/internal/services"
	"cookit/internal/textutil"
)

// Extractor recognizes on-screen text from sampled frames.
type Extractor struct {
	runner    process.Runner
	processor *media.Processor
	logger    *slog.Logger

	binary          string
	languages       string
	interval        int
	region          media.CropRegion
	dedupeThreshold float64
	timeout         time.Duration
}

// Options configures the OCR extractor.
type Options struct {
	TesseractBinary string
	Languages       string
	FrameInterval   int
	CropRegion      media.CropRegion
	DedupeThreshold float64
	Timeout         time.Duration
}

// NewExtractor constructs the on-screen text extractor.
func NewExtractor(runner process.Runner, processor *media.Processor, logger *slog.Logger, opts Options) *Extractor {
	if opts.TesseractBinary == "" {
		opts.TesseractBinary = "tesseract"
	}
	if opts.Languages == "" {
		opts.Languages = "kor+eng"
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 2
	}
	if opts.CropRegion == "" {
		opts.CropRegion = media.CropBottomQuarter
	}
	if opts.DedupeThreshold <= 0 {
		opts.DedupeThreshold = 0.8
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Extractor{
		runner:          runner,
		processor:       processor,
		logger:          logger,
		binary:          opts.TesseractBinary,
		languages:       opts.Languages,
		interval:        opts.FrameInterval,
		region:          opts.CropRegion,
		dedupeThreshold: opts.DedupeThreshold,
		timeout:         opts.Timeout,
	}
}

// Source implements extract.Extractor.
func (e *Extractor) Source() extract.Source {
	return extract.SourceOnScreen
}

// Extract samples frames from the staged video and runs tesseract over
// each one. Individual frame failures are logged and skipped; the
// extractor only errors when sampling itself fails.
func (e *Extractor) Extract(ctx context.Context, input extract.Input) (extract.Result, error) {
	var result extract.Result
	framePaths, err := e.processor.SampleFrames(ctx, input.VideoPath, filepath.Join(input.WorkDir, "frames"), e.interval, e.region)
	if err != nil {
		return result, services.Wrap(services.ErrExtraction, "extract", "ocr", "sample frames", err)
	}
	if len(framePaths) == 0 {
		return result, nil
	}

	type frameText struct {
		seconds int
		lines   []string
	}
	var recognized []frameText
	for _, framePath := range framePaths {
		if ctx.Err() != nil {
			return result, services.Wrap(services.ErrExtraction, "extract", "ocr", "cancelled", ctx.Err())
		}
		runResult, err := e.runner.Run(ctx, process.Command{
			Name:    e.binary,
			Args:    BuildOCRArgs(framePath, e.languages),
			Timeout: e.timeout,
		})
		if err != nil {
			e.logger.Warn("frame ocr failed",
				logging.String("frame", framePath),
				logging.Error(err))
			continue
		}
		lines := textutil.NonEmptyLines(runResult.Stdout)
		if len(lines) == 0 {
			continue
		}
		recognized = append(recognized, frameText{
			seconds: frameSeconds(framePath, e.interval),
			lines:   lines,
		})
	}
	if len(recognized) == 0 {
		return result, nil
	}

	var kept []string
	var hints []extract.TimeHint
	for _, frame := range recognized {
		for _, line := range frame.lines {
			if isNearDuplicate(line, kept, e.dedupeThreshold) {
				continue
			}
			kept = append(kept, line)
			hints = append(hints, extract.TimeHint{
				At:   captions.FormatTimestamp(float64(frame.seconds)),
				Text: line,
			})
		}
	}
	result.Text = strings.Join(kept, "\n\n")
	result.Hints = hints
	return result, nil
}

// BuildOCRArgs constructs tesseract arguments that print recognized
// text to stdout.
func BuildOCRArgs(framePath, languages string) []string {
	return []string{framePath, "stdout", "-l", languages, "--psm", "6"}
}

// isNearDuplicate reports whether line is similar to any already kept
// line. Keep-first wins: the earliest occurrence survives.
func isNearDuplicate(line string, kept []string, threshold float64) bool {
	for _, existing := range kept {
		if textutil.JaccardWords(line, existing) > threshold {
			return true
		}
	}
	return false
}

var frameNumberPattern = regexp.MustCompile(`frame_(\d+)\.png$`)

// frameSeconds derives the approximate playback position of a sampled
// frame from its 1-based sequence number.
func frameSeconds(framePath string, interval int) int {
	match := frameNumberPattern.FindStringSubmatch(framePath)
	if len(match) != 2 {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil || n < 1 {
		return 0
	}
	return (n - 1) * interval
}
