package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cookit/internal/extract"
	"cookit/internal/extract/captions"
	"cookit/internal/media"
	"cookit/internal/process"
	"cookit/internal/services"
)

// Segment is one transcribed span from whisper's JSON output.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type whisperPayload struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
}

// Transcriber runs whisper over extracted audio.
type Transcriber struct {
	runner    process.Runner
	processor *media.Processor
	binary    string
	model     string
	language  string
	timeout   time.Duration
}

// Options configures the transcriber.
type Options struct {
	WhisperBinary string
	Model         string
	Language      string
	Timeout       time.Duration
}

// NewTranscriber constructs the spoken-text extractor.
func NewTranscriber(runner process.Runner, processor *media.Processor, opts Options) *Transcriber {
	if opts.WhisperBinary == "" {
		opts.WhisperBinary = "whisper"
	}
	if opts.Model == "" {
		opts.Model = "small"
	}
	return &Transcriber{
		runner:    runner,
		processor: processor,
		binary:    opts.WhisperBinary,
		model:     opts.Model,
		language:  opts.Language,
		timeout:   opts.Timeout,
	}
}

// Source implements extract.Extractor.
func (t *Transcriber) Source() extract.Source {
	return extract.SourceSpoken
}

// Extract pulls the audio track out of the staged video as mono 16kHz
// WAV, transcribes it, and returns the transcript with segment time
// hints. A silent video yields an empty result.
func (t *Transcriber) Extract(ctx context.Context, input extract.Input) (extract.Result, error) {
	var result extract.Result
	audioDir := filepath.Join(input.WorkDir, "audio")
	audioPath := filepath.Join(audioDir, "audio.wav")
	if err := t.processor.ExtractAudio(ctx, input.VideoPath, audioPath); err != nil {
		return result, services.Wrap(services.ErrExtraction, "extract", "speech", "extract audio", err)
	}

	if _, err := t.runner.Run(ctx, process.Command{
		Name:    t.binary,
		Args:    BuildTranscribeArgs(audioPath, audioDir, t.model, t.language),
		Dir:     audioDir,
		Timeout: t.timeout,
	}); err != nil {
		return result, services.Wrap(services.ErrExtraction, "extract", "speech", "whisper", err)
	}

	segments, err := LoadSegments(filepath.Join(audioDir, "audio.json"))
	if err != nil {
		return result, services.Wrap(services.ErrExtraction, "extract", "speech", "load transcript", err)
	}

	var parts []string
	var hints []extract.TimeHint
	for _, segment := range segments {
		text := strings.TrimSpace(segment.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
		hints = append(hints, extract.TimeHint{
			At:   captions.FormatTimestamp(segment.Start),
			Text: text,
		})
	}
	result.Text = strings.Join(parts, " ")
	result.Hints = hints
	return result, nil
}

// BuildTranscribeArgs constructs the whisper CLI arguments for JSON
// output next to the audio file.
func BuildTranscribeArgs(audioPath, outputDir, model, language string) []string {
	args := []string{
		audioPath,
		"--model", model,
		"--output_format", "json",
		"--output_dir", outputDir,
		"--fp16", "False",
	}
	if language != "" {
		args = append(args, "--language", language)
	}
	return args
}

// LoadSegments reads segments from a whisper JSON transcript.
func LoadSegments(jsonPath string) ([]Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var payload whisperPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse whisper json: %w", err)
	}
	return payload.Segments, nil
}
