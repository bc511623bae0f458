package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cookit/internal/config"
	"cookit/internal/deps"
	"cookit/internal/extract"
	"cookit/internal/ingest"
	"cookit/internal/queue"
	"cookit/internal/services"
	"cookit/internal/stage"
	"cookit/internal/synth"
)

// fusionFileName is where the extract stage leaves its output for the
// synthesize stage, inside the job staging directory.
const fusionFileName = "fusion.json"

// fusionFile is the on-disk handoff between extraction and synthesis.
type fusionFile struct {
	Text    string             `json:"text"`
	Sources []extract.Source   `json:"sources"`
	Hints   []extract.TimeHint `json:"hints,omitempty"`
}

// AcquireStage downloads the source video into the job staging
// directory.
type AcquireStage struct {
	cfg        *config.Config
	downloader *ingest.Downloader
}

// NewAcquireStage constructs the acquisition stage.
func NewAcquireStage(cfg *config.Config, downloader *ingest.Downloader) *AcquireStage {
	return &AcquireStage{cfg: cfg, downloader: downloader}
}

func (a *AcquireStage) Prepare(_ context.Context, job *queue.Job) error {
	if job.SourceURL == "" {
		return services.Wrap(services.ErrAcquisition, "acquire", "prepare", "job has no source URL", nil)
	}
	return os.MkdirAll(a.cfg.JobStagingDir(job.VideoID), 0o755)
}

func (a *AcquireStage) Execute(ctx context.Context, job *queue.Job) error {
	_, err := a.downloader.Download(ctx, job.SourceURL, a.cfg.JobStagingDir(job.VideoID))
	return err
}

func (a *AcquireStage) HealthCheck(_ context.Context) stage.Health {
	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "yt-dlp", Command: a.cfg.Tools.YtDlp, Description: "video download"},
	})
	if missing := deps.MissingRequired(statuses); len(missing) > 0 {
		return stage.Unhealthy("acquire", fmt.Sprintf("missing binaries: %v", missing))
	}
	return stage.Healthy("acquire")
}

// ExtractStage runs all modalities concurrently and fuses their
// output.
type ExtractStage struct {
	cfg        *config.Config
	logger     *slog.Logger
	extractors []extract.Extractor
}

// NewExtractStage constructs the extraction stage.
func NewExtractStage(cfg *config.Config, logger *slog.Logger, extractors []extract.Extractor) *ExtractStage {
	return &ExtractStage{cfg: cfg, logger: logger, extractors: extractors}
}

func (e *ExtractStage) Prepare(_ context.Context, job *queue.Job) error {
	if _, err := locateMedia(e.cfg.JobStagingDir(job.VideoID)); err != nil {
		return services.Wrap(services.ErrExtraction, "extract", "prepare", "no staged media", err)
	}
	return nil
}

func (e *ExtractStage) Execute(ctx context.Context, job *queue.Job) error {
	workDir := e.cfg.JobStagingDir(job.VideoID)
	videoPath, err := locateMedia(workDir)
	if err != nil {
		return services.Wrap(services.ErrExtraction, "extract", "locate media", "no staged media", err)
	}

	results, err := extract.RunAll(ctx, e.logger, e.extractors, extract.Input{
		VideoURL:  job.SourceURL,
		VideoPath: videoPath,
		WorkDir:   workDir,
	})
	if err != nil {
		return services.Wrap(services.ErrExtraction, "extract", "run", "extraction failed", err)
	}

	fusion, err := extract.Fuse(results)
	if err != nil {
		return err
	}
	return writeFusion(workDir, fusion)
}

func (e *ExtractStage) HealthCheck(_ context.Context) stage.Health {
	if len(e.extractors) == 0 {
		return stage.Unhealthy("extract", "no extractors registered")
	}
	return stage.Healthy("extract")
}

// SynthesizeStage turns the fused text into the persisted recipe
// document.
type SynthesizeStage struct {
	cfg         *config.Config
	synthesizer *synth.Synthesizer
}

// NewSynthesizeStage constructs the synthesis stage.
func NewSynthesizeStage(cfg *config.Config, synthesizer *synth.Synthesizer) *SynthesizeStage {
	return &SynthesizeStage{cfg: cfg, synthesizer: synthesizer}
}

func (s *SynthesizeStage) Prepare(_ context.Context, job *queue.Job) error {
	if _, err := readFusion(s.cfg.JobStagingDir(job.VideoID)); err != nil {
		return services.Wrap(services.ErrSynthesis, "synthesize", "prepare", "no fused text", err)
	}
	return nil
}

func (s *SynthesizeStage) Execute(ctx context.Context, job *queue.Job) error {
	fusion, err := readFusion(s.cfg.JobStagingDir(job.VideoID))
	if err != nil {
		return services.Wrap(services.ErrSynthesis, "synthesize", "read fusion", "no fused text", err)
	}

	startedAt := time.Now()
	if job.StartedAt != nil {
		startedAt = *job.StartedAt
	}
	doc, err := s.synthesizer.Synthesize(ctx, synth.Request{
		Fusion:    fusion,
		SourceURL: job.SourceURL,
		Platform:  job.Platform,
		VideoID:   job.VideoID,
		StartedAt: startedAt,
	})
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return services.Wrap(services.ErrSynthesis, "synthesize", "encode", "recipe document unencodable", err)
	}
	job.RecipeJSON = string(encoded)
	return nil
}

func (s *SynthesizeStage) HealthCheck(ctx context.Context) stage.Health {
	if s.synthesizer == nil {
		return stage.Unhealthy("synthesize", "no synthesizer configured")
	}
	if err := s.synthesizer.Health(ctx); err != nil {
		return stage.Unhealthy("synthesize", err.Error())
	}
	return stage.Healthy("synthesize")
}

// locateMedia finds the downloaded media file in a staging directory.
func locateMedia(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "video.*"))
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
	return "", errors.New("no media file in staging dir")
}

func writeFusion(dir string, fusion extract.Fusion) error {
	encoded, err := json.Marshal(fusionFile{
		Text:    fusion.Text,
		Sources: fusion.Sources,
		Hints:   fusion.Hints,
	})
	if err != nil {
		return services.Wrap(services.ErrExtraction, "extract", "encode fusion", "fusion unencodable", err)
	}
	if err := os.WriteFile(filepath.Join(dir, fusionFileName), encoded, 0o644); err != nil {
		return services.Wrap(services.ErrExtraction, "extract", "write fusion", "cannot stage fusion", err)
	}
	return nil
}

func readFusion(dir string) (extract.Fusion, error) {
	data, err := os.ReadFile(filepath.Join(dir, fusionFileName))
	if err != nil {
		return extract.Fusion{}, err
	}
	var file fusionFile
	if err := json.Unmarshal(data, &file); err != nil {
		return extract.Fusion{}, fmt.Errorf("parse fusion file: %w", err)
	}
	return extract.Fusion{Text: file.Text, Sources: file.Sources, Hints: file.Hints}, nil
}
