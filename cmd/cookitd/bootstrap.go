package main

import (
	"log/slog"
	"strings"
	"time"

	"cookit/internal/config"
	"cookit/internal/extract"
	"cookit/internal/extract/captions"
	"cookit/internal/extract/frames"
	"cookit/internal/extract/speech"
	"cookit/internal/ingest"
	"cookit/internal/media"
	"cookit/internal/pipeline"
	"cookit/internal/process"
	"cookit/internal/queue"
	"cookit/internal/services/llm"
	"cookit/internal/synth"
)

// buildPipeline wires the external tools, the extractors, and the
// synthesis client into a pipeline manager.
func buildPipeline(cfg *config.Config, store *queue.Store, logger *slog.Logger) *pipeline.Manager {
	runner := process.NewRunner()
	processor := media.NewProcessor(runner, cfg.Tools.FFmpeg, cfg.Tools.FFprobe,
		time.Duration(cfg.Tools.TranscribeTimeout)*time.Second)

	downloader := ingest.NewDownloader(runner, cfg.Tools.YtDlp,
		time.Duration(cfg.Tools.DownloadTimeout)*time.Second)

	extractors := []extract.Extractor{
		frames.NewExtractor(runner, processor, logger, frames.Options{
			TesseractBinary: cfg.Tools.Tesseract,
			Languages:       strings.Join(cfg.Extraction.OCRLanguages, "+"),
			FrameInterval:   cfg.Extraction.FrameInterval,
			CropRegion:      media.CropRegion(cfg.Extraction.CropRegion),
			DedupeThreshold: cfg.Extraction.DedupeThreshold,
			Timeout:         time.Duration(cfg.Tools.OCRTimeout) * time.Second,
		}),
		captions.NewFetcher(runner, cfg.Tools.YtDlp, cfg.Extraction.CaptionLanguages,
			time.Duration(cfg.Tools.DownloadTimeout)*time.Second),
		speech.NewTranscriber(runner, processor, speech.Options{
			WhisperBinary: cfg.Tools.Whisper,
			Model:         cfg.Extraction.WhisperModel,
			Language:      cfg.Extraction.SpeechLanguage,
			Timeout:       time.Duration(cfg.Tools.TranscribeTimeout) * time.Second,
		}),
	}

	client := llm.NewClient(llm.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		Referer:        cfg.LLM.Referer,
		Title:          cfg.LLM.Title,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	})
	synthesizer := synth.New(client, logger)

	return pipeline.NewManager(cfg, store, logger,
		pipeline.NewAcquireStage(cfg, downloader),
		pipeline.NewExtractStage(cfg, logger, extractors),
		pipeline.NewSynthesizeStage(cfg, synthesizer),
	)
}
