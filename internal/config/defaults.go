package config

const (
	defaultStagingDir        = "~/.local/share/cookit/staging"
	defaultLogDir            = "~/.local/share/cookit/logs"
	defaultAPIBind           = "127.0.0.1:8756"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultYtDlpBinary       = "yt-dlp"
	defaultFFmpegBinary      = "ffmpeg"
	defaultFFprobeBinary     = "ffprobe"
	defaultTesseractBinary   = "tesseract"
	defaultWhisperBinary     = "whisper"
	defaultDownloadTimeout   = 300
	defaultTranscribeTimeout = 300
	defaultOCRTimeout        = 30
	defaultFrameInterval     = 2
	defaultCropRegion        = "bottom_quarter"
	defaultDedupeThreshold   = 0.8
	defaultWhisperModel      = "small"
	defaultLLMBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel          = "google/gemini-3-flash-preview"
	defaultLLMReferer        = "https://github.com/Dev-SangWoo/Cookit"
	defaultLLMTitle          = "Cookit Recipe Extraction"
	defaultLLMTimeout        = 90
	defaultQueuePollInterval = 2
	defaultErrorRetry        = 5
	defaultHeartbeatInterval = 15
	defaultHeartbeatTimeout  = 120
	defaultJobTimeoutMinutes = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			LogDir:     defaultLogDir,
			APIBind:    defaultAPIBind,
		},
		Tools: Tools{
			YtDlp:             defaultYtDlpBinary,
			FFmpeg:            defaultFFmpegBinary,
			FFprobe:           defaultFFprobeBinary,
			Tesseract:         defaultTesseractBinary,
			Whisper:           defaultWhisperBinary,
			DownloadTimeout:   defaultDownloadTimeout,
			TranscribeTimeout: defaultTranscribeTimeout,
			OCRTimeout:        defaultOCRTimeout,
		},
		Extraction: Extraction{
			FrameInterval:    defaultFrameInterval,
			CropRegion:       defaultCropRegion,
			OCRLanguages:     []string{"kor", "eng"},
			CaptionLanguages: []string{"ko", "en"},
			DedupeThreshold:  defaultDedupeThreshold,
			WhisperModel:     defaultWhisperModel,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeout,
		},
		Workflow: Workflow{
			QueuePollInterval:  defaultQueuePollInterval,
			ErrorRetryInterval: defaultErrorRetry,
			HeartbeatInterval:  defaultHeartbeatInterval,
			HeartbeatTimeout:   defaultHeartbeatTimeout,
			JobTimeoutMinutes:  defaultJobTimeoutMinutes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
