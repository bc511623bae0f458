// Package media wraps the ffmpeg and ffprobe invocations the pipeline
// uses to prepare downloaded videos for extraction: mono 16kHz WAV
// audio for transcription and periodic cropped frames for OCR.
package media
