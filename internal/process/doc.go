// Package process runs the external tools the pipeline depends on
// (yt-dlp, ffmpeg, tesseract, whisper) with uniform timeout handling,
// output capture, and error reporting.
package process
