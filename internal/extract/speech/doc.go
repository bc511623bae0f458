// Package speech transcribes the staged audio track with the whisper
// CLI and exposes segment-level timing to the rest of the pipeline.
package speech
