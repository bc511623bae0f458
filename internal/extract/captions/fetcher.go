package captions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cookit/internal/extract"
	"cookit/internal/process"
	"cookit/internal/services"
)

// Fetcher downloads subtitle tracks with yt-dlp and turns them into an
// extraction result.
type Fetcher struct {
	runner    process.Runner
	binary    string
	languages []string
	timeout   time.Duration
}

// NewFetcher constructs a Fetcher. languages is the preference order
// for subtitle tracks (ISO codes as yt-dlp expects them).
func NewFetcher(runner process.Runner, binary string, languages []string, timeout time.Duration) *Fetcher {
	if binary == "" {
		binary = "yt-dlp"
	}
	if len(languages) == 0 {
		languages = []string{"ko", "en"}
	}
	return &Fetcher{runner: runner, binary: binary, languages: languages, timeout: timeout}
}

// Source implements extract.Extractor.
func (f *Fetcher) Source() extract.Source {
	return extract.SourceCaption
}

// Extract downloads available subtitle tracks for the video URL and
// flattens the best matching track into text. Videos without captions
// yield an empty result rather than an error.
func (f *Fetcher) Extract(ctx context.Context, input extract.Input) (extract.Result, error) {
	var result extract.Result
	captionDir := filepath.Join(input.WorkDir, "captions")
	if err := os.MkdirAll(captionDir, 0o755); err != nil {
		return result, services.Wrap(services.ErrExtraction, "extract", "captions", "ensure caption dir", err)
	}

	_, err := f.runner.Run(ctx, process.Command{
		Name:    f.binary,
		Args:    BuildFetchArgs(input.VideoURL, captionDir, f.languages),
		Dir:     captionDir,
		Timeout: f.timeout,
	})
	if err != nil {
		return result, services.Wrap(services.ErrExtraction, "extract", "captions", "yt-dlp subtitle fetch", err)
	}

	track, err := pickTrack(captionDir, f.languages)
	if err != nil {
		return result, services.Wrap(services.ErrExtraction, "extract", "captions", "list tracks", err)
	}
	if track == "" {
		return result, nil
	}

	data, err := os.ReadFile(track)
	if err != nil {
		return result, services.Wrap(services.ErrExtraction, "extract", "captions", "read track", err)
	}
	cues := ParseCues(string(data))
	if len(cues) == 0 {
		return result, nil
	}

	lines := make([]string, 0, len(cues))
	hints := make([]extract.TimeHint, 0, len(cues))
	for _, cue := range cues {
		lines = append(lines, cue.Text)
		hints = append(hints, extract.TimeHint{At: FormatTimestamp(cue.StartSeconds), Text: cue.Text})
	}
	result.Text = strings.Join(lines, "\n")
	result.Hints = hints
	return result, nil
}

// BuildFetchArgs constructs yt-dlp arguments that download subtitle
// tracks only.
func BuildFetchArgs(videoURL, destDir string, languages []string) []string {
	return []string{
		"--skip-download",
		"--no-playlist",
		"--no-progress",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", strings.Join(languages, ","),
		"--output", filepath.Join(destDir, "captions.%(ext)s"),
		videoURL,
	}
}

// pickTrack chooses the subtitle file matching the earliest preferred
// language, falling back to any track. Track files are named
// "captions.<lang>.vtt" (or .srt) by yt-dlp.
func pickTrack(dir string, languages []string) (string, error) {
	var tracks []string
	for _, ext := range []string{"*.vtt", "*.srt"} {
		matches, err := filepath.Glob(filepath.Join(dir, ext))
		if err != nil {
			return "", err
		}
		tracks = append(tracks, matches...)
	}
	if len(tracks) == 0 {
		return "", nil
	}
	sort.Strings(tracks)
	for _, lang := range languages {
		marker := fmt.Sprintf(".%s.", lang)
		for _, track := range tracks {
			if strings.Contains(filepath.Base(track), marker) {
				return track, nil
			}
		}
	}
	return tracks[0], nil
}
