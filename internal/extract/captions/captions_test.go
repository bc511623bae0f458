package captions

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cookit/internal/extract"
	"cookit/internal/process"
)

const sampleVTT = `WEBVTT
Kind: captions
Language: ko

00:00:01.000 --> 00:00:03.500 align:start position:0%
양파를 얇게 썰어주세요

00:00:03.500 --> 00:00:06.000
양파를 얇게 썰어주세요

00:00:06.000 --> 00:00:09.000
<b>고추장 2큰술</b>을 넣습니다
`

const sampleSRT = `1
00:00:01,000 --> 00:00:04,000
Slice the onion thinly

2
00:00:04,000 --> 00:00:08,500
Add two tablespoons of gochujang
`

func TestParseCuesVTT(t *testing.T) {
	cues := ParseCues(sampleVTT)
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues after dedupe, got %d: %+v", len(cues), cues)
	}
	if cues[0].Text != "양파를 얇게 썰어주세요" {
		t.Fatalf("unexpected first cue %q", cues[0].Text)
	}
	if cues[0].StartSeconds != 1 || cues[0].EndSeconds != 6 {
		t.Fatalf("merged cue should span both entries: %+v", cues[0])
	}
	if strings.Contains(cues[1].Text, "<b>") {
		t.Fatalf("inline tags not stripped: %q", cues[1].Text)
	}
}

func TestParseCuesSRT(t *testing.T) {
	cues := ParseCues(sampleSRT)
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[1].StartSeconds != 4 || cues[1].EndSeconds != 8.5 {
		t.Fatalf("unexpected timing %+v", cues[1])
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		value string
		want  float64
	}{
		{"00:00:01.000", 1},
		{"00:01:30,250", 90.25},
		{"01:00:00.000", 3600},
		{"02:15.500", 135.5},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.value)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q): %v", tc.value, err)
		}
		if got != tc.want {
			t.Fatalf("ParseTimestamp(%q): got %v want %v", tc.value, got, tc.want)
		}
	}
	for _, bad := range []string{"", "abc", "1.5", "00:xx:00.000"} {
		if _, err := ParseTimestamp(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp(3725.9); got != "01:02:05" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := FormatTimestamp(-3); got != "00:00:00" {
		t.Fatalf("negative should clamp, got %q", got)
	}
}

type captionRunner struct {
	write map[string]string
}

func (c *captionRunner) Run(_ context.Context, cmd process.Command) (process.Result, error) {
	for name, content := range c.write {
		if err := os.WriteFile(filepath.Join(cmd.Dir, name), []byte(content), 0o644); err != nil {
			return process.Result{}, err
		}
	}
	return process.Result{}, nil
}

func TestFetcherPrefersConfiguredLanguage(t *testing.T) {
	runner := &captionRunner{write: map[string]string{
		"captions.en.vtt": "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nenglish cue\n",
		"captions.ko.vtt": "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n한국어 자막\n",
	}}
	fetcher := NewFetcher(runner, "yt-dlp", []string{"ko", "en"}, time.Minute)
	result, err := fetcher.Extract(context.Background(), extract.Input{
		VideoURL: "https://youtu.be/abc",
		WorkDir:  t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(result.Text, "한국어 자막") {
		t.Fatalf("expected korean track, got %q", result.Text)
	}
	if len(result.Hints) != 1 || result.Hints[0].At != "00:00:01" {
		t.Fatalf("unexpected hints %+v", result.Hints)
	}
}

func TestFetcherNoTracksYieldsEmptyResult(t *testing.T) {
	fetcher := NewFetcher(&captionRunner{}, "yt-dlp", nil, time.Minute)
	result, err := fetcher.Extract(context.Background(), extract.Input{
		VideoURL: "https://youtu.be/abc",
		WorkDir:  t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if result.Text != "" || len(result.Hints) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestBuildFetchArgs(t *testing.T) {
	args := BuildFetchArgs("https://youtu.be/abc", "/work/captions", []string{"ko", "en"})
	joined := strings.Join(args, " ")
	for _, want := range []string{"--skip-download", "--write-subs", "--write-auto-subs", "--sub-langs ko,en"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("args missing %q: %s", want, joined)
		}
	}
}
