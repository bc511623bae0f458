package deps

import (
	"testing"

	"cookit/internal/config"
)

func TestCheckBinariesReportsMissing(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "shell", Command: "sh", Description: "posix shell"},
		{Name: "ghost", Command: "definitely-not-a-real-binary-xyz", Description: "absent"},
		{Name: "blank", Command: "  ", Description: "unconfigured", Optional: true},
	})
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatalf("sh should be available: %+v", statuses[0])
	}
	if statuses[1].Available {
		t.Fatal("missing binary reported available")
	}
	if statuses[2].Available || statuses[2].Detail != "command not configured" {
		t.Fatalf("unexpected blank status: %+v", statuses[2])
	}
}

func TestMissingRequiredSkipsOptional(t *testing.T) {
	missing := MissingRequired([]Status{
		{Name: "yt-dlp", Available: false},
		{Name: "tesseract", Available: false, Optional: true},
		{Name: "ffmpeg", Available: true},
	})
	if len(missing) != 1 || missing[0] != "yt-dlp" {
		t.Fatalf("unexpected missing set %v", missing)
	}
}

func TestRequirementsFollowConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.YtDlp = "custom-yt-dlp"
	reqs := Requirements(&cfg)
	if reqs[0].Command != "custom-yt-dlp" {
		t.Fatalf("expected configured command, got %q", reqs[0].Command)
	}
	for _, req := range reqs {
		if req.Name == "tesseract" || req.Name == "whisper" {
			if !req.Optional {
				t.Fatalf("%s should be optional", req.Name)
			}
		}
	}
}
