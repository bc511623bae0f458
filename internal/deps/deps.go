// Package deps verifies the external binaries the pipeline shells out
// to before any job is accepted.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"cookit/internal/config"
)

// Requirement defines an external tool the pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements derives the tool list from configuration. Caption and
// speech extraction degrade gracefully when their tools are missing, so
// tesseract and whisper are optional; acquisition cannot proceed
// without yt-dlp or ffmpeg.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "yt-dlp", Command: cfg.Tools.YtDlp, Description: "video and caption download"},
		{Name: "ffmpeg", Command: cfg.Tools.FFmpeg, Description: "audio extraction and frame sampling"},
		{Name: "ffprobe", Command: cfg.Tools.FFprobe, Description: "media inspection"},
		{Name: "tesseract", Command: cfg.Tools.Tesseract, Description: "on-screen text recognition", Optional: true},
		{Name: "whisper", Command: cfg.Tools.Whisper, Description: "speech transcription", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of required tools that are
// unavailable.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Optional && !status.Available {
			missing = append(missing, status.Name)
		}
	}
	return missing
}
