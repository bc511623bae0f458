package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers for the pipeline failure taxonomy. Only the fatal markers
// terminate a job; extraction faults are absorbed at the modality boundary.
var (
	// ErrAcquisition means media download or transcode failed. Fatal: no
	// extractor can run without local media.
	ErrAcquisition = errors.New("acquisition error")
	// ErrExtraction marks a single-modality failure. Non-fatal; the modality
	// degrades to an unsuccessful result and fusion continues without it.
	ErrExtraction = errors.New("extraction error")
	// ErrFusionEmpty means every modality failed or produced no text. Fatal,
	// and distinct from a synthesis failure so callers can report "nothing
	// to analyze".
	ErrFusionEmpty = errors.New("no extractable text")
	// ErrSynthesis means the model call failed or its payload was unusable.
	ErrSynthesis = errors.New("synthesis error")
	// ErrPersistence means the recipe could not be stored. Fatal, no retry.
	ErrPersistence = errors.New("persistence error")
	// ErrTimeout means the wall-clock budget expired or an external tool ran
	// past its deadline.
	ErrTimeout = errors.New("timeout")
	// ErrExternalTool marks a failed external command invocation.
	ErrExternalTool = errors.New("external tool error")
	// ErrConfiguration marks unusable runtime configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// UserMessage maps a job failure to the message surfaced through the status
// endpoint.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFusionEmpty):
		return "nothing to analyze: no text could be extracted from this video"
	case errors.Is(err, ErrTimeout):
		return "analysis timed out"
	default:
		return strings.TrimSpace(err.Error())
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
