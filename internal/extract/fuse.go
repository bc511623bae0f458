package extract

import (
	"fmt"
	"strings"

	"cookit/internal/services"
)

// fusionOrder fixes how modalities are arranged in the fused document.
// On-screen text is the most reliable signal for quantities in cooking
// videos, so it leads; the spoken transcript is noisiest and goes last.
var fusionOrder = []Source{SourceOnScreen, SourceCaption, SourceSpoken}

var sectionHeaders = map[Source]string{
	SourceOnScreen: "## On-screen text",
	SourceCaption:  "## Platform captions",
	SourceSpoken:   "## Spoken transcript",
}

// Fusion is the combined extraction output handed to synthesis.
type Fusion struct {
	Text    string
	Sources []Source
	Hints   []TimeHint
}

// Fuse merges settled extraction results into one document. Sections
// appear in fixed priority order independent of result slice order.
// When no modality produced text, Fuse returns an error wrapping
// services.ErrFusionEmpty.
func Fuse(results []Result) (Fusion, error) {
	bySource := make(map[Source]Result, len(results))
	for _, result := range results {
		if result.Succeeded() {
			bySource[result.Source] = result
		}
	}

	var fusion Fusion
	var sections []string
	for _, source := range fusionOrder {
		result, ok := bySource[source]
		if !ok {
			continue
		}
		text := strings.TrimSpace(result.Text)
		if text == "" {
			continue
		}
		sections = append(sections, sectionHeaders[source]+"\n"+text)
		fusion.Sources = append(fusion.Sources, source)
		fusion.Hints = append(fusion.Hints, result.Hints...)
	}

	if len(sections) == 0 {
		return Fusion{}, fmt.Errorf("fuse extraction results: %w", services.ErrFusionEmpty)
	}
	fusion.Text = strings.Join(sections, "\n\n")
	return fusion, nil
}
