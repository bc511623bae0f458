package recipe

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	provenanceTag = "ai-generated"

	defaultDescription = "Recipe extracted automatically from the source video."
)

var titleCaser = cases.Title(language.English)

// Meta carries the job-level facts Normalize stamps onto the document.
type Meta struct {
	SourceURL       string
	Platform        string
	VideoID         string
	ProcessingTime  time.Duration
	TextSources     []string
	FusedTextLength int
}

// Normalize applies every defaulting and coercion rule in one pass and
// returns the document ready for persistence. The relative order of
// ingredients and instructions is preserved; only numbering, defaults,
// and invalid values change.
func Normalize(r *Recipe, meta Meta) {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		r.Title = DefaultTitle(meta.Platform)
	}
	r.Description = strings.TrimSpace(r.Description)
	if r.Description == "" {
		r.Description = defaultDescription
	}

	normalized := r.Ingredients[:0]
	for _, ingredient := range r.Ingredients {
		ingredient.Name = strings.TrimSpace(ingredient.Name)
		if ingredient.Name == "" {
			continue
		}
		ingredient.Order = len(normalized) + 1
		normalized = append(normalized, ingredient)
	}
	r.Ingredients = normalized

	steps := r.Instructions[:0]
	for _, instruction := range r.Instructions {
		instruction.Instruction = strings.TrimSpace(instruction.Instruction)
		if instruction.Instruction == "" {
			continue
		}
		instruction.Step = FlexInt(len(steps) + 1)
		normalizeAnchors(&instruction)
		steps = append(steps, instruction)
	}
	r.Instructions = steps

	r.Difficulty = normalizeDifficulty(r.Difficulty)
	r.Tags = appendUnique(r.Tags, provenanceTag)
	if meta.Platform != "" {
		r.Tags = appendUnique(r.Tags, meta.Platform)
	}

	r.SourceURL = meta.SourceURL
	r.AIGenerated = true
	r.Analysis = &AnalysisData{
		VideoID:               meta.VideoID,
		ProcessingTimeSeconds: meta.ProcessingTime.Seconds(),
		TextSources:           meta.TextSources,
		FusedTextLength:       meta.FusedTextLength,
	}
}

// DefaultTitle builds a placeholder title from the source platform.
func DefaultTitle(platform string) string {
	platform = strings.TrimSpace(platform)
	if platform == "" {
		return "Untitled Recipe"
	}
	return titleCaser.String(platform) + " Recipe"
}

// normalizeAnchors clears unparsable video anchors, and clears both
// ends of a pair whose end does not strictly follow its start.
func normalizeAnchors(instruction *Instruction) {
	if instruction.StartTime != "" {
		if _, err := ParseHHMMSS(instruction.StartTime); err != nil {
			instruction.StartTime = ""
		}
	}
	if instruction.EndTime != "" {
		if _, err := ParseHHMMSS(instruction.EndTime); err != nil {
			instruction.EndTime = ""
		}
	}
	if instruction.StartTime != "" && instruction.EndTime != "" {
		if !ValidTimeRange(instruction.StartTime, instruction.EndTime) {
			instruction.StartTime = ""
			instruction.EndTime = ""
		}
	}
}

func normalizeDifficulty(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

func appendUnique(tags []string, tag string) []string {
	for _, existing := range tags {
		if strings.EqualFold(existing, tag) {
			return tags
		}
	}
	return append(tags, tag)
}
