package synth

import (
	"context"
	"log/slog"
	"time"

	"cookit/internal/extract"
	"cookit/internal/logging"
	"cookit/internal/recipe"
	"cookit/internal/services"
	"cookit/internal/services/llm"
)

// Completer is the slice of the LLM client the synthesizer needs.
type Completer interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// HealthChecker is implemented by completers that can verify the model
// endpoint is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Synthesizer builds prompts, calls the model, and normalizes the
// parsed document.
type Synthesizer struct {
	completer Completer
	logger    *slog.Logger
}

// New constructs a Synthesizer.
func New(completer Completer, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Synthesizer{completer: completer, logger: logger}
}

// Health checks the model endpoint when the completer supports it.
func (s *Synthesizer) Health(ctx context.Context) error {
	if checker, ok := s.completer.(HealthChecker); ok {
		return checker.HealthCheck(ctx)
	}
	return nil
}

// Request carries a fusion result plus the job facts stamped onto the
// final document.
type Request struct {
	Fusion    extract.Fusion
	SourceURL string
	Platform  string
	VideoID   string
	StartedAt time.Time
}

// Synthesize produces the normalized recipe document for a fusion
// result. Model and parse failures wrap services.ErrSynthesis.
func (s *Synthesizer) Synthesize(ctx context.Context, req Request) (*recipe.Recipe, error) {
	userPrompt := BuildUserPrompt(req.Fusion.Text, req.Fusion.Hints)
	content, err := s.completer.CompleteJSON(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, services.Wrap(services.ErrSynthesis, "synthesize", "complete", "model call failed", err)
	}

	var doc recipe.Recipe
	if err := llm.DecodeLLMJSON(content, &doc); err != nil {
		return nil, services.Wrap(services.ErrSynthesis, "synthesize", "parse", "model payload unparsable", err)
	}

	sources := make([]string, 0, len(req.Fusion.Sources))
	for _, source := range req.Fusion.Sources {
		sources = append(sources, string(source))
	}
	recipe.Normalize(&doc, recipe.Meta{
		SourceURL:       req.SourceURL,
		Platform:        req.Platform,
		VideoID:         req.VideoID,
		ProcessingTime:  time.Since(req.StartedAt),
		TextSources:     sources,
		FusedTextLength: len(req.Fusion.Text),
	})

	s.logger.Info("recipe synthesized",
		logging.String(logging.FieldVideoID, req.VideoID),
		logging.Int("ingredients", len(doc.Ingredients)),
		logging.Int("instructions", len(doc.Instructions)))
	return &doc, nil
}
