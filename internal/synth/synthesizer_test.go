package synth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cookit/internal/extract"
	"cookit/internal/services"
)

type fakeCompleter struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
}

func (f *fakeCompleter) CompleteJSON(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	return f.response, f.err
}

func TestSynthesizeParsesAndNormalizes(t *testing.T) {
	completer := &fakeCompleter{response: "```json\n" + `{
		"title": "양파 볶음",
		"ingredients": [{"name": "양파", "quantity": 1, "unit": "개"}],
		"instructions": [
			{"step": 2, "instruction": "양파를 썬다", "time_minutes": "2분"},
			{"step": 1, "instruction": "볶는다"}
		],
		"difficulty": "expert"
	}` + "\n```"}
	s := New(completer, nil)

	doc, err := s.Synthesize(context.Background(), Request{
		Fusion: extract.Fusion{
			Text:    "## On-screen text\n양파를 썬다, 2분",
			Sources: []extract.Source{extract.SourceOnScreen},
			Hints:   []extract.TimeHint{{At: "00:00:10", Text: "양파를 썬다"}},
		},
		SourceURL: "https://youtu.be/abc",
		Platform:  "youtube",
		VideoID:   "youtube-0123456789abcdef",
		StartedAt: time.Now().Add(-30 * time.Second),
	})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(doc.Instructions) < 1 || int(doc.Instructions[0].Step) != 1 {
		t.Fatalf("steps not reindexed: %+v", doc.Instructions)
	}
	if len(doc.Ingredients) != 1 || !strings.Contains(doc.Ingredients[0].Name, "양파") {
		t.Fatalf("unexpected ingredients %+v", doc.Ingredients)
	}
	if doc.Difficulty != "medium" {
		t.Fatalf("unknown difficulty should default: %q", doc.Difficulty)
	}
	if !doc.AIGenerated || doc.SourceURL != "https://youtu.be/abc" {
		t.Fatalf("provenance missing: %+v", doc)
	}
	if doc.Analysis == nil || doc.Analysis.TextSources[0] != "on_screen" {
		t.Fatalf("analysis data missing: %+v", doc.Analysis)
	}
	if !strings.Contains(completer.lastUser, "[00:00:10] 양파를 썬다") {
		t.Fatalf("timestamp hints missing from prompt:\n%s", completer.lastUser)
	}
	if !strings.Contains(completer.lastSystem, "Respond with JSON only") {
		t.Fatal("system prompt must demand JSON-only output")
	}
}

func TestSynthesizeModelFailureIsSynthesisError(t *testing.T) {
	s := New(&fakeCompleter{err: errors.New("upstream down")}, nil)
	_, err := s.Synthesize(context.Background(), Request{})
	if !errors.Is(err, services.ErrSynthesis) {
		t.Fatalf("expected synthesis marker, got %v", err)
	}
}

func TestSynthesizeUnparsablePayloadIsSynthesisError(t *testing.T) {
	s := New(&fakeCompleter{response: "I could not find a recipe, sorry!"}, nil)
	_, err := s.Synthesize(context.Background(), Request{})
	if !errors.Is(err, services.ErrSynthesis) {
		t.Fatalf("expected synthesis marker, got %v", err)
	}
}

func TestHealthWithoutCheckSupportIsHealthy(t *testing.T) {
	// fakeCompleter has no HealthCheck; the synthesizer must not treat
	// that as a failure.
	s := New(&fakeCompleter{}, nil)
	if err := s.Health(context.Background()); err != nil {
		t.Fatalf("expected nil health for a completer without a check, got %v", err)
	}
}

func TestBuildUserPromptWithoutHints(t *testing.T) {
	prompt := BuildUserPrompt("## Spoken transcript\nboil water", nil)
	if strings.Contains(prompt, "Timestamped hints") {
		t.Fatal("hint section should be omitted when empty")
	}
	if !strings.Contains(prompt, "boil water") {
		t.Fatalf("fused text missing:\n%s", prompt)
	}
}
