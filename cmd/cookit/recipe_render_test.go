package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestPrintRecipeRendersDocument(t *testing.T) {
	payload := json.RawMessage(`{
		"title": "김치찌개",
		"description": "A spicy kimchi stew.",
		"difficulty": "easy",
		"ingredients": [
			{"name": "kimchi", "quantity": "300", "unit": "g", "order": 1},
			{"name": "pork belly", "quantity": "200", "unit": "g", "order": 2}
		],
		"instructions": [
			{"step": 1, "title": "Saute", "instruction": "Fry the kimchi.", "start_time": "00:00:10", "end_time": "00:00:45"},
			{"step": 2, "instruction": "Add water and simmer.", "tips": "Use anchovy stock for more depth."}
		],
		"tags": ["ai-generated", "youtube"],
		"source_url": "https://youtu.be/abc",
		"ai_generated": true
	}`)

	var buf bytes.Buffer
	printRecipe(&buf, payload)
	rendered := buf.String()

	for _, expected := range []string{
		"김치찌개 (easy)",
		"kimchi",
		"[00:00:10-00:00:45]",
		"Saute: Fry the kimchi.",
		"Tip: Use anchovy stock",
		"Tags: ai-generated, youtube",
		"Source: https://youtu.be/abc",
	} {
		if !strings.Contains(rendered, expected) {
			t.Errorf("rendered recipe missing %q:\n%s", expected, rendered)
		}
	}
}

func TestPrintRecipeFallsBackToRawJSON(t *testing.T) {
	payload := json.RawMessage(`{"unexpected": "shape"}`)
	var buf bytes.Buffer
	printRecipe(&buf, payload)
	if !strings.Contains(buf.String(), `"unexpected"`) {
		t.Fatalf("expected raw JSON fallback, got %q", buf.String())
	}
}
