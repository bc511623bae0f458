package synth

import (
	"fmt"
	"strings"

	"cookit/internal/extract"
)

// systemPrompt states the exact target schema field by field and
// forbids anything but JSON in the response.
const systemPrompt = `You are a recipe extraction engine. You convert raw text extracted from a cooking video into exactly one JSON document.

Respond with JSON only. No markdown, no code fences, no commentary.

The JSON document must have exactly this shape:
{
  "title": string,                    // short recipe name
  "description": string,              // one or two sentences
  "ingredients": [
    {
      "name": string,                 // required
      "quantity": string,             // "" if unknown
      "unit": string,                 // "" if unknown
      "order": number                 // 1-based position
    }
  ],
  "instructions": [
    {
      "step": number,                 // 1-based position
      "title": string,                // short step label
      "instruction": string,          // what to do
      "time_minutes": number,         // omit if unknown
      "temperature_c": number,        // omit if unknown
      "tips": string,                 // omit if none
      "start_time": "HH:MM:SS",       // position in the source video, omit if unknown
      "end_time": "HH:MM:SS"          // must be later than start_time, omit if unknown
    }
  ],
  "nutrition_info": {                 // null if not stated in the text
    "calories": number,
    "carbs": number,
    "protein": number,
    "fat": number,
    "serving_size": string
  },
  "tags": [string],
  "difficulty": "easy" | "medium" | "hard"
}

Rules:
- Use only facts present in the provided text. Do not invent ingredients or steps.
- Keep the language of the source text for names and instructions.
- When the text carries timestamped hints, use them to fill start_time and end_time.
- If the text truly describes no recipe, return a document with empty ingredients and instructions arrays.`

// BuildUserPrompt assembles the user message from the fused text and
// its timestamp hints.
func BuildUserPrompt(fusedText string, hints []extract.TimeHint) string {
	var builder strings.Builder
	builder.WriteString("Extracted text from the cooking video:\n\n")
	builder.WriteString(strings.TrimSpace(fusedText))
	if len(hints) > 0 {
		builder.WriteString("\n\nTimestamped hints (position in video, observed text):\n")
		for _, hint := range hints {
			fmt.Fprintf(&builder, "- [%s] %s\n", hint.At, hint.Text)
		}
	}
	return builder.String()
}
