package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cookit/internal/recipe"
)

// printRecipe renders a recipe document for human consumption. Payloads
// that do not decode as a recipe fall back to raw JSON.
func printRecipe(out io.Writer, payload json.RawMessage) {
	var doc recipe.Recipe
	if err := json.Unmarshal(payload, &doc); err != nil || doc.Title == "" {
		fmt.Fprintln(out, string(payload))
		return
	}

	fmt.Fprintf(out, "%s (%s)\n", doc.Title, doc.Difficulty)
	if doc.Description != "" {
		fmt.Fprintln(out, doc.Description)
	}
	fmt.Fprintln(out)

	if len(doc.Ingredients) > 0 {
		rows := make([][]string, 0, len(doc.Ingredients))
		for _, ing := range doc.Ingredients {
			rows = append(rows, []string{
				strconv.Itoa(ing.Order),
				ing.Name,
				string(ing.Quantity),
				ing.Unit,
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"#", "Ingredient", "Quantity", "Unit"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
		))
		fmt.Fprintln(out)
	}

	for _, step := range doc.Instructions {
		anchor := ""
		if step.StartTime != "" && step.EndTime != "" {
			anchor = fmt.Sprintf(" [%s-%s]", step.StartTime, step.EndTime)
		} else if step.StartTime != "" {
			anchor = fmt.Sprintf(" [%s]", step.StartTime)
		}
		title := step.Title
		if title != "" {
			title += ": "
		}
		fmt.Fprintf(out, "%d.%s %s%s\n", int(step.Step), anchor, title, step.Instruction)
		if step.Tips != "" {
			fmt.Fprintf(out, "   Tip: %s\n", step.Tips)
		}
	}

	if len(doc.Tags) > 0 {
		fmt.Fprintf(out, "\nTags: %s\n", strings.Join(doc.Tags, ", "))
	}
	if doc.SourceURL != "" {
		fmt.Fprintf(out, "Source: %s\n", doc.SourceURL)
	}
}
