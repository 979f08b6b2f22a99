package llm

import (
	"fmt"
	"strings"
)

// BuildSheetSystemPrompt returns the fixed instruction prompt for converting
// one Excel sheet into structured Markdown.
func BuildSheetSystemPrompt() string {
	return `You are an expert at converting Excel sheets into readable, structured Markdown documents.

TASK:
Convert the provided Excel sheet content into structured Markdown.

OUTPUT REQUIREMENTS:
- Use the sheet name as a heading (## sheet name)
- Render tabular data as Markdown tables
- Drop empty rows and meaningless data
- Recognize headings and labels and structure them appropriately
- Preserve the original formatting of numbers, dates, and text

RULES:
- Output Markdown only
- No explanations or commentary
- Convert the data faithfully`
}

// BuildSheetUserPrompt serializes one sheet's grid into the user prompt:
// cells joined by " | ", rows joined by newlines, wrapped with a labeled
// header naming the sheet. Missing cells are rendered as empty strings by
// the decoder, so every row serializes to the full grid width.
func BuildSheetUserPrompt(sheetName string, rows [][]string) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, strings.Join(row, " | "))
	}
	return fmt.Sprintf("--- Excel sheet %q ---\n%s", sheetName, strings.Join(lines, "\n"))
}
