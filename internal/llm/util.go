// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanReviewText normalizes raw provider output into display text: trims
// whitespace, drops code fences, and removes wrapping quotes the model adds
// despite instructions.
func CleanReviewText(text string) string {
	text = CleanJSONBlock(text)

	// Models often return the review wrapped in quotes even when told not to.
	for _, quote := range []struct{ open, close string }{
		{`"`, `"`}, {"“", "”"}, {"'", "'"},
	} {
		if strings.HasPrefix(text, quote.open) && strings.HasSuffix(text, quote.close) && len(text) > len(quote.open)+len(quote.close) {
			text = strings.TrimSpace(text[len(quote.open) : len(text)-len(quote.close)])
			break
		}
	}

	// Collapse any internal newlines; a review renders as one paragraph.
	fields := strings.Fields(text)
	return strings.Join(fields, " ")
}

// CleanJSONBlock removes markdown code block wrappers from responses.
// LLMs often wrap output in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
		return text
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
		return text
	}

	return text
}
