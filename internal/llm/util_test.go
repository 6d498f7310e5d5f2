package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock_MarkdownCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain JSON",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestCleanReviewText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "trims whitespace",
			input:    "  Great place to visit.  ",
			expected: "Great place to visit.",
		},
		{
			name:     "removes wrapping double quotes",
			input:    `"Great place to visit."`,
			expected: "Great place to visit.",
		},
		{
			name:     "removes smart quotes",
			input:    "“Great place to visit.”",
			expected: "Great place to visit.",
		},
		{
			name:     "keeps interior quotes",
			input:    `They said "welcome" at the door.`,
			expected: `They said "welcome" at the door.`,
		},
		{
			name:     "collapses newlines to one paragraph",
			input:    "Great place.\nWould visit\nagain.",
			expected: "Great place. Would visit again.",
		},
		{
			name:     "strips code fence",
			input:    "```\nGreat place to visit.\n```",
			expected: "Great place to visit.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanReviewText(tt.input))
		})
	}
}
