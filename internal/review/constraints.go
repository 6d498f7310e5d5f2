package review

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Length window the prompt asks the provider to stay inside.
const (
	MinReviewLength = 160
	MaxReviewLength = 320
)

var numericRatingPattern = regexp.MustCompile(`\b[1-5]\s*[-/]?\s*star`)

// CheckConstraints reports which of the prompt's hard formatting rules a
// generated text violates. The orchestrator intentionally does not enforce
// these (provider output is accepted as-is today); callers may log or surface
// the violations for review.
func CheckConstraints(text string) []string {
	var violations []string

	stripped := StripEmphasis(text)
	if len(stripped) < MinReviewLength {
		violations = append(violations, fmt.Sprintf("shorter than %d characters", MinReviewLength))
	}
	if len(stripped) > MaxReviewLength {
		violations = append(violations, fmt.Sprintf("longer than %d characters", MaxReviewLength))
	}
	if strings.Contains(text, "!") {
		violations = append(violations, "contains exclamation mark")
	}
	lower := strings.ToLower(text)
	if strings.Contains(lower, "star") || numericRatingPattern.MatchString(lower) {
		violations = append(violations, "mentions rating or stars")
	}
	if containsNonLatinScript(text) {
		violations = append(violations, "contains non-Latin script")
	}

	return violations
}

// containsNonLatinScript detects native-script leakage in reviews that were
// asked for in Romanized transliteration.
func containsNonLatinScript(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) && !unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}
