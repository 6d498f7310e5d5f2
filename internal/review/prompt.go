package review

import (
	"fmt"
	"strings"

	"github.com/paresh/review-cards/internal/prompts"
)

const promptFile = "review.json"

// BuildPrompt renders the generation instruction for a request. It is a pure
// function of its inputs: identical requests produce byte-identical prompts.
// Unknown language resolves to English, unknown tone to Professional.
func BuildPrompt(req Request) string {
	rating := clampRating(req.StarRating)
	language := resolveLanguage(req.Language)
	tone := resolveTone(req.Tone)

	useCase := req.UseCase
	if useCase == "" {
		useCase = "their recent visit"
	}

	typeClause := ""
	if req.BusinessType != "" {
		typeClause = prompts.Format(prompts.MustGet(promptFile, "type_clause"), map[string]string{
			"BusinessType": req.BusinessType,
		})
	}

	highlightsClause := ""
	if req.Highlights != "" {
		highlightsClause = prompts.Format(prompts.MustGet(promptFile, "highlights_clause"), map[string]string{
			"Highlights": req.Highlights,
		})
	}

	parts := []string{
		prompts.Format(prompts.MustGet(promptFile, "base"), map[string]string{
			"BusinessName":     req.BusinessName,
			"Category":         req.Category,
			"TypeClause":       typeClause,
			"HighlightsClause": highlightsClause,
			"UseCase":          useCase,
		}),
		prompts.MustGet(promptFile, fmt.Sprintf("sentiment_%d", rating)),
		prompts.MustGet(promptFile, toneKey(tone)),
	}

	if len(req.SelectedServices) > 0 {
		parts = append(parts, prompts.Format(prompts.MustGet(promptFile, "services"), map[string]string{
			"Services": strings.Join(req.SelectedServices, ", "),
		}))
	}

	if language == LanguageEnglish {
		parts = append(parts, prompts.MustGet(promptFile, "language_english"))
	} else {
		parts = append(parts, prompts.Format(prompts.MustGet(promptFile, "language_romanized"), map[string]string{
			"Language": language,
		}))
	}

	parts = append(parts, prompts.MustGet(promptFile, "constraints"))

	return strings.Join(parts, " ")
}

func toneKey(tone string) string {
	switch tone {
	case ToneFriendly:
		return "tone_friendly"
	case ToneGrateful:
		return "tone_grateful"
	default:
		return "tone_professional"
	}
}
