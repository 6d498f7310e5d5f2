package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_Deterministic(t *testing.T) {
	req := Request{
		BusinessName:     "Joe's Cafe",
		Category:         "restaurant",
		BusinessType:     "cafe",
		Highlights:       "family-run, open since 1998",
		SelectedServices: []string{"Filter Coffee", "Breakfast"},
		StarRating:       5,
		Language:         LanguageEnglish,
		Tone:             ToneFriendly,
	}

	first := BuildPrompt(req)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildPrompt(req), "prompt must be byte-identical across calls")
	}
}

func TestBuildPrompt_Content(t *testing.T) {
	req := Request{
		BusinessName: "Joe's Cafe",
		Category:     "restaurant",
		StarRating:   5,
		Language:     LanguageEnglish,
	}

	prompt := BuildPrompt(req)
	assert.Contains(t, prompt, "Joe's Cafe")
	assert.Contains(t, prompt, "restaurant")
	assert.Contains(t, prompt, "delighted", "rating 5 uses the enthusiastic sentiment guidance")
	assert.Contains(t, prompt, "No exclamation marks")
	assert.NotContains(t, prompt, "double asterisks", "no service instructions without selected services")
}

func TestBuildPrompt_ServicesOnlyWhenSelected(t *testing.T) {
	req := Request{BusinessName: "Glow Salon", Category: "salon", StarRating: 4}

	without := BuildPrompt(req)
	assert.NotContains(t, without, "**")

	req.SelectedServices = []string{"Haircut", "Spa"}
	with := BuildPrompt(req)
	assert.Contains(t, with, "Haircut, Spa")
	assert.Contains(t, with, "double asterisks")
}

func TestBuildPrompt_RomanizedForNonEnglish(t *testing.T) {
	for _, language := range []string{LanguageHindi, LanguageGujarati} {
		t.Run(language, func(t *testing.T) {
			prompt := BuildPrompt(Request{BusinessName: "Shree Traders", Category: "shop", StarRating: 4, Language: language})
			assert.Contains(t, prompt, "Latin letters only")
			assert.Contains(t, prompt, language)
			assert.NotContains(t, prompt, "everyday English")
		})
	}
}

func TestBuildPrompt_Defaults(t *testing.T) {
	prompt := BuildPrompt(Request{BusinessName: "Shree Traders", Category: "shop", StarRating: 3, Language: "Klingon", Tone: "Sarcastic"})
	assert.Contains(t, prompt, "everyday English", "unknown language defaults to English")
	assert.Contains(t, prompt, "professional, measured", "unknown tone defaults to Professional")
}

func TestBuildPrompt_SentimentPerRating(t *testing.T) {
	seen := make(map[string]bool)
	for rating := 1; rating <= 5; rating++ {
		prompt := BuildPrompt(Request{BusinessName: "X", Category: "shop", StarRating: rating})
		assert.False(t, seen[prompt], "each rating should produce distinct guidance")
		seen[prompt] = true
	}
}
