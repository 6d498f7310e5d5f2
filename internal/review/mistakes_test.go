package review

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectMistakes_CountBound(t *testing.T) {
	text := "The service was excellent and the business quality impressed me"

	for count := 1; count <= 5; count++ {
		for seed := int64(0); seed < 20; seed++ {
			_, mistakes := InjectMistakes(text, count, nil, NewRand(seed))
			limit := count
			if limit > MaxMistakes {
				limit = MaxMistakes
			}
			assert.LessOrEqual(t, len(mistakes), limit, "count=%d seed=%d", count, seed)
		}
	}
}

func TestInjectMistakes_ExactCountWhenEnoughCandidates(t *testing.T) {
	text := "The service was excellent and the business quality impressed me"

	final, mistakes := InjectMistakes(text, 2, nil, NewRand(3))
	require.Len(t, mistakes, 2)

	for _, m := range mistakes {
		assert.Equal(t, MistakeTypeSpelling, m.Type)
		assert.NotEqual(t, m.Original, m.Incorrect)
		// Position points at the incorrect form inside the final string.
		require.LessOrEqual(t, m.Position+len(m.Incorrect), len(final))
		assert.Equal(t, m.Incorrect, final[m.Position:m.Position+len(m.Incorrect)])
	}

	assert.True(t, sort.SliceIsSorted(mistakes, func(i, j int) bool {
		return mistakes[i].Position < mistakes[j].Position
	}), "positions strictly increasing")
	if len(mistakes) == 2 {
		assert.Less(t, mistakes[0].Position, mistakes[1].Position)
	}
}

func TestInjectMistakes_NoCandidates(t *testing.T) {
	text := "Nothing here matches the dictionary at all"

	final, mistakes := InjectMistakes(text, 3, nil, NewRand(1))
	assert.Equal(t, text, final)
	assert.Empty(t, mistakes)
}

func TestInjectMistakes_EmphasisExcluded(t *testing.T) {
	text := "Book a **spa day** and enjoy the experience"

	for seed := int64(0); seed < 50; seed++ {
		final, mistakes := InjectMistakes(text, 3, nil, NewRand(seed))
		assert.Contains(t, final, "**spa day**", "emphasis span must never be altered (seed %d)", seed)
		for _, m := range mistakes {
			start := strings.Index(text, "**spa day**")
			end := start + len("**spa day**")
			assert.False(t, m.Position < end && m.Position+len(m.Incorrect) > start,
				"mistake %+v overlaps the emphasis span (seed %d)", m, seed)
		}
	}
}

func TestInjectMistakes_ExtraExcludedRanges(t *testing.T) {
	text := "excellent excellent"
	// Exclude the first occurrence; only the second may be altered.
	excluded := []Span{{Start: 0, End: 9}}

	for seed := int64(0); seed < 20; seed++ {
		final, mistakes := InjectMistakes(text, 3, excluded, NewRand(seed))
		assert.True(t, strings.HasPrefix(final, "excellent "), "seed %d", seed)
		require.Len(t, mistakes, 1)
		assert.Equal(t, 10, mistakes[0].Position)
	}
}

func TestInjectMistakes_CasingPreserved(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, incorrect string)
	}{
		{
			name: "capitalized first letter",
			text: "Excellent work from the team overall period",
			check: func(t *testing.T, incorrect string) {
				if strings.EqualFold(incorrect, "excelent") || strings.EqualFold(incorrect, "exellent") {
					assert.Equal(t, strings.ToUpper(incorrect[:1]), incorrect[:1])
				}
			},
		},
		{
			name: "all caps",
			text: "EXCELLENT work from the team",
			check: func(t *testing.T, incorrect string) {
				assert.Equal(t, strings.ToUpper(incorrect), incorrect)
			},
		},
		{
			name: "lowercase",
			text: "truly excellent work",
			check: func(t *testing.T, incorrect string) {
				assert.Equal(t, strings.ToLower(incorrect), incorrect)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(0); seed < 10; seed++ {
				_, mistakes := InjectMistakes(tt.text, 3, nil, NewRand(seed))
				for _, m := range mistakes {
					tt.check(t, m.Incorrect)
				}
			}
		})
	}
}

func TestInjectMistakes_DefaultCountInRange(t *testing.T) {
	text := "excellent business quality service experience recommend"

	for seed := int64(0); seed < 30; seed++ {
		_, mistakes := InjectMistakes(text, 0, nil, NewRand(seed))
		assert.GreaterOrEqual(t, len(mistakes), 1)
		assert.LessOrEqual(t, len(mistakes), MaxMistakes)
	}
}

func TestInjectMistakes_SeededSelectionReproducible(t *testing.T) {
	text := "The service was excellent and the business quality impressed me"

	finalA, mistakesA := InjectMistakes(text, 2, nil, NewRand(99))
	finalB, mistakesB := InjectMistakes(text, 2, nil, NewRand(99))

	assert.Equal(t, finalA, finalB)
	assert.Equal(t, mistakesA, mistakesB)
}

func TestEmphasisSpans(t *testing.T) {
	spans := EmphasisSpans("Book a **spa day** and a **massage** today")
	require.Len(t, spans, 2)
	assert.Equal(t, Span{Start: 7, End: 18}, spans[0])
}
