package review

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reconstruct(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

func TestSegments_EmptyMistakes(t *testing.T) {
	text := "A perfectly ordinary review"
	segments := Segments(text, nil)

	require.Len(t, segments, 1)
	assert.Equal(t, text, segments[0].Text)
	assert.False(t, segments[0].IsMistake)
}

func TestSegments_Reconstruction(t *testing.T) {
	texts := []string{
		"The service was excellent and the business quality impressed me",
		"Visited the **spa** and the experience was wonderful overall",
		"excellent business quality service experience recommend",
	}

	for _, text := range texts {
		for seed := int64(0); seed < 20; seed++ {
			final, mistakes := InjectMistakes(text, 3, nil, NewRand(seed))
			segments := Segments(final, mistakes)
			assert.Equal(t, final, reconstruct(segments), "text=%q seed=%d", text, seed)
		}
	}
}

func TestSegments_MistakeSegmentsCarryMetadata(t *testing.T) {
	final, mistakes := InjectMistakes("The service was excellent today friends", 1, nil, NewRand(5))
	require.NotEmpty(t, mistakes)

	segments := Segments(final, mistakes)
	var mistakeSegments []Segment
	for _, s := range segments {
		if s.IsMistake {
			mistakeSegments = append(mistakeSegments, s)
		}
	}
	require.Len(t, mistakeSegments, len(mistakes))
	for i, s := range mistakeSegments {
		assert.Equal(t, mistakes[i].Incorrect, s.Text)
		assert.Equal(t, mistakes[i].Original, s.Original)
		assert.Equal(t, MistakeTypeSpelling, s.Type)
	}
}

func TestSegments_CursorAdvancesByIncorrectLength(t *testing.T) {
	// "excellent" (9) shrinks to an 8-char variant; the tail must stay intact.
	text := "an excellent outing"
	final, mistakes := InjectMistakes(text, 1, nil, NewRand(2))
	require.Len(t, mistakes, 1)

	segments := Segments(final, mistakes)
	assert.Equal(t, final, reconstruct(segments))
	assert.Equal(t, " outing", segments[len(segments)-1].Text)
}

func TestSplitEmphasis(t *testing.T) {
	segments := Segments("Loved the **Deep Cleaning** and the staff", nil)
	split := SplitEmphasis(segments)

	require.Len(t, split, 3)
	assert.Equal(t, "Loved the ", split[0].Text)
	assert.Equal(t, "Deep Cleaning", split[1].Text)
	assert.True(t, split[1].Emphasis)
	assert.Equal(t, " and the staff", split[2].Text)
}

func TestSplitEmphasis_LeavesMistakeSegmentsAlone(t *testing.T) {
	final, mistakes := InjectMistakes("Loved the **Spa** and the excellent staff", 1, nil, NewRand(4))
	require.NotEmpty(t, mistakes)

	split := SplitEmphasis(Segments(final, mistakes))
	for _, s := range split {
		if s.IsMistake {
			assert.NotContains(t, s.Text, "**")
		}
		if s.Emphasis {
			assert.Equal(t, "Spa", s.Text)
		}
	}
}

func TestStripEmphasis(t *testing.T) {
	assert.Equal(t, "Loved the Deep Cleaning and staff",
		StripEmphasis("Loved the **Deep Cleaning** and staff"))
	assert.NotContains(t, StripEmphasis("**a** b **c**"), "*")
}

func TestCheckConstraints(t *testing.T) {
	clean := strings.Repeat("Friendly staff and genuinely careful work. ", 5)
	clean = strings.TrimSpace(clean)
	assert.Empty(t, CheckConstraints(clean))

	violations := CheckConstraints("Amazing! 5 stars to this place.")
	assert.Contains(t, strings.Join(violations, "; "), "exclamation")
	assert.Contains(t, strings.Join(violations, "; "), "stars")
}
