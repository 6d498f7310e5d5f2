package review

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// MaxMistakes bounds how many deliberate misspellings a single review gets.
const MaxMistakes = 3

// misspellings maps correct words to their deliberate variants. Keys are
// lowercase; matching is case-insensitive on whole words.
var misspellings = map[string][]string{
	"excellent":    {"excelent", "exellent"},
	"business":     {"buisness", "bussiness"},
	"quality":      {"qualaty", "qwality"},
	"service":      {"servise", "serivce"},
	"experience":   {"experiance", "expirience"},
	"recommend":    {"recomend", "reccommend"},
	"definitely":   {"definately", "definitly"},
	"professional": {"proffesional", "professionel"},
	"atmosphere":   {"atmoshpere"},
	"friendly":     {"freindly"},
	"received":     {"recieved"},
	"beautiful":    {"beutiful"},
	"wonderful":    {"wonderfull"},
	"amazing":      {"amaizing"},
	"really":       {"realy"},
	"overall":      {"overal"},
	"satisfied":    {"satisfed"},
	"convenient":   {"convienient"},
}

// mistakePatterns holds a compiled whole-word pattern per dictionary key.
var mistakePatterns = compileMistakePatterns()

func compileMistakePatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(misspellings))
	for word := range misspellings {
		patterns[word] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return patterns
}

// Span is a half-open character range [Start, End) excluded from injection.
type Span struct {
	Start int
	End   int
}

func (s Span) overlaps(start, end int) bool {
	return start < s.End && end > s.Start
}

// emphasisPattern matches **emphasized** spans including their markers.
var emphasisPattern = regexp.MustCompile(`\*\*[^*]+\*\*`)

// EmphasisSpans returns the spans of all emphasis-marked substrings in text,
// markers included.
func EmphasisSpans(text string) []Span {
	matches := emphasisPattern.FindAllStringIndex(text, -1)
	spans := make([]Span, 0, len(matches))
	for _, m := range matches {
		spans = append(spans, Span{Start: m[0], End: m[1]})
	}
	return spans
}

// candidate is one dictionary word occurrence eligible for substitution.
type candidate struct {
	word    string // dictionary key (lowercase)
	matched string // text as it appears in the input
	start   int
}

// InjectMistakes substitutes up to count dictionary words in text with
// deliberate misspellings, never touching emphasis spans or extraExcluded
// ranges. count <= 0 requests a random 1-3. Returned mistakes are sorted by
// ascending position, positions computed against the returned string. Texts
// with no eligible words come back unchanged with no mistakes.
func InjectMistakes(text string, count int, extraExcluded []Span, rng *Rand) (string, []Mistake) {
	if count <= 0 {
		count = 1 + rng.Intn(MaxMistakes)
	}
	if count > MaxMistakes {
		count = MaxMistakes
	}

	excluded := append(EmphasisSpans(text), extraExcluded...)

	var candidates []candidate
	for word, pattern := range mistakePatterns {
		for _, m := range pattern.FindAllStringIndex(text, -1) {
			if overlapsAny(excluded, m[0], m[1]) {
				continue
			}
			candidates = append(candidates, candidate{
				word:    word,
				matched: text[m[0]:m[1]],
				start:   m[0],
			})
		}
	}
	if len(candidates) == 0 {
		return text, nil
	}

	// Map iteration order is random but not seedable; sort before shuffling so
	// a seeded rng yields a reproducible selection.
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].start < candidates[j].start })
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if count > len(candidates) {
		count = len(candidates)
	}
	selected := candidates[:count]

	// Substitute right-to-left so earlier offsets stay valid while editing.
	sort.Slice(selected, func(i, j int) bool { return selected[i].start > selected[j].start })

	result := text
	mistakes := make([]Mistake, 0, len(selected))
	for _, c := range selected {
		variants := misspellings[c.word]
		incorrect := matchCase(c.matched, variants[rng.Intn(len(variants))])
		result = result[:c.start] + incorrect + result[c.start+len(c.matched):]
		mistakes = append(mistakes, Mistake{
			Original:  c.matched,
			Incorrect: incorrect,
			Position:  c.start,
			Type:      MistakeTypeSpelling,
		})
	}

	// Positions were recorded against the original string; shift each one by
	// the length deltas of all substitutions to its left.
	sort.Slice(mistakes, func(i, j int) bool { return mistakes[i].Position < mistakes[j].Position })
	delta := 0
	for i := range mistakes {
		mistakes[i].Position += delta
		delta += len(mistakes[i].Incorrect) - len(mistakes[i].Original)
	}

	return result, mistakes
}

func overlapsAny(spans []Span, start, end int) bool {
	for _, s := range spans {
		if s.overlaps(start, end) {
			return true
		}
	}
	return false
}

// matchCase transfers the casing pattern of original onto variant:
// all-caps stays all-caps, a capitalized first letter stays capitalized,
// anything else comes out lowercase.
func matchCase(original, variant string) string {
	if original == strings.ToUpper(original) && strings.ContainsFunc(original, unicode.IsLetter) && original != strings.ToLower(original) {
		return strings.ToUpper(variant)
	}
	runes := []rune(original)
	if len(runes) > 0 && unicode.IsUpper(runes[0]) {
		vr := []rune(variant)
		vr[0] = unicode.ToUpper(vr[0])
		return string(vr)
	}
	return strings.ToLower(variant)
}
