package review

import "strings"

// emphasisMarker delimits emphasized service mentions in generated text.
const emphasisMarker = "**"

// Segments partitions text into plain and mistake segments using mistakes
// sorted by ascending position. The cursor advances by the length of each
// mistake's incorrect form, so substitutions that changed word length stay
// aligned. Concatenating the segment texts reconstructs text exactly.
func Segments(text string, mistakes []Mistake) []Segment {
	if len(mistakes) == 0 {
		return []Segment{{Text: text}}
	}

	segments := make([]Segment, 0, len(mistakes)*2+1)
	cursor := 0
	for _, m := range mistakes {
		if m.Position < cursor || m.Position+len(m.Incorrect) > len(text) {
			// Malformed mistake list; emit the rest as plain rather than panic.
			break
		}
		if m.Position > cursor {
			segments = append(segments, Segment{Text: text[cursor:m.Position]})
		}
		segments = append(segments, Segment{
			Text:      m.Incorrect,
			IsMistake: true,
			Original:  m.Original,
			Type:      m.Type,
		})
		cursor = m.Position + len(m.Incorrect)
	}
	if cursor < len(text) {
		segments = append(segments, Segment{Text: text[cursor:]})
	}
	return segments
}

// SplitEmphasis further splits the plain segments of a segment list on
// emphasis markers, tagging the emphasized spans (markers removed). Mistake
// segments pass through untouched; the injector never places mistakes inside
// emphasis spans. Concatenation no longer reconstructs the marked-up string,
// only its rendered form.
func SplitEmphasis(segments []Segment) []Segment {
	var out []Segment
	for _, seg := range segments {
		if seg.IsMistake || !strings.Contains(seg.Text, emphasisMarker) {
			out = append(out, seg)
			continue
		}
		out = append(out, splitEmphasisText(seg.Text)...)
	}
	return out
}

func splitEmphasisText(text string) []Segment {
	var out []Segment
	for _, m := range emphasisPattern.FindAllStringIndex(text, -1) {
		if m[0] > 0 {
			out = append(out, Segment{Text: text[:m[0]]})
		}
		inner := strings.TrimSuffix(strings.TrimPrefix(text[m[0]:m[1]], emphasisMarker), emphasisMarker)
		out = append(out, Segment{Text: inner, Emphasis: true})
		text = text[m[1]:]
		// Re-scan the remainder; FindAllStringIndex positions are relative to
		// the original slice, so restart after each cut.
		return append(out, splitEmphasisText(text)...)
	}
	if text != "" {
		out = append(out, Segment{Text: text})
	}
	return out
}

// StripEmphasis removes all emphasis delimiters from text. This is the
// canonical clipboard/export payload; plain-text output must never contain
// marker characters.
func StripEmphasis(text string) string {
	return strings.ReplaceAll(text, emphasisMarker, "")
}
