// Package review implements the review-generation pipeline: prompt building,
// provider retry orchestration with duplicate rejection, curated fallbacks,
// deliberate-misspelling injection, and display segmentation.
package review

// Supported languages for generation and fallback pools.
const (
	LanguageEnglish  = "English"
	LanguageHindi    = "Hindi"
	LanguageGujarati = "Gujarati"
)

// SupportedLanguages lists the languages the pipeline knows how to handle.
// Anything else resolves to English.
var SupportedLanguages = []string{LanguageEnglish, LanguageHindi, LanguageGujarati}

// Supported tones for prompt phrasing.
const (
	ToneProfessional = "Professional"
	ToneFriendly     = "Friendly"
	ToneGrateful     = "Grateful"
)

// Generation source tags describing what user action triggered the call.
const (
	SourceAuto    = "auto"    // initial card load
	SourceService = "service" // service-selection change
	SourceManual  = "manual"  // explicit regenerate
)

// Request describes one generation call.
type Request struct {
	BusinessName     string
	Category         string
	BusinessType     string
	Highlights       string
	SelectedServices []string
	StarRating       int // 1-5
	Language         string
	Tone             string
	UseCase          string
	Source           string
}

// Result is the outcome of a pipeline invocation. Text may contain emphasis
// markers around service names; Hash is the fingerprint of Text.
type Result struct {
	Text     string
	Hash     string
	Language string
	Rating   int
	Fallback bool
}

// Mistake records one deliberate alteration. Position is the byte offset of
// Incorrect within the final, fully substituted string.
type Mistake struct {
	Original  string `json:"original"`
	Incorrect string `json:"incorrect"`
	Position  int    `json:"position"`
	Type      string `json:"type"`
}

// MistakeTypeSpelling is the only mistake kind currently produced.
const MistakeTypeSpelling = "spelling"

// Segment is one rendering unit. Concatenating the Text of all segments for a
// string reconstructs that string exactly.
type Segment struct {
	Text      string `json:"text"`
	IsMistake bool   `json:"is_mistake"`
	Emphasis  bool   `json:"emphasis,omitempty"`
	Original  string `json:"original,omitempty"`
	Type      string `json:"type,omitempty"`
}

// ArchiveRecord is the flattened per-generation record handed to the review
// archive. ReviewText carries no emphasis markers.
type ArchiveRecord struct {
	BusinessName string
	Category     string
	Rating       int
	Language     string
	Tone         string
	Services     []string
	ReviewText   string
	Fallback     bool
	Source       string
}

// NewArchiveRecord flattens a request/result pair for the archive boundary.
func NewArchiveRecord(req Request, res Result) ArchiveRecord {
	source := req.Source
	switch source {
	case SourceAuto, SourceService, SourceManual:
	default:
		source = SourceAuto
	}
	return ArchiveRecord{
		BusinessName: req.BusinessName,
		Category:     req.Category,
		Rating:       res.Rating,
		Language:     res.Language,
		Tone:         resolveTone(req.Tone),
		Services:     req.SelectedServices,
		ReviewText:   StripEmphasis(res.Text),
		Fallback:     res.Fallback,
		Source:       source,
	}
}

// resolveLanguage maps unknown or empty languages to English.
func resolveLanguage(language string) string {
	for _, l := range SupportedLanguages {
		if l == language {
			return l
		}
	}
	return LanguageEnglish
}

// resolveTone maps unknown or empty tones to Professional.
func resolveTone(tone string) string {
	switch tone {
	case ToneProfessional, ToneFriendly, ToneGrateful:
		return tone
	}
	return ToneProfessional
}

// clampRating forces a rating into the 1-5 range.
func clampRating(rating int) int {
	if rating < 1 {
		return 1
	}
	if rating > 5 {
		return 5
	}
	return rating
}
