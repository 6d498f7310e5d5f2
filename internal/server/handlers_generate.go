package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/paresh/review-cards/internal/db"
	"github.com/paresh/review-cards/internal/review"
)

// handleGetCardBySlug returns the public card configuration for a card page.
func (s *Server) handleGetCardBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	card, err := s.db.GetCardBySlug(r.Context(), slug)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to load card")
		return
	}
	if card == nil {
		errorResponse(w, http.StatusNotFound, "card not found")
		return
	}

	jsonResponse(w, http.StatusOK, card)
}

// handleCardView records one page view for a card.
func (s *Server) handleCardView(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	card, err := s.db.GetCardBySlug(r.Context(), slug)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to load card")
		return
	}
	if card == nil {
		errorResponse(w, http.StatusNotFound, "card not found")
		return
	}

	if err := s.db.IncrementViews(r.Context(), card.ID); err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to record view")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]int64{"view_count": card.ViewCount + 1})
}

// handleGenerate runs the review pipeline for a card and archives the result.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	card, err := s.db.GetCardBySlug(r.Context(), slug)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to load card")
		return
	}
	if card == nil {
		errorResponse(w, http.StatusNotFound, "card not found")
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	reviewReq := review.Request{
		BusinessName:     card.BusinessName,
		Category:         card.Category,
		BusinessType:     card.BusinessType,
		Highlights:       card.Highlights,
		SelectedServices: resolveServices(card, req.SelectedServices),
		StarRating:       req.StarRating,
		Language:         resolveCardLanguage(card, req.Language),
		Tone:             req.Tone,
		Source:           req.Source,
	}

	result := s.reviewService.Generate(r.Context(), reviewReq)

	text := result.Text
	var mistakes []review.Mistake
	if count, inject := resolveMistakeCount(card, req.MistakeCount); inject {
		text, mistakes = review.InjectMistakes(text, count, nil, s.reviewService.Rand())
	}

	// Archive is best-effort; a storage hiccup must not cost the visitor
	// their review.
	record := review.NewArchiveRecord(reviewReq, result)
	if _, err := s.db.InsertReview(r.Context(), &db.ReviewRecord{
		CardID:       card.ID,
		BusinessName: record.BusinessName,
		Category:     record.Category,
		Rating:       record.Rating,
		Language:     record.Language,
		Tone:         record.Tone,
		Services:     record.Services,
		ReviewText:   record.ReviewText,
		IsFallback:   record.Fallback,
		Source:       record.Source,
	}); err != nil {
		log.Printf("[server] failed to archive review for card %s: %v", card.Slug, err)
	}

	jsonResponse(w, http.StatusOK, GenerateResponse{
		Text:     text,
		CopyText: review.StripEmphasis(text),
		Hash:     result.Hash,
		Language: result.Language,
		Rating:   result.Rating,
		Fallback: result.Fallback,
		Mistakes: mistakes,
		Segments: review.SplitEmphasis(review.Segments(text, mistakes)),
	})
}

// resolveMistakeCount decides whether to run the mistake injector and with
// what count. A request that omits the count defers to the injector's own
// pick; an explicit zero opts out entirely.
func resolveMistakeCount(card *db.Card, requested *int) (int, bool) {
	if !card.AllowSpellingMistakes {
		return 0, false
	}
	if requested == nil {
		return 0, true
	}
	return *requested, *requested > 0
}

// resolveServices keeps only selected services the card actually offers. The
// card's highlight_services flag controls how the page renders them, not
// whether they reach the prompt.
func resolveServices(card *db.Card, selected []string) []string {
	if len(selected) == 0 {
		return nil
	}
	offered := make(map[string]struct{}, len(card.Services))
	for _, s := range card.Services {
		offered[s] = struct{}{}
	}
	var out []string
	for _, s := range selected {
		if _, ok := offered[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// resolveCardLanguage constrains the requested language to the card's
// configured list; anything else falls back to the card's first language.
func resolveCardLanguage(card *db.Card, requested string) string {
	if len(card.Languages) == 0 {
		return requested
	}
	for _, l := range card.Languages {
		if l == requested {
			return l
		}
	}
	return card.Languages[0]
}
