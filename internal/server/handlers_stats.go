package server

import (
	"net/http"
	"strconv"
)

// handleListCardReviews returns the most recent archived reviews for a card.
func (s *Server) handleListCardReviews(w http.ResponseWriter, r *http.Request) {
	card, ok := s.cardFromPath(w, r)
	if !ok {
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			errorResponse(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	reviews, err := s.db.ListReviews(r.Context(), card.ID, limit)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to list reviews")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"reviews": reviews, "count": len(reviews)})
}

// handleCardStats returns archive aggregates for one card.
func (s *Server) handleCardStats(w http.ResponseWriter, r *http.Request) {
	card, ok := s.cardFromPath(w, r)
	if !ok {
		return
	}

	stats, err := s.db.GetCardStats(r.Context(), card.ID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	stats.CardID = card.ID
	jsonResponse(w, http.StatusOK, map[string]any{
		"stats":      stats,
		"view_count": card.ViewCount,
	})
}

// handleOverviewStats returns archive aggregates across all cards.
func (s *Server) handleOverviewStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetOverviewStats(r.Context())
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}
