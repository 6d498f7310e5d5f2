package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/paresh/review-cards/internal/db"
	"github.com/paresh/review-cards/internal/schemas"
)

// handleListCards returns all cards for the admin dashboard.
func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.db.ListCards(r.Context())
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to list cards")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"cards": cards, "count": len(cards)})
}

// handleCreateCard creates one card.
func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req CardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	existing, err := s.db.GetCardBySlug(r.Context(), req.Slug)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to check slug")
		return
	}
	if existing != nil {
		err := &ErrSlugTaken{Slug: req.Slug}
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	card := cardFromRequest(&req)
	id, err := s.db.CreateCard(r.Context(), card)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to create card")
		return
	}

	created, err := s.db.GetCard(r.Context(), id)
	if err != nil || created == nil {
		errorResponse(w, http.StatusInternalServerError, "failed to load created card")
		return
	}
	jsonResponse(w, http.StatusCreated, created)
}

// handleGetCard returns one card by ID.
func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	card, ok := s.cardFromPath(w, r)
	if !ok {
		return
	}
	jsonResponse(w, http.StatusOK, card)
}

// handleUpdateCard replaces a card's configuration.
func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	card, ok := s.cardFromPath(w, r)
	if !ok {
		return
	}

	var req CardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	// A changed slug must not collide with another card.
	if req.Slug != card.Slug {
		existing, err := s.db.GetCardBySlug(r.Context(), req.Slug)
		if err != nil {
			errorResponse(w, http.StatusInternalServerError, "failed to check slug")
			return
		}
		if existing != nil {
			err := &ErrSlugTaken{Slug: req.Slug}
			errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
	}

	updated := cardFromRequest(&req)
	updated.ID = card.ID
	if err := s.db.UpdateCard(r.Context(), updated); err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to update card")
		return
	}

	fresh, err := s.db.GetCard(r.Context(), card.ID)
	if err != nil || fresh == nil {
		errorResponse(w, http.StatusInternalServerError, "failed to load updated card")
		return
	}
	jsonResponse(w, http.StatusOK, fresh)
}

// handleDeleteCard removes a card and its archived reviews.
func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	card, ok := s.cardFromPath(w, r)
	if !ok {
		return
	}
	if err := s.db.DeleteCard(r.Context(), card.ID); err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to delete card")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "card deleted"})
}

// cardImportPayload is the bulk import document shape.
type cardImportPayload struct {
	Cards []CardRequest `json:"cards"`
}

// handleImportCards bulk-creates cards from a JSON document validated
// against the card import schema. Cards whose slug is already taken are
// skipped and reported, not treated as a failure.
func (s *Server) handleImportCards(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := schemas.ValidateCardImport(string(body)); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload cardImportPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	imported := make([]string, 0, len(payload.Cards))
	skipped := make([]string, 0)
	for i := range payload.Cards {
		req := &payload.Cards[i]
		existing, err := s.db.GetCardBySlug(r.Context(), req.Slug)
		if err != nil {
			errorResponse(w, http.StatusInternalServerError, "failed to check slug")
			return
		}
		if existing != nil {
			skipped = append(skipped, req.Slug)
			continue
		}
		if _, err := s.db.CreateCard(r.Context(), cardFromRequest(req)); err != nil {
			errorResponse(w, http.StatusInternalServerError, "failed to create card "+req.Slug)
			return
		}
		imported = append(imported, req.Slug)
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"imported": imported,
		"skipped":  skipped,
	})
}

// handleEnrichCard fetches a business website and refreshes the card's
// highlights (and services, if the card has none) from its content.
func (s *Server) handleEnrichCard(w http.ResponseWriter, r *http.Request) {
	if s.enricher == nil {
		errorResponse(w, http.StatusServiceUnavailable, "enrichment requires a configured API key")
		return
	}

	card, ok := s.cardFromPath(w, r)
	if !ok {
		return
	}

	var req EnrichRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	prof, err := s.enricher.Enrich(r.Context(), req.URL, req.UseBrowser)
	if err != nil {
		errorResponse(w, http.StatusBadGateway, "enrichment failed: "+err.Error())
		return
	}

	card.Highlights = prof.Highlights
	if len(card.Services) == 0 && len(prof.Services) > 0 {
		// Extracted services only fill an empty card, never overwrite a
		// curated list.
		card.Services = prof.Services
		err = s.db.UpdateCard(r.Context(), card)
	} else {
		err = s.db.UpdateCardHighlights(r.Context(), card.ID, card.Highlights)
	}
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to save enriched card")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{"card": card, "profile": prof})
}

// cardFromPath loads the card addressed by the {id} path segment, writing
// the error response itself when the ID is bad or the card is missing.
func (s *Server) cardFromPath(w http.ResponseWriter, r *http.Request) (*db.Card, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid card ID")
		return nil, false
	}
	card, err := s.db.GetCard(r.Context(), id)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to load card")
		return nil, false
	}
	if card == nil {
		errorResponse(w, http.StatusNotFound, "card not found")
		return nil, false
	}
	return card, true
}

// cardFromRequest maps an API request onto a storage card.
func cardFromRequest(req *CardRequest) *db.Card {
	return &db.Card{
		Slug:                  req.Slug,
		BusinessName:          req.BusinessName,
		Category:              req.Category,
		BusinessType:          req.BusinessType,
		Highlights:            req.Highlights,
		Services:              req.Services,
		Languages:             req.Languages,
		HighlightServices:     req.HighlightServices,
		AllowSpellingMistakes: req.AllowSpellingMistakes,
	}
}
