package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleGetCard_InvalidID(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/admin/cards/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	w := httptest.NewRecorder()

	s.handleGetCard(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid card ID")
}

func TestHandleCreateCard_InvalidBody(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/admin/cards", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	s.handleCreateCard(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCreateCard_ValidationFailure(t *testing.T) {
	s := newTestServer()

	// Missing business_name and category
	body := `{"slug": "sharma-dental"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/cards", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handleCreateCard(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation error")
}

func TestHandleImportCards_SchemaRejection(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name string
		body string
	}{
		{"missing cards key", `{"records": []}`},
		{"empty cards array", `{"cards": []}`},
		{"bad slug", `{"cards": [{"slug": "Not A Slug!", "business_name": "X", "category": "salon"}]}`},
		{"unknown language", `{"cards": [{"slug": "ok-slug", "business_name": "X", "category": "salon", "languages": ["Klingon"]}]}`},
		{"extra field", `{"cards": [{"slug": "ok-slug", "business_name": "X", "category": "salon", "rating": 5}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/cards/import", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			s.handleImportCards(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandleEnrichCard_NoProvider(t *testing.T) {
	s := newTestServer() // enricher is nil

	req := httptest.NewRequest(http.MethodPost, "/admin/cards/123/enrich", nil)
	w := httptest.NewRecorder()

	s.handleEnrichCard(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCardFromRequest(t *testing.T) {
	req := &CardRequest{
		Slug:                  "sharma-dental",
		BusinessName:          "Sharma Dental Clinic",
		Category:              "dentist",
		BusinessType:          "clinic",
		Highlights:            "gentle care",
		Services:              []string{"Root canal"},
		Languages:             []string{"English", "Hindi"},
		HighlightServices:     true,
		AllowSpellingMistakes: true,
	}

	card := cardFromRequest(req)
	require.NotNil(t, card)
	assert.Equal(t, "sharma-dental", card.Slug)
	assert.Equal(t, "Sharma Dental Clinic", card.BusinessName)
	assert.Equal(t, []string{"Root canal"}, card.Services)
	assert.True(t, card.HighlightServices)
	assert.True(t, card.AllowSpellingMistakes)
}

