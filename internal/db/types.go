package db

import (
	"time"

	"github.com/google/uuid"
)

// Card is one per-business review-card configuration. Slug is the public
// URL key of the card page.
type Card struct {
	ID                    uuid.UUID `json:"id"`
	Slug                  string    `json:"slug"`
	BusinessName          string    `json:"business_name"`
	Category              string    `json:"category"`
	BusinessType          string    `json:"business_type,omitempty"`
	Highlights            string    `json:"highlights,omitempty"`
	Services              []string  `json:"services"`
	Languages             []string  `json:"languages"`
	HighlightServices     bool      `json:"highlight_services"`
	AllowSpellingMistakes bool      `json:"allow_spelling_mistakes"`
	ViewCount             int64     `json:"view_count"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// ReviewRecord is one archived generation, emphasis markers stripped.
type ReviewRecord struct {
	ID           uuid.UUID `json:"id"`
	CardID       uuid.UUID `json:"card_id"`
	BusinessName string    `json:"business_name"`
	Category     string    `json:"category"`
	Rating       int       `json:"rating"`
	Language     string    `json:"language"`
	Tone         string    `json:"tone"`
	Services     []string  `json:"services"`
	ReviewText   string    `json:"review_text"`
	IsFallback   bool      `json:"is_fallback"`
	Source       string    `json:"source"`
	CreatedAt    time.Time `json:"created_at"`
}

// CardStats aggregates the archive for one card.
type CardStats struct {
	CardID        uuid.UUID        `json:"card_id"`
	TotalReviews  int64            `json:"total_reviews"`
	FallbackCount int64            `json:"fallback_count"`
	ByRating      map[int]int64    `json:"by_rating"`
	ByLanguage    map[string]int64 `json:"by_language"`
}

// OverviewStats aggregates the archive across all cards.
type OverviewStats struct {
	TotalCards    int64 `json:"total_cards"`
	TotalReviews  int64 `json:"total_reviews"`
	TotalViews    int64 `json:"total_views"`
	FallbackCount int64 `json:"fallback_count"`
}

// User represents an admin account
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	PasswordSet  bool      `json:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
