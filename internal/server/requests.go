package server

import (
	"time"

	"github.com/google/uuid"

	"github.com/paresh/review-cards/internal/review"
)

// RegisterRequest creates a new admin account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest authenticates an admin.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest changes the caller's password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// UserResponse is an admin account for API responses (no password hash).
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PasswordSet bool      `json:"password_set"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LoginResponse carries the account and its bearer token.
type LoginResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

// CardRequest creates or updates a review card.
type CardRequest struct {
	Slug                  string   `json:"slug" validate:"required,min=2,max=64"`
	BusinessName          string   `json:"business_name" validate:"required,min=1"`
	Category              string   `json:"category" validate:"required,min=1"`
	BusinessType          string   `json:"business_type"`
	Highlights            string   `json:"highlights"`
	Services              []string `json:"services"`
	Languages             []string `json:"languages"`
	HighlightServices     bool     `json:"highlight_services"`
	AllowSpellingMistakes bool     `json:"allow_spelling_mistakes"`
}

// GenerateRequest asks for one review for a card. MistakeCount is a pointer
// so that "field omitted" and "explicitly zero" stay distinguishable: omitted
// means let the injector pick a count, zero means no mistakes at all.
type GenerateRequest struct {
	StarRating       int      `json:"star_rating" validate:"required,min=1,max=5"`
	Language         string   `json:"language"`
	Tone             string   `json:"tone"`
	SelectedServices []string `json:"selected_services"`
	MistakeCount     *int     `json:"mistake_count" validate:"omitempty,min=0,max=3"`
	Source           string   `json:"source" validate:"omitempty,oneof=auto service manual"`
}

// GenerateResponse is the pipeline output for the card page.
type GenerateResponse struct {
	Text     string           `json:"text"`
	CopyText string           `json:"copy_text"`
	Hash     string           `json:"hash"`
	Language string           `json:"language"`
	Rating   int              `json:"rating"`
	Fallback bool             `json:"fallback"`
	Mistakes []review.Mistake `json:"mistakes"`
	Segments []review.Segment `json:"segments"`
}

// EnrichRequest asks the server to build highlights from a business website.
type EnrichRequest struct {
	URL        string `json:"url" validate:"required,url"`
	UseBrowser bool   `json:"use_browser"`
}
