package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const cardColumns = `id, slug, business_name, category, business_type, highlights,
	services, languages, highlight_services, allow_spelling_mistakes,
	view_count, created_at, updated_at`

func scanCard(row pgx.Row) (*Card, error) {
	var c Card
	err := row.Scan(&c.ID, &c.Slug, &c.BusinessName, &c.Category, &c.BusinessType,
		&c.Highlights, &c.Services, &c.Languages, &c.HighlightServices,
		&c.AllowSpellingMistakes, &c.ViewCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCard inserts a new review card and returns its ID
func (db *DB) CreateCard(ctx context.Context, c *Card) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO cards (slug, business_name, category, business_type, highlights,
		    services, languages, highlight_services, allow_spelling_mistakes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		c.Slug, c.BusinessName, c.Category, c.BusinessType, c.Highlights,
		c.Services, c.Languages, c.HighlightServices, c.AllowSpellingMistakes,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create card: %w", err)
	}
	return id, nil
}

// GetCard retrieves a card by ID. Returns nil without error when not found.
func (db *DB) GetCard(ctx context.Context, id uuid.UUID) (*Card, error) {
	card, err := scanCard(db.pool.QueryRow(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return card, nil
}

// GetCardBySlug retrieves a card by its public slug. Returns nil without
// error when not found.
func (db *DB) GetCardBySlug(ctx context.Context, slug string) (*Card, error) {
	card, err := scanCard(db.pool.QueryRow(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE slug = $1`, slug))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get card by slug: %w", err)
	}
	return card, nil
}

// ListCards retrieves all cards, newest first
func (db *DB) ListCards(ctx context.Context) ([]Card, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+cardColumns+` FROM cards ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, *card)
	}
	return cards, nil
}

// UpdateCard updates every mutable field of a card
func (db *DB) UpdateCard(ctx context.Context, c *Card) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE cards SET slug = $1, business_name = $2, category = $3,
		    business_type = $4, highlights = $5, services = $6, languages = $7,
		    highlight_services = $8, allow_spelling_mistakes = $9, updated_at = NOW()
		 WHERE id = $10`,
		c.Slug, c.BusinessName, c.Category, c.BusinessType, c.Highlights,
		c.Services, c.Languages, c.HighlightServices, c.AllowSpellingMistakes, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("card not found: %s", c.ID)
	}
	return nil
}

// UpdateCardHighlights updates only the highlights text (used by enrich)
func (db *DB) UpdateCardHighlights(ctx context.Context, id uuid.UUID, highlights string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE cards SET highlights = $1, updated_at = NOW() WHERE id = $2`,
		highlights, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update card highlights: %w", err)
	}
	return nil
}

// DeleteCard removes a card and its archived reviews
func (db *DB) DeleteCard(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM reviews WHERE card_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete card reviews: %w", err)
	}
	_, err = db.pool.Exec(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}

// IncrementViews bumps the card view counter
func (db *DB) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE cards SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}
