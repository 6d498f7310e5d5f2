package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// InsertReview archives one generation record and returns its ID
func (db *DB) InsertReview(ctx context.Context, r *ReviewRecord) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO reviews (card_id, business_name, category, rating, language,
		    tone, services, review_text, is_fallback, source)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		r.CardID, r.BusinessName, r.Category, r.Rating, r.Language,
		r.Tone, r.Services, r.ReviewText, r.IsFallback, r.Source,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert review: %w", err)
	}
	return id, nil
}

// ListReviews retrieves recent archived reviews for a card
func (db *DB) ListReviews(ctx context.Context, cardID uuid.UUID, limit int) ([]ReviewRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, card_id, business_name, category, rating, language, tone,
		    services, review_text, is_fallback, source, created_at
		 FROM reviews WHERE card_id = $1 ORDER BY created_at DESC LIMIT $2`,
		cardID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var records []ReviewRecord
	for rows.Next() {
		var r ReviewRecord
		if err := rows.Scan(&r.ID, &r.CardID, &r.BusinessName, &r.Category, &r.Rating,
			&r.Language, &r.Tone, &r.Services, &r.ReviewText, &r.IsFallback,
			&r.Source, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		records = append(records, r)
	}
	return records, nil
}

// GetCardStats aggregates the archive for one card
func (db *DB) GetCardStats(ctx context.Context, cardID uuid.UUID) (*CardStats, error) {
	stats := &CardStats{
		CardID:     cardID,
		ByRating:   make(map[int]int64),
		ByLanguage: make(map[string]int64),
	}

	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_fallback)
		 FROM reviews WHERE card_id = $1`, cardID,
	).Scan(&stats.TotalReviews, &stats.FallbackCount)
	if err != nil {
		return nil, fmt.Errorf("failed to get review counts: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT rating, COUNT(*) FROM reviews WHERE card_id = $1 GROUP BY rating`, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rating histogram: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rating int
		var count int64
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("failed to scan rating row: %w", err)
		}
		stats.ByRating[rating] = count
	}

	langRows, err := db.pool.Query(ctx,
		`SELECT language, COUNT(*) FROM reviews WHERE card_id = $1 GROUP BY language`, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get language counts: %w", err)
	}
	defer langRows.Close()
	for langRows.Next() {
		var language string
		var count int64
		if err := langRows.Scan(&language, &count); err != nil {
			return nil, fmt.Errorf("failed to scan language row: %w", err)
		}
		stats.ByLanguage[language] = count
	}

	return stats, nil
}

// GetOverviewStats aggregates cards, views, and archived reviews across the
// whole installation
func (db *DB) GetOverviewStats(ctx context.Context) (*OverviewStats, error) {
	var stats OverviewStats
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(view_count), 0) FROM cards`,
	).Scan(&stats.TotalCards, &stats.TotalViews)
	if err != nil {
		return nil, fmt.Errorf("failed to get card totals: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_fallback) FROM reviews`,
	).Scan(&stats.TotalReviews, &stats.FallbackCount)
	if err != nil {
		return nil, fmt.Errorf("failed to get review totals: %w", err)
	}

	return &stats, nil
}
