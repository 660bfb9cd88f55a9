package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"reviews-backend/internal/domains/analytics/model"
)

type analyticsRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresAnalyticsRepository(pool *pgxpool.Pool) AnalyticsRepository {
	return &analyticsRepository{pool: pool}
}

// buildWhere renders the analytics filter into a WHERE clause over reviews r.
func buildWhere(filter model.AnalyticsFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ListingID != nil {
		conditions = append(conditions, "r.listing_id = "+arg(*filter.ListingID))
	}
	if filter.From != nil {
		conditions = append(conditions, "r.submitted_at >= "+arg(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "r.submitted_at <= "+arg(*filter.To))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *analyticsRepository) TopListings(ctx context.Context, filter model.AnalyticsFilter, limit int) ([]model.TopListing, error) {
	where, args := buildWhere(filter)

	query := `
		SELECT l.id, l.name,
		       COALESCE(ROUND(AVG(r.rating_overall)::numeric, 1), 0)::float8 AS avg_rating,
		       COUNT(*) AS review_count
		FROM listings l
		INNER JOIN reviews r ON r.listing_id = l.id` + where + `
		GROUP BY l.id, l.name
		ORDER BY 3 DESC, 4 DESC
		LIMIT ` + fmt.Sprintf("$%d", len(args)+1)
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to rank listings: %w", err)
	}
	defer rows.Close()

	listings := []model.TopListing{}
	for rows.Next() {
		var entry model.TopListing
		if err := rows.Scan(&entry.ListingID, &entry.Name, &entry.AvgRating, &entry.Count); err != nil {
			return nil, fmt.Errorf("failed to scan top listing: %w", err)
		}
		listings = append(listings, entry)
	}
	return listings, rows.Err()
}

func (r *analyticsRepository) ReviewStats(ctx context.Context, filter model.AnalyticsFilter) ([]model.ReviewStat, error) {
	where, args := buildWhere(filter)

	query := `
		SELECT r.rating_overall, COALESCE(r.categories, 'null'::jsonb), r.submitted_at
		FROM reviews r` + where + `
		ORDER BY r.submitted_at`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load review stats: %w", err)
	}
	defer rows.Close()

	stats := []model.ReviewStat{}
	for rows.Next() {
		var stat model.ReviewStat
		var categories []byte
		if err := rows.Scan(&stat.RatingOverall, &categories, &stat.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review stat: %w", err)
		}
		if err := json.Unmarshal(categories, &stat.Categories); err != nil {
			return nil, fmt.Errorf("failed to decode review categories: %w", err)
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}
