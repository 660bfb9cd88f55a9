package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"reviews-backend/internal/domains/listing/model"
	"reviews-backend/internal/shared/utils"
)

type postgresListingRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresListingRepository(pool *pgxpool.Pool) ListingRepository {
	return &postgresListingRepository{pool: pool}
}

const listingColumns = `id, name, slug, channel, created_at, updated_at`

func scanListing(row pgx.Row) (*model.Listing, error) {
	listing := &model.Listing{}
	err := row.Scan(
		&listing.ID,
		&listing.Name,
		&listing.Slug,
		&listing.Channel,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to scan listing: %w", err)
	}
	return listing, nil
}

func (r *postgresListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	return scanListing(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresListingRepository) GetBySlug(ctx context.Context, slug string) (*model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE slug = $1`
	return scanListing(r.pool.QueryRow(ctx, query, slug))
}

// FindOrCreate looks the listing up by the slug derived from name and
// creates it when absent. ON CONFLICT DO NOTHING plus a re-select keeps two
// concurrent syncs from failing on the unique slug index.
func (r *postgresListingRepository) FindOrCreate(ctx context.Context, name, channel string) (*model.Listing, error) {
	slug := utils.GenerateSlug(name)

	listing, err := r.GetBySlug(ctx, slug)
	if err == nil {
		return listing, nil
	}
	if !errors.Is(err, model.ErrListingNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	insert := `
		INSERT INTO listings (id, name, slug, channel, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (slug) DO NOTHING
	`
	_, err = r.pool.Exec(ctx, insert, uuid.New(), name, slug, channel, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	return r.GetBySlug(ctx, slug)
}

func (r *postgresListingRepository) ListWithStats(ctx context.Context) ([]model.ListingWithStats, error) {
	// INNER JOIN through reviews drops listings that have no reviews yet.
	query := `
		SELECT
			l.id,
			l.name,
			COALESCE(ROUND(AVG(r.rating_overall)::numeric, 1), 0)::float8,
			COUNT(r.id)
		FROM listings l
		INNER JOIN reviews r ON r.listing_id = l.id
		GROUP BY l.id, l.name
		ORDER BY 3 DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list listing stats: %w", err)
	}
	defer rows.Close()

	var stats []model.ListingWithStats
	for rows.Next() {
		var s model.ListingWithStats
		if err := rows.Scan(&s.ID, &s.Name, &s.AvgRating, &s.ReviewCount); err != nil {
			return nil, fmt.Errorf("failed to scan listing stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
