package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"reviews-backend/internal/domains/review/model"
	"reviews-backend/pkg/database"
)

type postgresReviewRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &postgresReviewRepository{pool: pool}
}

const reviewColumns = `
	r.id, r.source, r.external_id, r.listing_id,
	r.type, r.status, r.rating_overall,
	COALESCE(r.categories, 'null'::jsonb),
	r.text, r.author_name, r.channel, r.submitted_at,
	r.approved, r.created_at, r.updated_at`

func scanReview(row pgx.Row) (*model.ReviewWithListing, error) {
	review := &model.ReviewWithListing{}
	err := row.Scan(
		&review.ID,
		&review.Source,
		&review.ExternalID,
		&review.ListingID,
		&review.Type,
		&review.Status,
		&review.RatingOverall,
		&review.Categories,
		&review.Text,
		&review.AuthorName,
		&review.Channel,
		&review.SubmittedAt,
		&review.Approved,
		&review.CreatedAt,
		&review.UpdatedAt,
		&review.ListingName,
		&review.ListingSlug,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to scan review: %w", err)
	}
	return review, nil
}

// =====================================================
// UPSERT
// =====================================================

func (r *postgresReviewRepository) Upsert(ctx context.Context, review *model.Review) (bool, error) {
	// approved is written on insert only; the approval workflow is the sole
	// writer of that flag afterwards.
	query := `
		INSERT INTO reviews (
			id, source, external_id, listing_id,
			type, status, rating_overall, categories,
			text, author_name, channel, submitted_at,
			approved, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		ON CONFLICT (source, external_id) DO UPDATE SET
			listing_id     = EXCLUDED.listing_id,
			type           = EXCLUDED.type,
			status         = EXCLUDED.status,
			rating_overall = EXCLUDED.rating_overall,
			categories     = EXCLUDED.categories,
			text           = EXCLUDED.text,
			author_name    = EXCLUDED.author_name,
			channel        = EXCLUDED.channel,
			submitted_at   = EXCLUDED.submitted_at,
			updated_at     = NOW()
		RETURNING (created_at = updated_at)
	`

	var created bool
	err := r.pool.QueryRow(ctx, query,
		review.ID,
		review.Source,
		review.ExternalID,
		review.ListingID,
		review.Type,
		review.Status,
		review.RatingOverall,
		review.Categories,
		review.Text,
		review.AuthorName,
		review.Channel,
		review.SubmittedAt,
		review.Approved,
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("failed to upsert review: %w", err)
	}

	return created, nil
}

// =====================================================
// LIST WITH FILTERS
// =====================================================

// escapeLike neutralizes LIKE metacharacters so free-text search matches
// them literally instead of treating user input as a pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// BuildWhere maps a validated filter to the WHERE clause and its arguments.
// Pure function so the predicate can be tested apart from the database.
func BuildWhere(filter model.ReviewFilter) (string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ListingID != nil {
		clauses = append(clauses, "r.listing_id = "+arg(*filter.ListingID))
	}
	if filter.Type != "" {
		clauses = append(clauses, "r.type = "+arg(filter.Type))
	}
	if filter.Status != "" {
		clauses = append(clauses, "r.status = "+arg(filter.Status))
	}
	if filter.Channel != "" {
		clauses = append(clauses, "r.channel = "+arg(filter.Channel))
	}
	if filter.Approved != nil {
		clauses = append(clauses, "r.approved = "+arg(*filter.Approved))
	}
	if filter.MinRating != nil {
		clauses = append(clauses, "r.rating_overall >= "+arg(*filter.MinRating))
	}
	if filter.MaxRating != nil {
		clauses = append(clauses, "r.rating_overall <= "+arg(*filter.MaxRating))
	}
	if filter.From != nil {
		clauses = append(clauses, "r.submitted_at >= "+arg(*filter.From))
	}
	if filter.To != nil {
		clauses = append(clauses, "r.submitted_at <= "+arg(*filter.To))
	}
	if filter.Query != "" {
		pattern := "%" + escapeLike(filter.Query) + "%"
		p := arg(pattern)
		clauses = append(clauses, "(r.text ILIKE "+p+" OR r.author_name ILIKE "+p+")")
	}

	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// orderBy renders the validated sort spec. SortField comes from the model
// allowlist, never from raw user input.
func orderBy(filter model.ReviewFilter) string {
	field := filter.SortField
	if !model.SortableFields[field] {
		field = "submitted_at"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY r.%s %s", field, direction)
}

func (r *postgresReviewRepository) List(ctx context.Context, filter model.ReviewFilter) ([]*model.ReviewWithListing, int, error) {
	where, args := BuildWhere(filter)

	query := fmt.Sprintf(`
		SELECT %s, l.name, l.slug
		FROM reviews r
		INNER JOIN listings l ON l.id = r.listing_id
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, reviewColumns, where, orderBy(filter), len(args)+1, len(args)+2)

	pageArgs := append(append([]interface{}{}, args...), filter.PageSize, filter.Offset())

	rows, err := r.pool.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*model.ReviewWithListing
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read reviews: %w", err)
	}

	// Count over the same predicate, so total reflects the full filtered
	// set rather than the returned page.
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM reviews r %s`, where)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	return reviews, total, nil
}

func (r *postgresReviewRepository) ListApprovedByListing(ctx context.Context, listingID uuid.UUID) ([]*model.ReviewWithListing, error) {
	query := `
		SELECT ` + reviewColumns + `, l.name, l.slug
		FROM reviews r
		INNER JOIN listings l ON l.id = r.listing_id
		WHERE r.listing_id = $1 AND r.approved = true
		ORDER BY r.submitted_at DESC
	`

	rows, err := r.pool.Query(ctx, query, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*model.ReviewWithListing
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

// =====================================================
// APPROVE
// =====================================================

func (r *postgresReviewRepository) Approve(ctx context.Context, id uuid.UUID, approved bool, actor *string) error {
	action := model.ActionUnapproved
	if approved {
		action = model.ActionApproved
	}

	// Flag update and audit insert form one atomic unit: both commit or
	// both roll back.
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx,
			`UPDATE reviews SET approved = $2, updated_at = NOW() WHERE id = $1`,
			id, approved,
		)
		if err != nil {
			return fmt.Errorf("failed to update approval: %w", err)
		}
		if result.RowsAffected() == 0 {
			return model.ErrReviewNotFound
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO review_selection_logs (id, review_id, action, actor, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), id, action, actor, time.Now().UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to append selection log: %w", err)
		}

		return nil
	})
}
