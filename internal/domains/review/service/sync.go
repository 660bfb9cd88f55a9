package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"reviews-backend/internal/domains/review/model"
	"reviews-backend/internal/infrastructure/hostaway"
	"reviews-backend/internal/shared/utils"
	"reviews-backend/pkg/logger"
)

const submittedAtLayout = "2006-01-02 15:04:05"

// SyncReviews runs the ingest pipeline: fetch raw records, normalize each
// one and upsert it keyed by (source, external_id). There is no transaction
// across records; a failure partway leaves earlier upserts committed, and
// the returned result reports how far the run got.
func (s *reviewService) SyncReviews(ctx context.Context) (*model.SyncResult, error) {
	raw, err := s.fetcher.FetchReviews(ctx)
	if err != nil {
		// A source record failing schema checks is a bad-input condition,
		// not a server fault.
		var schemaErrs validation.Errors
		if errors.As(err, &schemaErrs) {
			return nil, model.NewValidationError(model.ErrCodeSyncFailed, "source records failed validation", err)
		}
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	result := &model.SyncResult{}
	listingsSeen := map[uuid.UUID]bool{}

	for _, record := range raw {
		review, err := s.normalize(ctx, record)
		if err != nil {
			return result, fmt.Errorf("failed to normalize review %q: %w", record.ID, err)
		}

		if _, err := s.reviewRepo.Upsert(ctx, review); err != nil {
			return result, fmt.Errorf("failed to upsert review %q: %w", record.ID, err)
		}

		result.Synced++
		listingsSeen[review.ListingID] = true
	}
	result.Listings = len(listingsSeen)

	logger.Info("Review sync completed", map[string]interface{}{
		"synced":   result.Synced,
		"listings": result.Listings,
	})

	return result, nil
}

// normalize maps one raw source record into the canonical review shape,
// resolving (or lazily creating) the owning listing by its name slug.
func (s *reviewService) normalize(ctx context.Context, raw hostaway.RawReview) (*model.Review, error) {
	listing, err := s.listingRepo.FindOrCreate(ctx, raw.ListingName, model.SourceHostaway)
	if err != nil {
		return nil, err
	}

	submittedAt, err := parseSubmittedAt(raw.SubmittedAt)
	if err != nil {
		return nil, model.NewValidationError(model.ErrCodeSyncFailed, "invalid submittedAt", err)
	}

	categories := flattenCategories(raw.ReviewCategory)

	return &model.Review{
		ID:            uuid.New(),
		Source:        model.SourceHostaway,
		ExternalID:    raw.ID,
		ListingID:     listing.ID,
		Type:          raw.Type,
		Status:        raw.Status,
		RatingOverall: deriveRating(raw.Rating, categories),
		Categories:    categories,
		Text:          raw.PublicReview,
		AuthorName:    raw.GuestName,
		Channel:       raw.Channel,
		SubmittedAt:   submittedAt,
		// Approval is always an explicit workflow step, never inherited
		// from the source status.
		Approved: false,
	}, nil
}

// deriveRating keeps an explicit overall rating verbatim; otherwise it is
// the unweighted mean of the category ratings rounded to one decimal, or
// nil when there is no rating data at all.
func deriveRating(explicit *float64, categories map[string]float64) *float64 {
	if explicit != nil {
		return explicit
	}
	if len(categories) == 0 {
		return nil
	}

	values := make([]float64, 0, len(categories))
	for _, v := range categories {
		values = append(values, v)
	}
	mean, _ := utils.Mean(values)
	return utils.Float64Ptr(utils.Round1(mean))
}

// flattenCategories converts the raw category list into a map keyed by
// category name. Duplicate names are last-write-wins.
func flattenCategories(raw []hostaway.RawCategory) map[string]float64 {
	if len(raw) == 0 {
		return nil
	}
	categories := make(map[string]float64, len(raw))
	for _, c := range raw {
		categories[c.Category] = c.Rating
	}
	return categories
}

func parseSubmittedAt(s string) (time.Time, error) {
	if t, err := time.Parse(submittedAtLayout, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
