package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	listingModel "reviews-backend/internal/domains/listing/model"
	listingRepo "reviews-backend/internal/domains/listing/repository"
	"reviews-backend/internal/domains/review/model"
	"reviews-backend/internal/domains/review/repository"
)

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	listingRepo listingRepo.ListingRepository
	fetcher     SourceFetcher
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	listings listingRepo.ListingRepository,
	fetcher SourceFetcher,
) ServiceInterface {
	return &reviewService{
		reviewRepo:  reviewRepo,
		listingRepo: listings,
		fetcher:     fetcher,
	}
}

// =====================================================
// LIST REVIEWS
// =====================================================

func (s *reviewService) ListReviews(ctx context.Context, req model.ListReviewsRequest) (*model.PaginatedReviews, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	filter := req.ToFilter()

	reviews, total, err := s.reviewRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return &model.PaginatedReviews{
		Items:    toNormalized(reviews),
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Total:    total,
	}, nil
}

// =====================================================
// PUBLIC REVIEWS
// =====================================================

func (s *reviewService) GetPublicReviews(ctx context.Context, listingID string) (*model.PublicReviewsResponse, error) {
	id, err := uuid.Parse(listingID)
	if err != nil {
		return nil, model.NewValidationError(model.ErrCodeInvalidFilter, "listingId must be a UUID", err)
	}

	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListApprovedByListing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load public reviews: %w", err)
	}

	return &model.PublicReviewsResponse{
		Listing: listingModel.ListingRef{
			ID:   listing.ID,
			Name: listing.Name,
			Slug: listing.Slug,
		},
		Items: toNormalized(reviews),
	}, nil
}

// =====================================================
// APPROVE
// =====================================================

func (s *reviewService) ApproveReview(ctx context.Context, req model.ApproveReviewRequest, actor *string) (*model.ApproveReviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id, _ := uuid.Parse(req.ReviewID)
	approved := *req.Approved

	if err := s.reviewRepo.Approve(ctx, id, approved, actor); err != nil {
		return nil, err
	}

	return &model.ApproveReviewResponse{
		ReviewID: id,
		Approved: approved,
	}, nil
}

// =====================================================
// HELPERS
// =====================================================

// toNormalized maps repository rows into the canonical response shape.
// Always returns a non-nil slice so empty result sets serialize as [].
func toNormalized(reviews []*model.ReviewWithListing) []model.NormalizedReview {
	items := make([]model.NormalizedReview, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, model.NewNormalizedReview(&r.Review, listingModel.ListingRef{
			ID:   r.ListingID,
			Name: r.ListingName,
			Slug: r.ListingSlug,
		}))
	}
	return items
}
