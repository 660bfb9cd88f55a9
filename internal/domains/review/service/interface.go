package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"reviews-backend/internal/domains/review/model"
	"reviews-backend/internal/infrastructure/hostaway"
)

// SourceFetcher is the adapter boundary to the external review provider.
type SourceFetcher interface {
	FetchReviews(ctx context.Context) ([]hostaway.RawReview, error)
}

type ServiceInterface interface {
	// ListReviews filters, sorts and paginates reviews.
	ListReviews(ctx context.Context, req model.ListReviewsRequest) (*model.PaginatedReviews, error)

	// GetPublicReviews returns the approved-only review set of a listing.
	GetPublicReviews(ctx context.Context, listingID string) (*model.PublicReviewsResponse, error)

	// ApproveReview flips the approval flag and appends an audit entry.
	ApproveReview(ctx context.Context, req model.ApproveReviewRequest, actor *string) (*model.ApproveReviewResponse, error)

	// SyncReviews runs the ingest pipeline: fetch, normalize, upsert.
	SyncReviews(ctx context.Context) (*model.SyncResult, error)

	// ExportReviews renders the filtered review set as an Excel workbook.
	ExportReviews(ctx context.Context, req model.ListReviewsRequest) (*excelize.File, error)
}
