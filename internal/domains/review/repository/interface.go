package repository

import (
	"context"

	"github.com/google/uuid"

	"reviews-backend/internal/domains/review/model"
)

type ReviewRepository interface {
	// Upsert inserts the review or, when (source, external_id) already
	// exists, updates every mutable field in place. The approved flag is
	// only written on insert. Returns true when a new row was created.
	Upsert(ctx context.Context, review *model.Review) (bool, error)

	// List returns the filtered page plus the total count over the same
	// predicate.
	List(ctx context.Context, filter model.ReviewFilter) ([]*model.ReviewWithListing, int, error)

	// ListApprovedByListing returns every approved review of a listing,
	// newest submission first. No pagination.
	ListApprovedByListing(ctx context.Context, listingID uuid.UUID) ([]*model.ReviewWithListing, error)

	// Approve sets the approved flag and appends the audit log entry in a
	// single transaction. Returns model.ErrReviewNotFound when the review
	// does not exist; in that case no log row is written.
	Approve(ctx context.Context, id uuid.UUID, approved bool, actor *string) error
}
