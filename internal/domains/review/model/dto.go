package model

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	listingModel "reviews-backend/internal/domains/listing/model"
	"reviews-backend/internal/shared/utils"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// ListReviewsRequest carries the raw query parameters of GET /reviews.
// Validate checks them, ToFilter converts them into the typed filter the
// repository consumes. Validation and query building stay separable.
type ListReviewsRequest struct {
	ListingID string   `form:"listingId"`
	Type      string   `form:"type"`
	Status    string   `form:"status"`
	Channel   string   `form:"channel"`
	MinRating *float64 `form:"minRating"`
	MaxRating *float64 `form:"maxRating"`
	From      string   `form:"from"`
	To        string   `form:"to"`
	Approved  *bool    `form:"approved"`
	Query     string   `form:"q"`
	Sort      string   `form:"sort"`
	Page      int      `form:"page,default=1"`
	PageSize  int      `form:"pageSize,default=20"`
}

func (r ListReviewsRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.ListingID, is.UUIDv4.Error("listingId must be a UUID")),
		validation.Field(&r.Type, validation.In(TypeGuestToHost, TypeHostToGuest)),
		validation.Field(&r.Status, validation.In(StatusPublished, StatusDraft, StatusHidden)),
		validation.Field(&r.MinRating, validation.Min(MinRating), validation.Max(MaxRating)),
		validation.Field(&r.MaxRating, validation.Min(MinRating), validation.Max(MaxRating)),
		validation.Field(&r.From, validation.By(utils.IsDateString)),
		validation.Field(&r.To, validation.By(utils.IsDateString)),
		validation.Field(&r.Sort, validation.By(validateSort)),
		validation.Field(&r.Page, validation.Min(1)),
		validation.Field(&r.PageSize, validation.Min(1), validation.Max(MaxPageSize)),
	)
	if err != nil {
		return NewValidationError(ErrCodeInvalidFilter, "invalid review filters", err)
	}
	return nil
}

// ToFilter converts the validated request into a ReviewFilter. Callers must
// run Validate first.
func (r ListReviewsRequest) ToFilter() ReviewFilter {
	filter := ReviewFilter{
		Type:     r.Type,
		Status:   r.Status,
		Channel:  r.Channel,
		Approved: r.Approved,
		Query:    r.Query,
		Page:     r.Page,
		PageSize: r.PageSize,
	}

	if r.ListingID != "" {
		id, _ := uuid.Parse(r.ListingID)
		filter.ListingID = &id
	}
	filter.MinRating = r.MinRating
	filter.MaxRating = r.MaxRating
	filter.From = utils.ParseDateBound(r.From, false)
	filter.To = utils.ParseDateBound(r.To, true)
	filter.SortField, filter.SortDesc = parseSort(r.Sort)

	if filter.Page < 1 {
		filter.Page = DefaultPage
	}
	if filter.PageSize < 1 || filter.PageSize > MaxPageSize {
		filter.PageSize = DefaultPageSize
	}

	return filter
}

// ApproveReviewRequest is the body of POST /reviews/approve.
type ApproveReviewRequest struct {
	ReviewID string `json:"reviewId"`
	Approved *bool  `json:"approved"`
}

func (r ApproveReviewRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.ReviewID, validation.Required, is.UUIDv4.Error("reviewId must be a UUID")),
		validation.Field(&r.Approved, validation.NotNil.Error("approved is required")),
	)
	if err != nil {
		return NewValidationError(ErrCodeInvalidFilter, "invalid approve request", err)
	}
	return nil
}

// =====================================================
// TYPED FILTER
// =====================================================

// ReviewFilter is the validated filter the repository maps to a query
// predicate. All fields combine with AND; Query matches text OR author name.
type ReviewFilter struct {
	ListingID *uuid.UUID
	Type      string
	Status    string
	Channel   string
	Approved  *bool
	MinRating *float64
	MaxRating *float64
	From      *time.Time
	To        *time.Time
	Query     string

	SortField string
	SortDesc  bool

	Page     int
	PageSize int
}

// Offset returns the row offset for the current page.
func (f ReviewFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// NormalizedReview is the canonical review shape every endpoint returns.
type NormalizedReview struct {
	ID            uuid.UUID               `json:"id"`
	Source        string                  `json:"source"`
	ExternalID    string                  `json:"externalId,omitempty"`
	Listing       listingModel.ListingRef `json:"listing"`
	Type          string                  `json:"type"`
	Status        string                  `json:"status"`
	RatingOverall *float64                `json:"ratingOverall"`
	Categories    map[string]float64      `json:"categories,omitempty"`
	Text          *string                 `json:"text,omitempty"`
	AuthorName    *string                 `json:"authorName,omitempty"`
	Channel       *string                 `json:"channel,omitempty"`
	SubmittedAt   string                  `json:"submittedAt"`
	Approved      bool                    `json:"approved"`
}

// NewNormalizedReview maps the persisted entity plus its listing into the
// response shape. SubmittedAt is rendered as ISO-8601 UTC.
func NewNormalizedReview(review *Review, listing listingModel.ListingRef) NormalizedReview {
	return NormalizedReview{
		ID:            review.ID,
		Source:        review.Source,
		ExternalID:    review.ExternalID,
		Listing:       listing,
		Type:          review.Type,
		Status:        review.Status,
		RatingOverall: review.RatingOverall,
		Categories:    review.Categories,
		Text:          review.Text,
		AuthorName:    review.AuthorName,
		Channel:       review.Channel,
		SubmittedAt:   review.SubmittedAt.UTC().Format(time.RFC3339),
		Approved:      review.Approved,
	}
}

// PaginatedReviews is the GET /reviews payload. Total comes from a separate
// count query over the same predicate, so it covers the whole filtered set.
type PaginatedReviews struct {
	Items    []NormalizedReview `json:"items"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
	Total    int                `json:"total"`
}

// PublicReviewsResponse is the approved-only review set of one listing.
type PublicReviewsResponse struct {
	Listing listingModel.ListingRef `json:"listing"`
	Items   []NormalizedReview      `json:"items"`
}

// ApproveReviewResponse echoes the approve mutation.
type ApproveReviewResponse struct {
	ReviewID uuid.UUID `json:"reviewId"`
	Approved bool      `json:"approved"`
}

// SyncResult reports how many records a sync run upserted.
type SyncResult struct {
	Synced   int `json:"synced"`
	Listings int `json:"listings"`
}

// =====================================================
// PARSING HELPERS
// =====================================================

func validateSort(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	field, direction := splitSort(s)
	if !SortableFields[field] {
		return fmt.Errorf("unsupported sort field %q", field)
	}
	if direction != "asc" && direction != "desc" {
		return fmt.Errorf("sort direction must be asc or desc")
	}
	return nil
}

// parseSort resolves a validated sort parameter into field + direction,
// falling back to the default when empty.
func parseSort(s string) (field string, desc bool) {
	if s == "" {
		s = DefaultSort
	}
	field, direction := splitSort(s)
	return field, direction == "desc"
}

func splitSort(s string) (field, direction string) {
	parts := strings.SplitN(s, ":", 2)
	field = parts[0]
	direction = "desc"
	if len(parts) == 2 && parts[1] != "" {
		direction = parts[1]
	}
	return field, direction
}
