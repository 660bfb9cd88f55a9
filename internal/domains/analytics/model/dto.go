package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	reviewModel "reviews-backend/internal/domains/review/model"
	"reviews-backend/internal/shared/utils"
)

// Trend buckets
const (
	BucketDay   = "day"
	BucketWeek  = "week"
	BucketMonth = "month"
)

// AnalyticsRequest carries the query parameters of GET /reviews/analytics.
type AnalyticsRequest struct {
	ListingID string `form:"listingId"`
	From      string `form:"from"`
	To        string `form:"to"`
	Bucket    string `form:"bucket,default=month"`
}

func (r AnalyticsRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.ListingID, is.UUIDv4.Error("listingId must be a UUID")),
		validation.Field(&r.From, validation.By(utils.IsDateString)),
		validation.Field(&r.To, validation.By(utils.IsDateString)),
		validation.Field(&r.Bucket, validation.In(BucketDay, BucketWeek, BucketMonth)),
	)
	if err != nil {
		return reviewModel.NewValidationError(
			reviewModel.ErrCodeInvalidFilter, "invalid analytics filters", err)
	}
	return nil
}

func (r AnalyticsRequest) ToFilter() AnalyticsFilter {
	filter := AnalyticsFilter{Bucket: r.Bucket}
	if filter.Bucket == "" {
		filter.Bucket = BucketMonth
	}

	if r.ListingID != "" {
		id, _ := uuid.Parse(r.ListingID)
		filter.ListingID = &id
	}
	filter.From = utils.ParseDateBound(r.From, false)
	filter.To = utils.ParseDateBound(r.To, true)

	return filter
}

// AnalyticsFilter is the typed filter the aggregate queries consume.
type AnalyticsFilter struct {
	ListingID *uuid.UUID
	From      *time.Time
	To        *time.Time
	Bucket    string
}

// ReviewStat is the per-review projection the in-process aggregations
// (category averages, trend, issues) run over.
type ReviewStat struct {
	RatingOverall *float64
	Categories    map[string]float64
	SubmittedAt   time.Time
}

// TopListing is one entry of the top-listings ranking.
type TopListing struct {
	ListingID uuid.UUID `json:"listingId"`
	Name      string    `json:"name"`
	AvgRating float64   `json:"avgRating"`
	Count     int       `json:"count"`
}

// TrendPoint is one time bucket of the trend series.
type TrendPoint struct {
	Bucket    string  `json:"bucket"`
	AvgRating float64 `json:"avgRating"`
	Count     int     `json:"count"`
}

// Issue is a category whose average rating sits below the issue threshold.
type Issue struct {
	Category string  `json:"category"`
	Avg      float64 `json:"avg"`
	Delta    float64 `json:"delta"`
}

// AnalyticsData is the GET /reviews/analytics payload.
type AnalyticsData struct {
	TopListings      []TopListing       `json:"topListings"`
	CategoryAverages map[string]float64 `json:"categoryAverages"`
	Trend            []TrendPoint       `json:"trend"`
	Issues           []Issue            `json:"issues"`
}
