package repository

import (
	"context"

	"reviews-backend/internal/domains/analytics/model"
)

type AnalyticsRepository interface {
	// TopListings ranks listings by average overall rating over the filter window.
	TopListings(ctx context.Context, filter model.AnalyticsFilter, limit int) ([]model.TopListing, error)
	// ReviewStats loads the per-review projection the in-process aggregations consume.
	ReviewStats(ctx context.Context, filter model.AnalyticsFilter) ([]model.ReviewStat, error)
}
