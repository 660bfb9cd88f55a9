package service

import (
	"context"

	"reviews-backend/internal/domains/analytics/model"
)

type AnalyticsServiceInterface interface {
	GetAnalytics(ctx context.Context, req model.AnalyticsRequest) (*model.AnalyticsData, error)
}
