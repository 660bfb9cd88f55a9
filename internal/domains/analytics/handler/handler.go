package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviews-backend/internal/domains/analytics/model"
	"reviews-backend/internal/domains/analytics/service"
	reviewModel "reviews-backend/internal/domains/review/model"
	"reviews-backend/internal/shared/response"
	"reviews-backend/pkg/logger"
)

type AnalyticsHandler struct {
	analyticsService service.AnalyticsServiceInterface
}

func NewAnalyticsHandler(analyticsService service.AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetAnalytics returns the dashboard aggregates: top listings, category
// averages, the trend series and low-scoring categories.
// GET /api/v1/reviews/analytics
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	var req model.AnalyticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	data, err := h.analyticsService.GetAnalytics(c.Request.Context(), req)
	if err != nil {
		if reviewModel.IsValidationError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		logger.Error("Failed to compute analytics", err)
		response.InternalServerError(c, "Failed to compute analytics", err.Error())
		return
	}

	response.Success(c, http.StatusOK, data)
}
