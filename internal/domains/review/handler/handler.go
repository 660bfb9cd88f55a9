package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	listingModel "reviews-backend/internal/domains/listing/model"
	"reviews-backend/internal/domains/review/model"
	"reviews-backend/internal/domains/review/service"
	"reviews-backend/internal/shared/response"
)

type ReviewHandler struct {
	reviewService service.ServiceInterface
}

func NewReviewHandler(reviewService service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// respondError maps domain errors onto the envelope: validation failures
// become 400s, missing entities 404s, everything else a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case model.IsValidationError(err):
		response.BadRequest(c, err.Error())
	case errors.Is(err, model.ErrReviewNotFound):
		response.NotFound(c, "Review not found")
	case errors.Is(err, listingModel.ErrListingNotFound):
		response.NotFound(c, "Listing not found")
	default:
		response.InternalServerError(c, "Request failed", err.Error())
	}
}

// ListReviews returns the filtered, sorted, paginated review set.
// GET /api/v1/reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	var req model.ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.reviewService.ListReviews(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ExportReviews streams the filtered review set as an XLSX workbook.
// GET /api/v1/reviews/export
func (h *ReviewHandler) ExportReviews(c *gin.Context) {
	var req model.ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	file, err := h.reviewService.ExportReviews(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("reviews-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		response.InternalServerError(c, "Failed to write export", err.Error())
	}
}

// ApproveReview flips the approval flag and records the audit entry. The
// acting user is taken from the X-Actor header; authentication is out of
// scope for this service.
// POST /api/v1/reviews/approve
func (h *ReviewHandler) ApproveReview(c *gin.Context) {
	var req model.ApproveReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var actor *string
	if v := c.GetHeader("X-Actor"); v != "" {
		actor = &v
	}

	result, err := h.reviewService.ApproveReview(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// SyncReviews triggers a manual ingest run.
// POST /api/v1/reviews/sync
func (h *ReviewHandler) SyncReviews(c *gin.Context) {
	result, err := h.reviewService.SyncReviews(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetPublicReviews returns the approved-only reviews of one listing.
// GET /api/v1/public-reviews/:listingId
func (h *ReviewHandler) GetPublicReviews(c *gin.Context) {
	result, err := h.reviewService.GetPublicReviews(c.Request.Context(), c.Param("listingId"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
