package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviews-backend/internal/domains/listing/repository"
	"reviews-backend/internal/shared/response"
)

type ListingHandler struct {
	listingRepo repository.ListingRepository
}

func NewListingHandler(listingRepo repository.ListingRepository) *ListingHandler {
	return &ListingHandler{listingRepo: listingRepo}
}

// ListListings returns every listing that has reviews, with its average
// rating and review count.
// GET /api/v1/listings
func (h *ListingHandler) ListListings(c *gin.Context) {
	stats, err := h.listingRepo.ListWithStats(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to fetch listings", err.Error())
		return
	}

	response.Success(c, http.StatusOK, stats)
}
