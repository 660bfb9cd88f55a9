package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	listingModel "reviews-backend/internal/domains/listing/model"
	"reviews-backend/internal/domains/review/model"
)

type stubReviewService struct {
	syncErr   error
	publicErr error
}

func (s *stubReviewService) ListReviews(ctx context.Context, req model.ListReviewsRequest) (*model.PaginatedReviews, error) {
	return &model.PaginatedReviews{Items: []model.NormalizedReview{}}, nil
}

func (s *stubReviewService) GetPublicReviews(ctx context.Context, listingID string) (*model.PublicReviewsResponse, error) {
	if s.publicErr != nil {
		return nil, s.publicErr
	}
	return &model.PublicReviewsResponse{Items: []model.NormalizedReview{}}, nil
}

func (s *stubReviewService) ApproveReview(ctx context.Context, req model.ApproveReviewRequest, actor *string) (*model.ApproveReviewResponse, error) {
	return nil, model.ErrReviewNotFound
}

func (s *stubReviewService) SyncReviews(ctx context.Context) (*model.SyncResult, error) {
	if s.syncErr != nil {
		return nil, s.syncErr
	}
	return &model.SyncResult{}, nil
}

func (s *stubReviewService) ExportReviews(ctx context.Context, req model.ListReviewsRequest) (*excelize.File, error) {
	return excelize.NewFile(), nil
}

func performRequest(h *ReviewHandler, register func(*gin.Engine), method, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	register(router)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestSyncReviewsSchemaFailureReturns400(t *testing.T) {
	svc := &stubReviewService{
		syncErr: model.NewValidationError(model.ErrCodeSyncFailed, "source records failed validation",
			errors.New("listingName: cannot be blank")),
	}
	h := NewReviewHandler(svc)

	w := performRequest(h, func(r *gin.Engine) {
		r.POST("/reviews/sync", h.SyncReviews)
	}, http.MethodPost, "/reviews/sync")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"error"`)
}

func TestSyncReviewsUpstreamFailureReturns500(t *testing.T) {
	svc := &stubReviewService{syncErr: errors.New("connection refused")}
	h := NewReviewHandler(svc)

	w := performRequest(h, func(r *gin.Engine) {
		r.POST("/reviews/sync", h.SyncReviews)
	}, http.MethodPost, "/reviews/sync")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetPublicReviewsUnknownListingReturns404(t *testing.T) {
	svc := &stubReviewService{publicErr: listingModel.ErrListingNotFound}
	h := NewReviewHandler(svc)

	w := performRequest(h, func(r *gin.Engine) {
		r.GET("/public-reviews/:listingId", h.GetPublicReviews)
	}, http.MethodGet, "/public-reviews/8f14e45f-ea4a-4c1b-8d3c-1a2b3c4d5e6f")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApproveReviewUnknownReviewReturns404(t *testing.T) {
	h := NewReviewHandler(&stubReviewService{})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/reviews/approve", h.ApproveReview)

	body := strings.NewReader(`{"reviewId": "8f14e45f-ea4a-4c1b-8d3c-1a2b3c4d5e6f", "approved": true}`)
	req := httptest.NewRequest(http.MethodPost, "/reviews/approve", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Review not found")
}
