package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reviews-backend/internal/shared/middleware"
	"reviews-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		middleware.Metrics(),
	)

	// Prometheus scrape endpoint, outside the versioned API
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupReviewRoutes(v1, c)
		setupListingRoutes(v1, c)
		setupPublicRoutes(v1, c)
	}

	return router
}

// ========================================
// REVIEW ROUTES
// ========================================
func setupReviewRoutes(v1 *gin.RouterGroup, c *container.Container) {
	reviews := v1.Group("/reviews")
	{
		reviews.GET("", c.ReviewHandler.ListReviews)
		reviews.GET("/analytics", c.AnalyticsHandler.GetAnalytics)
		reviews.GET("/export", c.ReviewHandler.ExportReviews)
		reviews.POST("/sync", c.ReviewHandler.SyncReviews)
		reviews.POST("/approve", c.ReviewHandler.ApproveReview)
	}
}

// ========================================
// LISTING ROUTES
// ========================================
func setupListingRoutes(v1 *gin.RouterGroup, c *container.Container) {
	listings := v1.Group("/listings")
	{
		listings.GET("", c.ListingHandler.ListListings)
	}
}

// ========================================
// PUBLIC ROUTES
// ========================================
// Approved reviews only, consumed by the public property pages.
func setupPublicRoutes(v1 *gin.RouterGroup, c *container.Container) {
	public := v1.Group("/public-reviews")
	{
		public.GET("/:listingId", c.ReviewHandler.GetPublicReviews)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := appCtx.DB.Ping(ctx); err != nil {
				dbStatus = "unreachable"
				health["status"] = "degraded"
			}
		}
		health["services"] = gin.H{"database": dbStatus}

		status := 200
		if health["status"] != "ok" {
			status = 503
		}
		c.JSON(status, health)
	}
}
