package container

import (
	"context"
	"fmt"
	"time"

	"reviews-backend/internal/config"
	"reviews-backend/internal/infrastructure/database"
	"reviews-backend/internal/infrastructure/hostaway"
	"reviews-backend/pkg/logger"

	analyticsHandler "reviews-backend/internal/domains/analytics/handler"
	analyticsRepo "reviews-backend/internal/domains/analytics/repository"
	analyticsService "reviews-backend/internal/domains/analytics/service"
	listingHandler "reviews-backend/internal/domains/listing/handler"
	listingRepo "reviews-backend/internal/domains/listing/repository"
	reviewHandler "reviews-backend/internal/domains/review/handler"
	reviewRepo "reviews-backend/internal/domains/review/repository"
	reviewService "reviews-backend/internal/domains/review/service"
)

// Container is the root of the dependency graph. Every component is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then repositories, services, handlers.
type Container struct {
	// ===== INFRASTRUCTURE =====
	Config   *config.Config
	DB       *database.PostgresDB
	Hostaway *hostaway.Client

	// ===== REPOSITORIES =====
	ReviewRepo    reviewRepo.ReviewRepository
	ListingRepo   listingRepo.ListingRepository
	AnalyticsRepo analyticsRepo.AnalyticsRepository

	// ===== SERVICES =====
	ReviewService    reviewService.ServiceInterface
	AnalyticsService analyticsService.AnalyticsServiceInterface

	// ===== HANDLERS =====
	ReviewHandler    *reviewHandler.ReviewHandler
	ListingHandler   *listingHandler.ListingHandler
	AnalyticsHandler *analyticsHandler.AnalyticsHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	if err := c.initDatabase(); err != nil {
		return nil, err
	}

	c.Hostaway = hostaway.NewClient(cfg.Hostaway)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("Container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})
	return c, nil
}

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	c.DB = db
	return nil
}

func (c *Container) initRepositories() {
	c.ReviewRepo = reviewRepo.NewPostgresReviewRepository(c.DB.Pool)
	c.ListingRepo = listingRepo.NewPostgresListingRepository(c.DB.Pool)
	c.AnalyticsRepo = analyticsRepo.NewPostgresAnalyticsRepository(c.DB.Pool)
}

func (c *Container) initServices() {
	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo, c.ListingRepo, c.Hostaway)
	c.AnalyticsService = analyticsService.NewAnalyticsService(c.AnalyticsRepo)
}

func (c *Container) initHandlers() {
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)
	c.ListingHandler = listingHandler.NewListingHandler(c.ListingRepo)
	c.AnalyticsHandler = analyticsHandler.NewAnalyticsHandler(c.AnalyticsService)
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("Failed to close database pool", err)
		}
	}
}
