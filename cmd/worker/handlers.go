package main

import (
	"github.com/hibiken/asynq"

	reviewJob "reviews-backend/internal/domains/review/job"
	"reviews-backend/internal/infrastructure/queue"
	"reviews-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	reviewSync *reviewJob.ReviewSyncHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		reviewSync: reviewJob.NewReviewSyncHandler(c.ReviewService),
	}
}

func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TypeReviewSync, h.reviewSync.ProcessTask)
}
