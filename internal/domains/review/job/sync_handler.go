package job

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"reviews-backend/internal/domains/review/service"
	"reviews-backend/internal/infrastructure/queue"
	"reviews-backend/pkg/logger"
)

// ReviewSyncHandler processes review:sync tasks by pulling the Hostaway
// feed and upserting it into Postgres.
type ReviewSyncHandler struct {
	reviewService service.ServiceInterface
}

func NewReviewSyncHandler(reviewService service.ServiceInterface) *ReviewSyncHandler {
	return &ReviewSyncHandler{
		reviewService: reviewService,
	}
}

func (h *ReviewSyncHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload queue.ReviewSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Unmarshal review sync payload failed", err)
		return err
	}

	log.Info().Msg("Starting scheduled review sync")

	result, err := h.reviewService.SyncReviews(ctx)
	if err != nil {
		logger.Error("Scheduled review sync failed", err)
		return err
	}

	log.Info().
		Int("reviews_synced", result.Synced).
		Int("listings_touched", result.Listings).
		Msg("Scheduled review sync completed")

	return nil
}
