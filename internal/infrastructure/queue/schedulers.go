package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"reviews-backend/internal/config"
	"reviews-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterSyncJobs() error {
	return s.registerReviewSyncJob()
}

// registerReviewSyncJob schedules the periodic Hostaway pull. Hourly by
// default, tunable through JOB_SYNC_CRON.
func (s *Scheduler) registerReviewSyncJob() error {
	payload, err := json.Marshal(ReviewSyncPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeReviewSync, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.SyncCronSpec,
		task,
		asynq.Queue(QueueSync),
		asynq.MaxRetry(2),
		asynq.Timeout(time.Duration(s.jobConfig.SyncTimeoutMin)*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register ReviewSync job", err)
		return err
	}

	logger.Info("✓ Registered ReviewSync", map[string]interface{}{
		"cron": s.jobConfig.SyncCronSpec,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
