package main

import (
	"htc-backend/internal/infrastructure/queue"
	"htc-backend/pkg/container"
	"htc-backend/pkg/logger"
)

// asynqScheduler wraps queue.Scheduler with logging on shutdown
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler registers the orphan sweep over every media collection and starts the scheduler
func setupScheduler(c *container.Container) *asynqScheduler {
	scheduler := queue.NewScheduler(queue.RedisOpt(c.Config.Redis), c.Config.Worker)

	prefixes := c.References.Prefixes()
	if err := scheduler.RegisterMaintenanceJobs(prefixes); err != nil {
		logger.Fatal("[Scheduler] failed to register", err)
	}
	logger.Info("[Scheduler] maintenance jobs registered", map[string]interface{}{
		"prefixes": prefixes,
	})

	go func() {
		logger.Debug("[Scheduler] starting")
		if err := scheduler.Start(); err != nil {
			logger.Fatal("[Scheduler] failed", err)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	logger.Info("[Scheduler] shutting down", nil)
	s.Scheduler.Shutdown()
	logger.Info("[Scheduler] stopped", nil)
}
