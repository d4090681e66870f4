package queue

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"htc-backend/internal/config"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	cfg       config.WorkerConfig
}

func NewScheduler(redis asynq.RedisClientOpt, cfg config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(redis, &asynq.SchedulerOpts{
		Location: time.UTC,
		LogLevel: asynq.InfoLevel,
	})

	return &Scheduler{scheduler: scheduler, cfg: cfg}
}

// RegisterMaintenanceJobs registers the orphan sweep over the given key prefixes.
func (s *Scheduler) RegisterMaintenanceJobs(prefixes []string) error {
	task, err := NewBlobReconcileTask(prefixes)
	if err != nil {
		return err
	}

	entryID, err := s.scheduler.Register(
		s.cfg.ReconcileCron,
		task,
		asynq.Queue(QueueMedia),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("register %s: %w", TypeBlobReconcile, err)
	}

	log.Info().
		Str("entry_id", entryID).
		Str("cron", s.cfg.ReconcileCron).
		Strs("prefixes", prefixes).
		Msg("registered blob reconcile job")
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
