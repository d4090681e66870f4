package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"htc-backend/internal/infrastructure/queue"
	"htc-backend/pkg/container"
)

// asynqServer wraps asynq.Server with logging on shutdown
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer creates the server and starts consuming in the background
func setupAsynqServer(c *container.Container, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	concurrency := c.Config.Worker.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	srv := asynq.NewServer(
		queue.RedisOpt(c.Config.Redis),
		asynq.Config{
			Queues: map[string]int{
				queue.QueueMedia: 10,
			},
			Concurrency: concurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).Msg("[Asynq] task failed")
			}),
		},
	)

	go func() {
		log.Info().Int("concurrency", concurrency).Msg("[Worker] starting")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("[Worker] failed")
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown waits for in-flight tasks up to asynq's ShutdownTimeout
func (s *asynqServer) Shutdown() {
	log.Info().Msg("[Worker] shutting down")
	s.Server.Shutdown()
	log.Info().Msg("[Worker] stopped")
}
