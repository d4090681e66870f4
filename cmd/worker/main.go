package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"htc-backend/pkg/container"
	"htc-backend/pkg/logger"
)

func main() {
	envErr := godotenv.Load()
	logger.Init(getEnv("APP_ENV", "development"), getEnv("LOG_LEVEL", "info"))
	if envErr != nil {
		log.Info().Msg("[Config] no .env file found, using system environment variables")
	}

	// Initialize container
	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("[Container] failed to initialize")
	}
	defer c.Cleanup()

	if !c.Config.Worker.Enabled {
		log.Info().Msg("[Worker] disabled by WORKER_ENABLED, exiting")
		return
	}

	// Health checks before anything starts consuming
	if err := startServices(c); err != nil {
		log.Fatal().Err(err).Msg("[Startup] health check failed")
	}

	handlers := initializeHandlers(c)
	srv := setupAsynqServer(c, handlers)
	scheduler := setupScheduler(c)

	waitForShutdown(srv, scheduler)
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("[Shutdown] gracefully stopping")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Info().Msg("[Shutdown] stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
