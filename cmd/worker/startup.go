package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
	"github.com/rs/zerolog/log"

	"htc-backend/pkg/container"
	"htc-backend/pkg/logger"
)

// HealthChecker performs startup health checks
type HealthChecker struct {
	redisClient *redis.Client
	store       interface{ Ping(context.Context) error }
}

// startServices checks Redis and the document store, then exposes /health and /ready
func startServices(c *container.Container) error {
	log.Info().Str("app", c.Config.App.Name).Msg("worker starting")

	if c.Redis == nil {
		return errors.New("redis is required by the worker")
	}

	checker := &HealthChecker{
		redisClient: redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
			MaintNotificationsConfig: &maintnotifications.Config{
				Mode: maintnotifications.ModeDisabled,
			},
		}),
		store: c.Store,
	}
	defer checker.redisClient.Close()

	if err := checker.checkAll(); err != nil {
		return err
	}

	go startHealthCheckServer(getEnv("WORKER_HEALTH_ADDR", ":9999"))
	return nil
}

// checkAll runs all health checks
func (h *HealthChecker) checkAll() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"Redis Connection", h.checkRedis},
		{"Document Store", h.checkStore},
	}

	for _, check := range checks {
		if err := check.fn(); err != nil {
			log.Error().Err(err).Str("check", check.name).Msg("health check failed")
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("health check ok")
	}
	return nil
}

func (h *HealthChecker) checkRedis() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.redisClient.Ping(ctx).Err()
}

func (h *HealthChecker) checkStore() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.store.Ping(ctx)
}

// startHealthCheckServer serves liveness and readiness probes
func startHealthCheckServer(addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthCheckHandler)
	mux.HandleFunc("/ready", readyCheckHandler)

	log.Info().Str("addr", addr).Msg("[Health] starting health check server")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("[Health] failed to start", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"UP","service":"htc-worker"}`))
}

func readyCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"READY"}`))
}
