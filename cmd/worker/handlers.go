package main

import (
	"github.com/hibiken/asynq"

	"htc-backend/internal/infrastructure/queue"
	"htc-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	blobDelete    *queue.BlobDeleteHandler
	blobReconcile *queue.BlobReconcileHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		blobDelete:    queue.NewBlobDeleteHandler(c.Storage),
		blobReconcile: queue.NewBlobReconcileHandler(c.Storage, c.References, c.Config.Worker.OrphanGrace),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Media tasks
	mux.HandleFunc(queue.TypeBlobDelete, h.blobDelete.ProcessTask)
	mux.HandleFunc(queue.TypeBlobReconcile, h.blobReconcile.ProcessTask)
}
