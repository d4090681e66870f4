package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"htc-backend/internal/config"
)

const (
	TypeBlobDelete    = "blob:delete"
	TypeBlobReconcile = "blob:reconcile"

	QueueMedia = "media"
)

// BlobDeletePayload names a blob whose best-effort delete failed during a request.
type BlobDeletePayload struct {
	Key       string `json:"key"`
	Namespace string `json:"namespace"`
}

// BlobReconcilePayload lists the key prefixes swept for orphans.
type BlobReconcilePayload struct {
	Prefixes []string `json:"prefixes"`
}

func NewBlobDeleteTask(key, namespace string) (*asynq.Task, error) {
	payload, err := json.Marshal(BlobDeletePayload{Key: key, Namespace: namespace})
	if err != nil {
		return nil, fmt.Errorf("marshal blob delete payload: %w", err)
	}
	return asynq.NewTask(TypeBlobDelete, payload), nil
}

func NewBlobReconcileTask(prefixes []string) (*asynq.Task, error) {
	payload, err := json.Marshal(BlobReconcilePayload{Prefixes: prefixes})
	if err != nil {
		return nil, fmt.Errorf("marshal blob reconcile payload: %w", err)
	}
	return asynq.NewTask(TypeBlobReconcile, payload), nil
}

// RedisOpt builds the asynq connection from the shared Redis settings.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}
}
