package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// BlobQueue schedules blob deletes that failed inline.
type BlobQueue struct {
	client enqueuer
}

func NewBlobQueue(client *asynq.Client) *BlobQueue {
	return &BlobQueue{client: client}
}

func (q *BlobQueue) EnqueueBlobDelete(ctx context.Context, key, namespace string) error {
	task, err := NewBlobDeleteTask(key, namespace)
	if err != nil {
		return err
	}

	info, err := q.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueMedia),
		asynq.MaxRetry(5),
		asynq.ProcessIn(time.Minute),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeBlobDelete, err)
	}

	log.Info().Str("task_id", info.ID).Str("key", key).Msg("blob delete queued for retry")
	return nil
}
