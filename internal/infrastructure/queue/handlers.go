package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"htc-backend/internal/infrastructure/storage"
)

// BlobDeleteHandler retries a blob delete until the blob is gone.
type BlobDeleteHandler struct {
	storage storage.Storage
}

func NewBlobDeleteHandler(s storage.Storage) *BlobDeleteHandler {
	return &BlobDeleteHandler{storage: s}
}

func (h *BlobDeleteHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload BlobDeletePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal BlobDelete payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	key := storage.ResolveKey(payload.Key, payload.Namespace)
	if key == "" {
		return nil
	}
	if h.storage.Delete(ctx, key, payload.Namespace) {
		log.Info().Str("key", key).Msg("blob deleted on retry")
		return nil
	}

	exists, err := h.storage.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("stat %s: %w", key, err)
	}
	if !exists {
		return nil
	}
	return fmt.Errorf("blob %s still present", key)
}

// ReferenceLister reports every blob key currently stored on a document.
type ReferenceLister interface {
	ReferencedKeys(ctx context.Context) (map[string]struct{}, error)
}

// BlobReconcileHandler deletes blobs under the swept prefixes that no document references.
// Blobs younger than the grace period are skipped so in-flight creates keep their upload.
type BlobReconcileHandler struct {
	storage storage.Storage
	refs    ReferenceLister
	grace   time.Duration
	now     func() time.Time
}

func NewBlobReconcileHandler(s storage.Storage, refs ReferenceLister, grace time.Duration) *BlobReconcileHandler {
	return &BlobReconcileHandler{storage: s, refs: refs, grace: grace, now: time.Now}
}

// ReconcileReport summarises one sweep.
type ReconcileReport struct {
	Scanned int
	Orphans []string
	Deleted int
}

func (h *BlobReconcileHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload BlobReconcilePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal BlobReconcile payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	report, err := h.Reconcile(ctx, payload.Prefixes)
	if err != nil {
		log.Error().Err(err).Msg("Blob reconcile failed")
		return err
	}

	log.Info().
		Int("scanned", report.Scanned).
		Int("orphans", len(report.Orphans)).
		Int("deleted", report.Deleted).
		Msg("Blob reconcile finished")
	return nil
}

func (h *BlobReconcileHandler) Reconcile(ctx context.Context, prefixes []string) (ReconcileReport, error) {
	var report ReconcileReport

	referenced, err := h.refs.ReferencedKeys(ctx)
	if err != nil {
		return report, fmt.Errorf("collect referenced keys: %w", err)
	}

	cutoff := h.now().Add(-h.grace)
	for _, prefix := range prefixes {
		objects, err := h.storage.List(ctx, prefix)
		if err != nil {
			return report, err
		}

		for _, obj := range objects {
			report.Scanned++
			if _, ok := referenced[obj.Key]; ok || obj.LastModified.After(cutoff) {
				continue
			}

			report.Orphans = append(report.Orphans, obj.Key)
			if h.storage.Delete(ctx, obj.Key, "") {
				report.Deleted++
			}
		}
	}

	if len(report.Orphans) > 0 {
		log.Warn().
			Str("orphans", strings.Join(report.Orphans, ",")).
			Msg("orphaned blobs found")
	}
	return report, nil
}
