// Package media ties one uploaded file to one document.
//
// Stored values are either a storage key, which is resolved to a URL on every read,
// or an external value (an absolute http(s) URL or a root-relative path), which is
// returned unchanged and never deleted from storage.
package media

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"htc-backend/internal/infrastructure/storage"
)

// RetryQueue takes over blob deletes that failed inline.
type RetryQueue interface {
	EnqueueBlobDelete(ctx context.Context, key, namespace string) error
}

type Attacher struct {
	storage storage.Storage
	queue   RetryQueue
}

// NewAttacher accepts a nil queue; failed deletes are then only logged.
func NewAttacher(s storage.Storage, q RetryQueue) *Attacher {
	return &Attacher{storage: s, queue: q}
}

func IsExternal(value string) bool {
	v := strings.ToLower(value)
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") || strings.HasPrefix(v, "/")
}

// Namespace is where a document's files live: <collection>/<id>.
func Namespace(collection, id string) string {
	return collection + "/" + id
}

func (a *Attacher) Upload(ctx context.Context, file *storage.File, namespace string) (string, error) {
	return a.storage.Upload(ctx, file, namespace)
}

// Resolve returns a fetchable URL for a stored value. Resolution failures are logged and yield "".
func (a *Attacher) Resolve(ctx context.Context, value, namespace string) string {
	if value == "" || IsExternal(value) {
		return value
	}
	url, err := a.storage.GetURL(ctx, value, namespace)
	if err != nil {
		log.Warn().Err(err).Str("key", value).Msg("failed to resolve blob url")
		return ""
	}
	return url
}

// Release deletes a stored blob best effort. A failed delete is handed to the retry queue when one is set.
func (a *Attacher) Release(ctx context.Context, value, namespace string) bool {
	if value == "" || IsExternal(value) {
		return false
	}
	if a.storage.Delete(ctx, value, namespace) {
		return true
	}

	if exists, err := a.storage.Exists(ctx, storage.ResolveKey(value, namespace)); err == nil && !exists {
		return false
	}

	log.Warn().Str("key", value).Str("namespace", namespace).Msg("blob delete failed")
	if a.queue != nil {
		if err := a.queue.EnqueueBlobDelete(context.WithoutCancel(ctx), value, namespace); err != nil {
			log.Warn().Err(err).Str("key", value).Msg("failed to queue blob delete")
		}
	}
	return false
}
