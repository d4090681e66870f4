package media

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"htc-backend/internal/infrastructure/storage"
	"htc-backend/pkg/repository"
)

// Slot reads and writes the single file field of an entity.
type Slot[T repository.Entity] struct {
	Get func(T) string
	Set func(T, string)
}

// Manager runs the create, update and delete lifecycle for documents that own one file.
type Manager[T repository.Entity] struct {
	attacher *Attacher
	repo     repository.Repository[T]
	slot     Slot[T]
}

func NewManager[T repository.Entity](a *Attacher, repo repository.Repository[T], slot Slot[T]) *Manager[T] {
	return &Manager[T]{attacher: a, repo: repo, slot: slot}
}

func (m *Manager[T]) namespace(id string) string {
	return Namespace(m.repo.Collection(), id)
}

// Create persists entity, then uploads file into the new document's namespace and attaches the key
// with a second write. If the upload or the attach fails the document is deleted again.
func (m *Manager[T]) Create(ctx context.Context, entity T, file *storage.File) (T, error) {
	var zero T

	created, err := m.repo.Create(ctx, entity)
	if err != nil {
		return zero, err
	}
	if file == nil {
		return created, nil
	}

	id := created.GetID()
	key, err := m.attacher.Upload(ctx, file, m.namespace(id))
	if err != nil {
		m.rollback(ctx, id)
		return zero, fmt.Errorf("upload %s file: %w", m.repo.Collection(), err)
	}

	m.slot.Set(created, key)
	if _, err := m.repo.Update(ctx, id, created); err != nil {
		m.attacher.Release(ctx, key, m.namespace(id))
		m.rollback(ctx, id)
		return zero, fmt.Errorf("attach %s file: %w", m.repo.Collection(), err)
	}
	return created, nil
}

func (m *Manager[T]) rollback(ctx context.Context, id string) {
	if _, err := m.repo.Delete(context.WithoutCancel(ctx), id); err != nil {
		log.Warn().Err(err).Str("collection", m.repo.Collection()).Str("id", id).
			Msg("failed to remove document after upload failure")
	}
}

// Update persists entity, whose fields are already merged. A new file is uploaded before the write;
// the previous value is released only after the write succeeded and no longer references it.
func (m *Manager[T]) Update(ctx context.Context, id string, entity T, previous string, file *storage.File) (repository.UpdateResult, error) {
	ns := m.namespace(id)

	var uploaded string
	if file != nil {
		key, err := m.attacher.Upload(ctx, file, ns)
		if err != nil {
			return repository.UpdateNotFound, fmt.Errorf("upload %s file: %w", m.repo.Collection(), err)
		}
		uploaded = key
		m.slot.Set(entity, key)
	}

	res, err := m.repo.Update(ctx, id, entity)
	if err != nil || !res.Found() {
		if uploaded != "" {
			m.attacher.Release(ctx, uploaded, ns)
		}
		return res, err
	}

	if previous != "" && previous != m.slot.Get(entity) {
		m.attacher.Release(ctx, previous, ns)
	}
	return res, nil
}

// Delete releases the entity's file, then removes the document.
func (m *Manager[T]) Delete(ctx context.Context, entity T) (bool, error) {
	m.attacher.Release(ctx, m.slot.Get(entity), m.namespace(entity.GetID()))
	return m.repo.Delete(ctx, entity.GetID())
}

// Release drops the entity's file without touching the document.
func (m *Manager[T]) Release(ctx context.Context, entity T) bool {
	return m.attacher.Release(ctx, m.slot.Get(entity), m.namespace(entity.GetID()))
}

func (m *Manager[T]) Resolve(ctx context.Context, entity T) string {
	return m.attacher.Resolve(ctx, m.slot.Get(entity), m.namespace(entity.GetID()))
}

// StoredKeys lists the storage keys (not external values) held by all documents.
func (m *Manager[T]) StoredKeys(ctx context.Context) ([]string, error) {
	docs, err := m.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(docs))
	for _, doc := range docs {
		value := m.slot.Get(doc)
		if value == "" || IsExternal(value) {
			continue
		}
		keys = append(keys, storage.ResolveKey(value, m.namespace(doc.GetID())))
	}
	return keys, nil
}

// KeySource is anything that can list the keys it references.
type KeySource interface {
	StoredKeys(ctx context.Context) ([]string, error)
	Prefix() string
}

func (m *Manager[T]) Prefix() string { return m.repo.Collection() + "/" }

// References aggregates key sources for the orphan sweep.
type References []KeySource

func (r References) ReferencedKeys(ctx context.Context) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	for _, src := range r {
		keys, err := src.StoredKeys(ctx)
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			out[k] = struct{}{}
		}
	}
	return out, nil
}

// Prefixes lists the storage prefixes the sources own.
func (r References) Prefixes() []string {
	out := make([]string, 0, len(r))
	for _, src := range r {
		out = append(out, src.Prefix())
	}
	return out
}
