package docstore

import (
	"context"
	"fmt"

	"htc-backend/pkg/repository"
)

// NewRepository builds the repository for kind on whichever backend store is.
// Postgres tables are created on first use.
func NewRepository[T repository.Entity](ctx context.Context, store Store, kind string, newFn func() T) (repository.Repository[T], error) {
	switch s := store.(type) {
	case *MongoGateway:
		return NewMongoRepository(s, kind, newFn), nil
	case *PostgresStore:
		repo, err := NewPostgresRepository(s, kind, newFn)
		if err != nil {
			return nil, err
		}
		if err := repo.EnsureTable(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	case *MemoryStore:
		return repository.NewMemory(s.CollectionName(kind), newFn), nil
	}
	return nil, fmt.Errorf("unsupported document store %T", store)
}

// MemoryStore backs repositories with process memory. Used in tests and local demos.
type MemoryStore struct {
	collections Collections
}

func NewMemoryStore(collections Collections) *MemoryStore {
	return &MemoryStore{collections: collections}
}

func (s *MemoryStore) Driver() string                    { return "memory" }
func (s *MemoryStore) CollectionName(kind string) string { return s.collections.Name(kind) }
func (s *MemoryStore) Ping(context.Context) error        { return nil }
func (s *MemoryStore) Close(context.Context) error       { return nil }
