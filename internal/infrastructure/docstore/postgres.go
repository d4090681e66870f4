package docstore

import (
	"context"
	"fmt"

	"htc-backend/internal/config"
	"htc-backend/internal/infrastructure/database"
)

// PostgresStore keeps each collection as a JSONB table in PostgreSQL.
type PostgresStore struct {
	db          *database.PostgresDB
	collections Collections
}

func OpenPostgres(ctx context.Context, cfg *database.DBConfig, collections Collections) (*PostgresStore, error) {
	db := database.NewPostgresDB(cfg)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return &PostgresStore{db: db, collections: collections}, nil
}

func (s *PostgresStore) Driver() string { return config.DocStorePostgres }

func (s *PostgresStore) CollectionName(kind string) string { return s.collections.Name(kind) }

func (s *PostgresStore) Ping(ctx context.Context) error { return s.db.HealthCheck(ctx) }

func (s *PostgresStore) Close(context.Context) error {
	s.db.Close()
	return nil
}
