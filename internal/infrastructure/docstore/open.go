package docstore

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"htc-backend/internal/config"
)

// Open connects the backend named by DOCSTORE_DRIVER. Mongo indexes are ensured on the way.
func Open(ctx context.Context, cfg *config.Config, collections Collections) (Store, error) {
	switch cfg.DocStore.Driver {
	case config.DocStorePostgres:
		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load database config: %w", err)
		}
		pg, err := OpenPostgres(ctx, dbConfig, collections)
		if err != nil {
			return nil, err
		}
		return pg, nil

	case config.DocStoreMongo:
		gw, err := OpenMongo(ctx, cfg.Mongo, collections)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		if err := gw.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("mongo index creation failed")
		}
		return gw, nil
	}
	return nil, fmt.Errorf("unknown document store driver %q", cfg.DocStore.Driver)
}
