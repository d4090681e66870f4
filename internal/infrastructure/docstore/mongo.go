package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"htc-backend/internal/config"
	"htc-backend/internal/infrastructure/database"
)

// MongoGateway owns the client and database handle for the process lifetime.
type MongoGateway struct {
	client      *mongo.Client
	db          *mongo.Database
	collections Collections
}

// OpenMongo connects and pings the primary, retrying with backoff.
func OpenMongo(ctx context.Context, cfg config.MongoConfig, collections Collections) (*MongoGateway, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	var client *mongo.Client
	err := database.Retry(ctx, "mongo", cfg.MaxRetries, cfg.RetryDelay, func(ctx context.Context) error {
		c, err := mongo.Connect(options.Client().
			ApplyURI(cfg.URI).
			SetConnectTimeout(timeout).
			SetServerSelectionTimeout(timeout))
		if err != nil {
			return err
		}

		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := c.Ping(pingCtx, readpref.Primary()); err != nil {
			_ = c.Disconnect(context.Background())
			return err
		}

		client = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("database", cfg.Database).Msg("mongo gateway ready")

	return &MongoGateway{
		client:      client,
		db:          client.Database(cfg.Database),
		collections: collections,
	}, nil
}

func (g *MongoGateway) Driver() string { return config.DocStoreMongo }

func (g *MongoGateway) CollectionName(kind string) string { return g.collections.Name(kind) }

// Collection resolves the handle for an entity kind.
func (g *MongoGateway) Collection(kind string) *mongo.Collection {
	return g.db.Collection(g.CollectionName(kind))
}

func (g *MongoGateway) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := g.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping failed: %w", err)
	}
	return nil
}

func (g *MongoGateway) Close(ctx context.Context) error {
	if err := g.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongo disconnect: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes list queries rely on. Creating an existing index is a no-op.
func (g *MongoGateway) EnsureIndexes(ctx context.Context) error {
	for kind := range g.collections {
		models := []mongo.IndexModel{
			{Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}},
		}
		if kind == KindGallery {
			models = append(models, mongo.IndexModel{Keys: bson.D{{Key: "artist_id", Value: 1}}})
		}
		if _, err := g.Collection(kind).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", g.CollectionName(kind), err)
		}
	}
	return nil
}
