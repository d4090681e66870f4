package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"htc-backend/pkg/repository"
)

// MongoRepository implements repository.Repository over one collection.
type MongoRepository[T repository.Entity] struct {
	coll  *mongo.Collection
	name  string
	newFn func() T
	clock repository.Clock
}

func NewMongoRepository[T repository.Entity](g *MongoGateway, kind string, newFn func() T) *MongoRepository[T] {
	return &MongoRepository[T]{
		coll:  g.Collection(kind),
		name:  g.CollectionName(kind),
		newFn: newFn,
		clock: repository.SystemClock,
	}
}

func (r *MongoRepository[T]) Collection() string { return r.name }

func byID(id string) bson.M { return bson.M{repository.FieldID: id} }

func (r *MongoRepository[T]) GetByID(ctx context.Context, id string) (T, error) {
	doc := r.newFn()
	err := r.coll.FindOne(ctx, byID(id)).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		var zero T
		return zero, repository.ErrNotFound
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("find %s %s: %w", r.name, id, err)
	}
	return doc, nil
}

func (r *MongoRepository[T]) GetAll(ctx context.Context) ([]T, error) {
	return r.Find(ctx, repository.Filter{})
}

func (r *MongoRepository[T]) Find(ctx context.Context, filter repository.Filter, sorts ...repository.Sort) ([]T, error) {
	order := repository.DefaultSort
	if len(sorts) > 0 {
		order = sorts[0]
	}
	return r.find(ctx, filter, options.Find().SetSort(SortToBSON(order)))
}

func (r *MongoRepository[T]) find(ctx context.Context, filter repository.Filter, opts *options.FindOptionsBuilder) ([]T, error) {
	cursor, err := r.coll.Find(ctx, FilterToBSON(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", r.name, err)
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	for cursor.Next(ctx) {
		doc := r.newFn()
		if err := cursor.Decode(doc); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", r.name, err)
		}
		out = append(out, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", r.name, err)
	}
	return out, nil
}

func (r *MongoRepository[T]) Create(ctx context.Context, entity T) (T, error) {
	now := r.clock()
	entity.SetID(repository.NewID())
	entity.SetCreatedAt(now)
	entity.SetUpdatedAt(now)

	if _, err := r.coll.InsertOne(ctx, entity); err != nil {
		var zero T
		return zero, fmt.Errorf("insert into %s: %w", r.name, err)
	}
	return entity, nil
}

func (r *MongoRepository[T]) Update(ctx context.Context, id string, entity T) (repository.UpdateResult, error) {
	var stored bson.M
	err := r.coll.FindOne(ctx, byID(id)).Decode(&stored)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.UpdateNotFound, nil
	}
	if err != nil {
		return repository.UpdateNotFound, fmt.Errorf("load %s %s: %w", r.name, id, err)
	}

	entity.SetID(id)
	entity.SetCreatedAt(repository.DocumentTime(stored, repository.FieldCreatedAt))

	next, err := repository.ToDocument(entity)
	if err != nil {
		return repository.UpdateNotFound, err
	}
	if repository.ContentEqual(stored, next) {
		entity.SetUpdatedAt(repository.DocumentTime(stored, repository.FieldUpdatedAt))
		return repository.UpdateUnchanged, nil
	}

	entity.SetUpdatedAt(repository.NextUpdatedAt(r.clock(), repository.DocumentTime(stored, repository.FieldUpdatedAt)))
	res, err := r.coll.ReplaceOne(ctx, byID(id), entity)
	if err != nil {
		return repository.UpdateNotFound, fmt.Errorf("replace %s %s: %w", r.name, id, err)
	}

	switch {
	case res.MatchedCount == 0:
		return repository.UpdateNotFound, nil
	case res.ModifiedCount == 0:
		return repository.UpdateUnchanged, nil
	}
	return repository.UpdateApplied, nil
}

func (r *MongoRepository[T]) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return false, fmt.Errorf("delete %s %s: %w", r.name, id, err)
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoRepository[T]) GetPaged(ctx context.Context, query repository.PageQuery) (repository.Page[T], error) {
	if err := query.Validate(); err != nil {
		return repository.Page[T]{}, err
	}

	total, err := r.Count(ctx, query.Filter)
	if err != nil {
		return repository.Page[T]{}, err
	}

	items, err := r.find(ctx, query.Filter, options.Find().
		SetSort(SortToBSON(query.Order())).
		SetSkip(query.Skip()).
		SetLimit(int64(query.PageSize)))
	if err != nil {
		return repository.Page[T]{}, err
	}

	return repository.Page[T]{Items: items, Total: total, Page: query.Page, PageSize: query.PageSize}, nil
}

func (r *MongoRepository[T]) Count(ctx context.Context, filter repository.Filter) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, FilterToBSON(filter))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.name, err)
	}
	return n, nil
}
