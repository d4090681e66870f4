package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/v2/bson"

	"htc-backend/pkg/repository"
)

type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores documents as relaxed extended JSON in a JSONB column.
// The id and timestamps live in their own columns, so the JSONB body holds content only.
type PostgresRepository[T repository.Entity] struct {
	db    pgQuerier
	name  string
	table string
	newFn func() T
	clock repository.Clock
}

func NewPostgresRepository[T repository.Entity](s *PostgresStore, kind string, newFn func() T) (*PostgresRepository[T], error) {
	return newPostgresRepository(s.db.Pool, s.CollectionName(kind), newFn)
}

func newPostgresRepository[T repository.Entity](db pgQuerier, name string, newFn func() T) (*PostgresRepository[T], error) {
	table, err := quoteTable(name)
	if err != nil {
		return nil, err
	}
	return &PostgresRepository[T]{
		db:    db,
		name:  name,
		table: table,
		newFn: newFn,
		clock: repository.SystemClock,
	}, nil
}

// EnsureTable creates the collection table and its list index.
func (r *PostgresRepository[T]) EnsureTable(ctx context.Context) error {
	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			doc        JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`, r.table)
	if _, err := r.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", r.name, err)
	}

	index := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (created_at DESC, id DESC)`,
		pgx.Identifier{r.name + "_created_at_idx"}.Sanitize(), r.table)
	if _, err := r.db.Exec(ctx, index); err != nil {
		return fmt.Errorf("create index on %s: %w", r.name, err)
	}
	return nil
}

func (r *PostgresRepository[T]) Collection() string { return r.name }

// encodeContent strips the column-backed fields and renders the rest as JSON.
func encodeContent(entity any) (string, error) {
	doc, err := repository.ToDocument(entity)
	if err != nil {
		return "", err
	}
	for field := range columnFields {
		delete(doc, field)
	}
	data, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	return string(data), nil
}

func (r *PostgresRepository[T]) decodeRow(row pgx.Row) (T, error) {
	var (
		id        string
		raw       []byte
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&id, &raw, &createdAt, &updatedAt); err != nil {
		var zero T
		return zero, err
	}

	doc := r.newFn()
	if err := bson.UnmarshalExtJSON(raw, false, doc); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s document: %w", r.name, err)
	}
	doc.SetID(id)
	doc.SetCreatedAt(createdAt.UTC())
	doc.SetUpdatedAt(updatedAt.UTC())
	return doc, nil
}

func (r *PostgresRepository[T]) GetByID(ctx context.Context, id string) (T, error) {
	query := fmt.Sprintf(`SELECT id, doc, created_at, updated_at FROM %s WHERE id = $1`, r.table)

	doc, err := r.decodeRow(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return doc, repository.ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("find %s %s: %w", r.name, id, err)
	}
	return doc, nil
}

func (r *PostgresRepository[T]) GetAll(ctx context.Context) ([]T, error) {
	return r.Find(ctx, repository.Filter{})
}

func (r *PostgresRepository[T]) Find(ctx context.Context, filter repository.Filter, sorts ...repository.Sort) ([]T, error) {
	order := repository.DefaultSort
	if len(sorts) > 0 {
		order = sorts[0]
	}
	return r.selectDocs(ctx, filter, order, 0, 0)
}

// selectDocs applies LIMIT/OFFSET only when limit is positive.
func (r *PostgresRepository[T]) selectDocs(ctx context.Context, filter repository.Filter, order repository.Sort, limit, offset int64) ([]T, error) {
	where, args, err := BuildWhere(filter, 1)
	if err != nil {
		return nil, err
	}
	orderBy, err := BuildOrderBy(order)
	if err != nil {
		return nil, err
	}

	var page string
	if limit > 0 {
		page = fmt.Sprintf("LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}

	query := fmt.Sprintf(`SELECT id, doc, created_at, updated_at FROM %s %s %s %s`, r.table, where, orderBy, page)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", r.name, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		doc, err := r.decodeRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.name, err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", r.name, err)
	}
	return out, nil
}

func (r *PostgresRepository[T]) Create(ctx context.Context, entity T) (T, error) {
	now := r.clock()
	entity.SetID(repository.NewID())
	entity.SetCreatedAt(now)
	entity.SetUpdatedAt(now)

	content, err := encodeContent(entity)
	if err != nil {
		var zero T
		return zero, err
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, doc, created_at, updated_at) VALUES ($1, $2, $3, $4)`, r.table)
	if _, err := r.db.Exec(ctx, query, entity.GetID(), content, now, now); err != nil {
		var zero T
		return zero, fmt.Errorf("insert into %s: %w", r.name, err)
	}
	return entity, nil
}

func (r *PostgresRepository[T]) Update(ctx context.Context, id string, entity T) (repository.UpdateResult, error) {
	content, err := encodeContent(entity)
	if err != nil {
		return repository.UpdateNotFound, err
	}

	// updated_at moves forward by at least a millisecond, matching repository.NextUpdatedAt.
	update := fmt.Sprintf(`
		UPDATE %s SET doc = $2,
			updated_at = GREATEST($3::timestamptz, date_trunc('milliseconds', updated_at) + interval '1 millisecond')
		WHERE id = $1 AND doc IS DISTINCT FROM $2::jsonb
		RETURNING created_at, updated_at`, r.table)

	var createdAt, updatedAt time.Time
	err = r.db.QueryRow(ctx, update, id, content, r.clock()).Scan(&createdAt, &updatedAt)
	if err == nil {
		entity.SetID(id)
		entity.SetCreatedAt(createdAt.UTC())
		entity.SetUpdatedAt(updatedAt.UTC())
		return repository.UpdateApplied, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return repository.UpdateNotFound, fmt.Errorf("update %s %s: %w", r.name, id, err)
	}

	lookup := fmt.Sprintf(`SELECT created_at, updated_at FROM %s WHERE id = $1`, r.table)
	err = r.db.QueryRow(ctx, lookup, id).Scan(&createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.UpdateNotFound, nil
	}
	if err != nil {
		return repository.UpdateNotFound, fmt.Errorf("load %s %s: %w", r.name, id, err)
	}

	entity.SetID(id)
	entity.SetCreatedAt(createdAt.UTC())
	entity.SetUpdatedAt(updatedAt.UTC())
	return repository.UpdateUnchanged, nil
}

func (r *PostgresRepository[T]) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table), id)
	if err != nil {
		return false, fmt.Errorf("delete %s %s: %w", r.name, id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepository[T]) GetPaged(ctx context.Context, query repository.PageQuery) (repository.Page[T], error) {
	if err := query.Validate(); err != nil {
		return repository.Page[T]{}, err
	}

	total, err := r.Count(ctx, query.Filter)
	if err != nil {
		return repository.Page[T]{}, err
	}

	items, err := r.selectDocs(ctx, query.Filter, query.Order(), int64(query.PageSize), query.Skip())
	if err != nil {
		return repository.Page[T]{}, err
	}

	return repository.Page[T]{Items: items, Total: total, Page: query.Page, PageSize: query.PageSize}, nil
}

func (r *PostgresRepository[T]) Count(ctx context.Context, filter repository.Filter) (int64, error) {
	where, args, err := BuildWhere(filter, 1)
	if err != nil {
		return 0, err
	}

	var n int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, r.table, where)
	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.name, err)
	}
	return n, nil
}
