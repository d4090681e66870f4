package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Memory keeps documents in process, encoded exactly as the Mongo backend would store them.
type Memory[T Entity] struct {
	mu         sync.RWMutex
	collection string
	newFn      func() T
	clock      Clock
	docs       map[string][]byte
}

func NewMemory[T Entity](collection string, newFn func() T) *Memory[T] {
	return &Memory[T]{
		collection: collection,
		newFn:      newFn,
		clock:      SystemClock,
		docs:       make(map[string][]byte),
	}
}

// WithClock replaces the timestamp source.
func (m *Memory[T]) WithClock(clock Clock) *Memory[T] {
	m.clock = clock
	return m
}

func (m *Memory[T]) Collection() string { return m.collection }

func (m *Memory[T]) GetByID(ctx context.Context, id string) (T, error) {
	m.mu.RLock()
	raw, ok := m.docs[id]
	m.mu.RUnlock()

	var zero T
	if !ok {
		return zero, ErrNotFound
	}
	return m.decode(raw)
}

func (m *Memory[T]) GetAll(ctx context.Context) ([]T, error) {
	return m.Find(ctx, Filter{})
}

func (m *Memory[T]) Find(ctx context.Context, filter Filter, sorts ...Sort) ([]T, error) {
	order := DefaultSort
	if len(sorts) > 0 {
		order = sorts[0]
	}
	rows, err := m.scan(filter, order)
	if err != nil {
		return nil, err
	}
	return m.decodeAll(rows)
}

func (m *Memory[T]) Create(ctx context.Context, entity T) (T, error) {
	now := m.clock()
	entity.SetID(NewID())
	entity.SetCreatedAt(now)
	entity.SetUpdatedAt(now)

	raw, err := bson.Marshal(entity)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("marshal %s document: %w", m.collection, err)
	}

	m.mu.Lock()
	m.docs[entity.GetID()] = raw
	m.mu.Unlock()

	return entity, nil
}

func (m *Memory[T]) Update(ctx context.Context, id string, entity T) (UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.docs[id]
	if !ok {
		return UpdateNotFound, nil
	}

	var stored bson.M
	if err := bson.Unmarshal(current, &stored); err != nil {
		return UpdateNotFound, fmt.Errorf("decode %s document: %w", m.collection, err)
	}

	entity.SetID(id)
	entity.SetCreatedAt(DocumentTime(stored, FieldCreatedAt))

	next, err := ToDocument(entity)
	if err != nil {
		return UpdateNotFound, err
	}
	if ContentEqual(stored, next) {
		entity.SetUpdatedAt(DocumentTime(stored, FieldUpdatedAt))
		return UpdateUnchanged, nil
	}

	entity.SetUpdatedAt(NextUpdatedAt(m.clock(), DocumentTime(stored, FieldUpdatedAt)))
	raw, err := bson.Marshal(entity)
	if err != nil {
		return UpdateNotFound, fmt.Errorf("marshal %s document: %w", m.collection, err)
	}
	m.docs[id] = raw
	return UpdateApplied, nil
}

func (m *Memory[T]) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[id]; !ok {
		return false, nil
	}
	delete(m.docs, id)
	return true, nil
}

func (m *Memory[T]) GetPaged(ctx context.Context, query PageQuery) (Page[T], error) {
	if err := query.Validate(); err != nil {
		return Page[T]{}, err
	}

	rows, err := m.scan(query.Filter, query.Order())
	if err != nil {
		return Page[T]{}, err
	}

	total := int64(len(rows))
	start := min(query.Skip(), total)
	end := min(start+int64(query.PageSize), total)

	items, err := m.decodeAll(rows[start:end])
	if err != nil {
		return Page[T]{}, err
	}

	return Page[T]{Items: items, Total: total, Page: query.Page, PageSize: query.PageSize}, nil
}

func (m *Memory[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	rows, err := m.scan(filter, DefaultSort)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

type memoryRow struct {
	doc bson.M
	raw []byte
}

func (m *Memory[T]) scan(filter Filter, order Sort) ([]memoryRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := make([]memoryRow, 0, len(m.docs))
	for _, raw := range m.docs {
		var doc bson.M
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", m.collection, err)
		}
		if filter.Matches(doc) {
			rows = append(rows, memoryRow{doc: doc, raw: raw})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		cmp := compareField(rows[i].doc, rows[j].doc, order.Field)
		if cmp == 0 {
			cmp = compareField(rows[i].doc, rows[j].doc, FieldID)
		}
		if order.Ascending {
			return cmp < 0
		}
		return cmp > 0
	})
	return rows, nil
}

func (m *Memory[T]) decode(raw []byte) (T, error) {
	doc := m.newFn()
	if err := bson.Unmarshal(raw, doc); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s document: %w", m.collection, err)
	}
	return doc, nil
}

func (m *Memory[T]) decodeAll(rows []memoryRow) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		doc, err := m.decode(row.raw)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}
