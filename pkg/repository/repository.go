package repository

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrInvalidPage = errors.New("page and page size must be at least 1")
)

// Entity is implemented by every persisted document through an embedded Base.
type Entity interface {
	GetID() string
	SetID(id string)
	GetCreatedAt() time.Time
	SetCreatedAt(t time.Time)
	GetUpdatedAt() time.Time
	SetUpdatedAt(t time.Time)
}

// Base holds the fields shared by all documents. Embed it with `bson:",inline"`.
type Base struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

func (b *Base) GetID() string            { return b.ID }
func (b *Base) SetID(id string)          { b.ID = id }
func (b *Base) GetCreatedAt() time.Time  { return b.CreatedAt }
func (b *Base) SetCreatedAt(t time.Time) { b.CreatedAt = t }
func (b *Base) GetUpdatedAt() time.Time  { return b.UpdatedAt }
func (b *Base) SetUpdatedAt(t time.Time) { b.UpdatedAt = t }

// UpdateResult separates a missing document from a replace that changed nothing.
type UpdateResult int

const (
	UpdateNotFound UpdateResult = iota
	UpdateUnchanged
	UpdateApplied
)

func (r UpdateResult) Found() bool { return r != UpdateNotFound }

func (r UpdateResult) String() string {
	switch r {
	case UpdateUnchanged:
		return "unchanged"
	case UpdateApplied:
		return "updated"
	default:
		return "not_found"
	}
}

// Repository is the persistence contract every backend implements for a single collection.
//
// Create stamps CreatedAt and UpdatedAt with the server clock and assigns a new ID,
// overwriting whatever the caller supplied. Update replaces the whole document and
// stamps UpdatedAt; a replacement whose content equals the stored document is
// reported as UpdateUnchanged and leaves the stored document untouched.
type Repository[T Entity] interface {
	Collection() string
	GetByID(ctx context.Context, id string) (T, error)
	GetAll(ctx context.Context) ([]T, error)
	Find(ctx context.Context, filter Filter, sorts ...Sort) ([]T, error)
	Create(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, id string, entity T) (UpdateResult, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetPaged(ctx context.Context, query PageQuery) (Page[T], error)
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Clock returns the current time at the precision every backend can store.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// NextUpdatedAt stamps a changed document. The result is strictly after prev, even when
// two writes land inside the same millisecond.
func NextUpdatedAt(now, prev time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Truncate(time.Millisecond).Add(time.Millisecond)
}
