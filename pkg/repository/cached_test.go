package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	gets    int
	deleted []string
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return false, f.getErr
	}
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.data[key] = raw
	f.mu.Unlock()
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
		f.deleted = append(f.deleted, k)
	}
	return nil
}

func (f *fakeCache) Ping(context.Context) error { return nil }

type countingRepo struct {
	Repository[*note]
	getByID int
}

func (r *countingRepo) GetByID(ctx context.Context, id string) (*note, error) {
	r.getByID++
	return r.Repository.GetByID(ctx, id)
}

func TestCached_ReadThrough(t *testing.T) {
	ctx := context.Background()
	mem, _ := newNotes(t)
	inner := &countingRepo{Repository: mem}
	c := newFakeCache()
	repo := NewCached[*note](inner, c, newNote, time.Minute)

	n := seed(t, mem, "cached")[0]

	first, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.getByID)
	assert.Equal(t, first.Title, second.Title)
	assert.Contains(t, c.data, "notes:"+n.ID)
}

func TestCached_EvictsOnWrite(t *testing.T) {
	ctx := context.Background()
	mem, _ := newNotes(t)
	c := newFakeCache()
	repo := NewCached[*note](mem, c, newNote, 0)
	n := seed(t, mem, "v1")[0]

	_, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)

	n.Title = "v2"
	res, err := repo.Update(ctx, n.ID, n)
	require.NoError(t, err)
	require.Equal(t, UpdateApplied, res)
	assert.NotContains(t, c.data, "notes:"+n.ID)

	got, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Title)

	deleted, err := repo.Delete(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NotContains(t, c.data, "notes:"+n.ID)

	_, err = repo.GetByID(ctx, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCached_FallsBackWhenCacheFails(t *testing.T) {
	ctx := context.Background()
	mem, _ := newNotes(t)
	c := newFakeCache()
	c.getErr = errors.New("redis down")
	repo := NewCached[*note](mem, c, newNote, time.Minute)
	n := seed(t, mem, "x")[0]

	got, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n.ID, got.ID)
}
