package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htc-backend/internal/infrastructure/storage/storagetest"
)

type staticRefs struct {
	keys map[string]struct{}
	err  error
}

func (s staticRefs) ReferencedKeys(context.Context) (map[string]struct{}, error) {
	return s.keys, s.err
}

func TestNewBlobDeleteTask(t *testing.T) {
	task, err := NewBlobDeleteTask("a.png", "avatars")
	require.NoError(t, err)
	assert.Equal(t, TypeBlobDelete, task.Type())

	var payload BlobDeletePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, BlobDeletePayload{Key: "a.png", Namespace: "avatars"}, payload)
}

func TestBlobDeleteHandler(t *testing.T) {
	ctx := context.Background()
	fake := storagetest.New()
	fake.Put("avatars/a.png", time.Now())
	h := NewBlobDeleteHandler(fake)

	task, err := NewBlobDeleteTask("a.png", "avatars")
	require.NoError(t, err)

	require.NoError(t, h.ProcessTask(ctx, task))
	assert.False(t, fake.Has("avatars/a.png"))

	// already gone is success
	require.NoError(t, h.ProcessTask(ctx, task))
}

func TestBlobDeleteHandler_RetriesWhileBlobRemains(t *testing.T) {
	fake := storagetest.New()
	fake.Put("avatars/a.png", time.Now())
	fake.FailDelete = true

	task, err := NewBlobDeleteTask("avatars/a.png", "")
	require.NoError(t, err)

	err = NewBlobDeleteHandler(fake).ProcessTask(context.Background(), task)
	assert.Error(t, err)
	assert.True(t, fake.Has("avatars/a.png"))
}

func TestBlobDeleteHandler_BadPayloadSkipsRetry(t *testing.T) {
	err := NewBlobDeleteHandler(storagetest.New()).ProcessTask(context.Background(), asynq.NewTask(TypeBlobDelete, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestBlobReconcileHandler(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	old := now.Add(-2 * time.Hour)

	fake := storagetest.New()
	fake.Put("artists/1/kept.png", old)
	fake.Put("artists/2/orphan.png", old)
	fake.Put("artists/3/fresh.png", now.Add(-time.Minute))
	fake.Put("avatars/standalone.png", old)

	refs := staticRefs{keys: map[string]struct{}{"artists/1/kept.png": {}}}
	h := NewBlobReconcileHandler(fake, refs, time.Hour)
	h.now = func() time.Time { return now }

	report, err := h.Reconcile(context.Background(), []string{"artists/"})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Scanned)
	assert.Equal(t, []string{"artists/2/orphan.png"}, report.Orphans)
	assert.Equal(t, 1, report.Deleted)

	assert.True(t, fake.Has("artists/1/kept.png"))
	assert.False(t, fake.Has("artists/2/orphan.png"))
	assert.True(t, fake.Has("artists/3/fresh.png"))
	assert.True(t, fake.Has("avatars/standalone.png"))
}

func TestBlobReconcileHandler_ReferenceErrorAborts(t *testing.T) {
	fake := storagetest.New()
	fake.Put("artists/2/orphan.png", time.Now().Add(-48*time.Hour))

	h := NewBlobReconcileHandler(fake, staticRefs{err: errors.New("db down")}, time.Hour)
	task, err := NewBlobReconcileTask([]string{"artists/"})
	require.NoError(t, err)

	assert.Error(t, h.ProcessTask(context.Background(), task))
	assert.Equal(t, 1, fake.Len())
}

type recordingEnqueuer struct {
	tasks []*asynq.Task
}

func (r *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{ID: "t1", Type: task.Type()}, nil
}

func TestBlobQueue_EnqueueBlobDelete(t *testing.T) {
	rec := &recordingEnqueuer{}
	q := &BlobQueue{client: rec}

	require.NoError(t, q.EnqueueBlobDelete(context.Background(), "kols/1/a.png", "kols/1"))
	require.Len(t, rec.tasks, 1)
	assert.Equal(t, TypeBlobDelete, rec.tasks[0].Type())
}
