package media

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htc-backend/internal/infrastructure/storage"
	"htc-backend/internal/infrastructure/storage/storagetest"
	"htc-backend/pkg/repository"
)

type doc struct {
	repository.Base `bson:",inline"`
	Name            string `bson:"name"`
	Avatar          string `bson:"avatar"`
}

var avatarSlot = Slot[*doc]{
	Get: func(d *doc) string { return d.Avatar },
	Set: func(d *doc, v string) { d.Avatar = v },
}

type recordingQueue struct {
	keys []string
}

func (q *recordingQueue) EnqueueBlobDelete(_ context.Context, key, _ string) error {
	q.keys = append(q.keys, key)
	return nil
}

func setup() (*Manager[*doc], *repository.Memory[*doc], *storagetest.Fake, *recordingQueue) {
	repo := repository.NewMemory("docs", func() *doc { return &doc{} })
	fake := storagetest.New()
	queue := &recordingQueue{}
	return NewManager[*doc](NewAttacher(fake, queue), repo, avatarSlot), repo, fake, queue
}

func png() *storage.File {
	return &storage.File{Name: "a.png", Size: 8, ContentType: "image/png", Data: []byte("\x89PNG\r\n\x1a\n")}
}

func TestIsExternal(t *testing.T) {
	assert.True(t, IsExternal("https://cdn.test/a.png"))
	assert.True(t, IsExternal("HTTP://cdn.test/a.png"))
	assert.True(t, IsExternal("/uploads/avatars/a.png"))
	assert.False(t, IsExternal("docs/1/a.png"))
	assert.False(t, IsExternal(""))
}

func TestManager_CreateWithFile(t *testing.T) {
	ctx := context.Background()
	m, repo, fake, _ := setup()

	created, err := m.Create(ctx, &doc{Name: "Ada"}, png())
	require.NoError(t, err)
	require.NotEmpty(t, created.Avatar)
	assert.Regexp(t, "^docs/"+created.ID+"/", created.Avatar)
	assert.True(t, fake.Has(created.Avatar))

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Avatar, stored.Avatar)

	assert.Equal(t, "https://blobs.test/"+created.Avatar+"?sig=1", m.Resolve(ctx, stored))
}

func TestManager_CreateRollsBackOnUploadFailure(t *testing.T) {
	ctx := context.Background()
	m, repo, fake, _ := setup()
	fake.FailUpload = true

	_, err := m.Create(ctx, &doc{Name: "Ada"}, png())
	require.Error(t, err)

	n, err := repo.Count(ctx, repository.Filter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestManager_UpdateReplacesFile(t *testing.T) {
	ctx := context.Background()
	m, repo, fake, _ := setup()

	created, err := m.Create(ctx, &doc{Name: "Ada"}, png())
	require.NoError(t, err)
	oldKey := created.Avatar

	current, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	res, err := m.Update(ctx, created.ID, current, current.Avatar, png())
	require.NoError(t, err)
	assert.Equal(t, repository.UpdateApplied, res)

	assert.NotEqual(t, oldKey, current.Avatar)
	assert.False(t, fake.Has(oldKey))
	assert.True(t, fake.Has(current.Avatar))
}

func TestManager_UpdateUploadFailureKeepsOldFile(t *testing.T) {
	ctx := context.Background()
	m, repo, fake, _ := setup()

	created, err := m.Create(ctx, &doc{Name: "Ada"}, png())
	require.NoError(t, err)
	oldKey := created.Avatar

	fake.FailUpload = true
	current, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	_, err = m.Update(ctx, created.ID, current, current.Avatar, png())
	require.Error(t, err)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, oldKey, stored.Avatar)
	assert.True(t, fake.Has(oldKey))
}

func TestManager_UpdateMissingDocumentReleasesUpload(t *testing.T) {
	m, _, fake, _ := setup()

	res, err := m.Update(context.Background(), "nope", &doc{Name: "x"}, "", png())
	require.NoError(t, err)
	assert.Equal(t, repository.UpdateNotFound, res)
	assert.Zero(t, fake.Len())
}

func TestManager_DeleteQueuesFailedBlobDelete(t *testing.T) {
	ctx := context.Background()
	m, _, fake, queue := setup()

	created, err := m.Create(ctx, &doc{Name: "Ada"}, png())
	require.NoError(t, err)

	fake.FailDelete = true
	ok, err := m.Delete(ctx, created)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{created.Avatar}, queue.keys)
}

func TestManager_ExternalValuesAreNeverDeleted(t *testing.T) {
	ctx := context.Background()
	m, _, fake, queue := setup()

	created, err := m.Create(ctx, &doc{Name: "Ada", Avatar: "https://cdn.test/ada.png"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/ada.png", m.Resolve(ctx, created))

	ok, err := m.Delete(ctx, created)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, fake.Deleted)
	assert.Empty(t, queue.keys)
}

type failingSource struct{}

func (failingSource) StoredKeys(context.Context) ([]string, error) { return nil, errors.New("down") }
func (failingSource) Prefix() string                               { return "x/" }

func TestReferences(t *testing.T) {
	ctx := context.Background()
	m, _, _, _ := setup()

	a, err := m.Create(ctx, &doc{Name: "a"}, png())
	require.NoError(t, err)
	_, err = m.Create(ctx, &doc{Name: "b", Avatar: "/uploads/avatars/b.png"}, nil)
	require.NoError(t, err)

	refs := References{m}
	keys, err := refs.ReferencedKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{a.Avatar: {}}, keys)
	assert.Equal(t, []string{"docs/"}, refs.Prefixes())

	_, err = References{m, failingSource{}}.ReferencedKeys(ctx)
	assert.Error(t, err)
}
