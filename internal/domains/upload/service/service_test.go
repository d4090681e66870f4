package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htc-backend/internal/domains/upload/model"
	"htc-backend/internal/infrastructure/storage"
	"htc-backend/internal/infrastructure/storage/storagetest"
)

func TestUploadService_UploadFailure(t *testing.T) {
	fake := storagetest.New()
	fake.FailUpload = true
	svc := NewUploadService(fake)
	kind, _ := model.LookupKind("avatar")

	_, err := svc.Upload(context.Background(), kind, &storage.File{Name: "a.png", Size: 1, Data: []byte{1}})
	assert.Error(t, err)
	assert.Zero(t, fake.Len())
}

func TestUploadService_DeleteFailureIsReported(t *testing.T) {
	ctx := context.Background()
	fake := storagetest.New()
	svc := NewUploadService(fake)
	kind, _ := model.LookupKind("logo")

	fake.Put("logos/x.png", time.Now())
	fake.FailDelete = true

	err := svc.Delete(ctx, kind, "x.png")
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrFileNotFound)
	assert.True(t, fake.Has("logos/x.png"))
}
