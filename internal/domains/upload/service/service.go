package service

import (
	"context"
	"fmt"
	"path"

	"htc-backend/internal/domains/upload/model"
	"htc-backend/internal/infrastructure/storage"
)

type Service interface {
	Upload(ctx context.Context, kind model.Kind, file *storage.File) (*model.UploadResponse, error)
	Delete(ctx context.Context, kind model.Kind, fileName string) error
}

type uploadService struct {
	store storage.Storage
}

func NewUploadService(store storage.Storage) Service {
	return &uploadService{store: store}
}

func (s *uploadService) Upload(ctx context.Context, kind model.Kind, file *storage.File) (*model.UploadResponse, error) {
	key, err := s.store.Upload(ctx, file, kind.Namespace)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", kind.Name, err)
	}

	url, err := s.store.GetURL(ctx, key, kind.Namespace)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", key, err)
	}

	return &model.UploadResponse{
		URL:          url,
		Key:          key,
		FileName:     path.Base(key),
		OriginalName: file.Name,
		Size:         file.Size,
	}, nil
}

func (s *uploadService) Delete(ctx context.Context, kind model.Kind, fileName string) error {
	key, err := kind.Key(fileName)
	if err != nil {
		return err
	}

	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("stat %s: %w", key, err)
	}
	if !exists {
		return model.ErrFileNotFound
	}

	if !s.store.Delete(ctx, key, kind.Namespace) {
		return fmt.Errorf("delete %s failed", key)
	}
	return nil
}
