package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"htc-backend/internal/config"
)

// MinIOStorage keeps blobs in a MinIO bucket and hands out presigned GET URLs.
type MinIOStorage struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

// NewMinIOStorage connects and creates the bucket when it does not exist yet.
func NewMinIOStorage(ctx context.Context, cfg config.MinIOConfig, expiry time.Duration) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("created minio bucket")
	}

	return &MinIOStorage{client: client, bucket: cfg.Bucket, expiry: expiry}, nil
}

func (s *MinIOStorage) Driver() string { return config.StorageMinIO }

func (s *MinIOStorage) Upload(ctx context.Context, file *File, namespace string) (string, error) {
	key := NewKey(namespace, file.Ext())

	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(file.Data),
		int64(len(file.Data)),
		minio.PutObjectOptions{ContentType: file.ContentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}
	return key, nil
}

func (s *MinIOStorage) GetURL(ctx context.Context, key, namespace string) (string, error) {
	key = ResolveKey(key, namespace)
	if key == "" {
		return "", nil
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}
	return u.String(), nil
}

func (s *MinIOStorage) Delete(ctx context.Context, key, namespace string) bool {
	key = ResolveKey(key, namespace)
	if key == "" {
		return false
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to delete minio object")
		return false
	}
	return true
}

func (s *MinIOStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if resp := minio.ToErrorResponse(err); resp.StatusCode == http.StatusNotFound || resp.Code == "NoSuchKey" {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", key, err)
}

func (s *MinIOStorage) List(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object
	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		objects = append(objects, Object{
			Key:          object.Key,
			Size:         object.Size,
			LastModified: object.LastModified.UTC(),
		})
	}
	return objects, nil
}
