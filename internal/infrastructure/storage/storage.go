package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"htc-backend/internal/config"
)

// Storage is a key-addressed blob store.
//
// Delete is best effort: it reports whether a blob was removed and logs failures
// instead of returning them.
type Storage interface {
	Upload(ctx context.Context, file *File, namespace string) (string, error)
	GetURL(ctx context.Context, key, namespace string) (string, error)
	Delete(ctx context.Context, key, namespace string) bool
	Exists(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]Object, error)
	Driver() string
}

// File is an upload that already passed a FilePolicy.
type File struct {
	Name        string // client file name, only its extension is kept
	Size        int64
	ContentType string
	Data        []byte
}

func (f *File) Ext() string { return strings.ToLower(filepath.Ext(f.Name)) }

// Object describes a stored blob for listing.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// NewKey returns namespace/<uuid><ext>. The client file name never reaches the key.
func NewKey(namespace, ext string) string {
	name := uuid.NewString() + strings.ToLower(ext)
	if namespace = strings.Trim(namespace, "/"); namespace == "" {
		return name
	}
	return namespace + "/" + name
}

// ResolveKey joins a bare file name with its namespace. Keys that already carry a path are returned unchanged.
func ResolveKey(key, namespace string) string {
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "/") {
		return key
	}
	if namespace = strings.Trim(namespace, "/"); namespace == "" {
		return key
	}
	return namespace + "/" + key
}

// cleanKey rejects keys that would escape the storage root.
func cleanKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty key")
	}
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || cleaned != strings.TrimPrefix(key, "/") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return cleaned, nil
}

// New selects the backend named by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig, publicBaseURL string) (Storage, error) {
	switch cfg.Driver {
	case config.StorageLocal:
		return NewLocalStorage(cfg.Local, publicBaseURL)
	case config.StorageMinIO:
		return NewMinIOStorage(ctx, cfg.MinIO, cfg.PresignExpiry)
	case config.StorageS3:
		return NewS3Storage(ctx, cfg.S3, cfg.PresignExpiry)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
