package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"htc-backend/internal/config"
)

// LocalStorage writes blobs below a directory that the API serves statically.
type LocalStorage struct {
	root    string
	baseURL string // PUBLIC_BASE_URL + URL prefix
}

func NewLocalStorage(cfg config.LocalStorageConfig, publicBaseURL string) (*LocalStorage, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	prefix := "/" + strings.Trim(cfg.URLPrefix, "/")
	return &LocalStorage{
		root:    root,
		baseURL: strings.TrimRight(publicBaseURL, "/") + prefix,
	}, nil
}

func (s *LocalStorage) Driver() string { return config.StorageLocal }

func (s *LocalStorage) Root() string { return s.root }

func (s *LocalStorage) path(key string) (string, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

func (s *LocalStorage) Upload(ctx context.Context, file *File, namespace string) (string, error) {
	key := NewKey(namespace, file.Ext())
	dst, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := os.WriteFile(dst, file.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return key, nil
}

// GetURL returns the static URL. Local files need no signing.
func (s *LocalStorage) GetURL(_ context.Context, key, namespace string) (string, error) {
	key = ResolveKey(key, namespace)
	if key == "" {
		return "", nil
	}
	if _, err := cleanKey(key); err != nil {
		return "", err
	}
	return s.baseURL + "/" + key, nil
}

func (s *LocalStorage) Delete(_ context.Context, key, namespace string) bool {
	key = ResolveKey(key, namespace)
	if key == "" {
		return false
	}
	p, err := s.path(key)
	if err == nil {
		err = os.Remove(p)
	}
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("key", key).Msg("failed to delete local blob")
		}
		return false
	}
	return true
}

func (s *LocalStorage) Exists(_ context.Context, key string) (bool, error) {
	p, err := s.path(key)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

func (s *LocalStorage) List(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		objects = append(objects, Object{Key: key, Size: info.Size(), LastModified: info.ModTime().UTC()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list local blobs: %w", err)
	}
	return objects, nil
}
