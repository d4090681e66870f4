// Package storagetest provides an in-memory storage.Storage for tests.
package storagetest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"htc-backend/internal/infrastructure/storage"
)

// Fake keeps blobs in a map. Set FailUpload or FailDelete to simulate backend errors.
type Fake struct {
	mu         sync.Mutex
	blobs      map[string]storage.Object
	FailUpload bool
	FailDelete bool
	Deleted    []string
}

func New() *Fake {
	return &Fake{blobs: make(map[string]storage.Object)}
}

func (f *Fake) Driver() string { return "fake" }

func (f *Fake) Upload(_ context.Context, file *storage.File, namespace string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailUpload {
		return "", errors.New("upload failed")
	}
	key := storage.NewKey(namespace, file.Ext())
	f.blobs[key] = storage.Object{Key: key, Size: file.Size, LastModified: time.Now().UTC()}
	return key, nil
}

func (f *Fake) GetURL(_ context.Context, key, namespace string) (string, error) {
	key = storage.ResolveKey(key, namespace)
	if key == "" {
		return "", nil
	}
	return "https://blobs.test/" + key + "?sig=1", nil
}

func (f *Fake) Delete(_ context.Context, key, namespace string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	key = storage.ResolveKey(key, namespace)
	if f.FailDelete || key == "" {
		return false
	}
	if _, ok := f.blobs[key]; !ok {
		return false
	}
	delete(f.blobs, key)
	f.Deleted = append(f.Deleted, key)
	return true
}

func (f *Fake) Exists(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.blobs[key]
	return ok, nil
}

func (f *Fake) List(_ context.Context, prefix string) ([]storage.Object, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []storage.Object
	for key, obj := range f.blobs {
		if strings.HasPrefix(key, prefix) {
			out = append(out, obj)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Put seeds a blob with an explicit modification time.
func (f *Fake) Put(key string, modified time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[key] = storage.Object{Key: key, Size: 1, LastModified: modified}
}

func (f *Fake) Has(key string) bool {
	ok, _ := f.Exists(context.Background(), key)
	return ok
}

func (f *Fake) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.blobs)
}

var _ storage.Storage = (*Fake)(nil)
