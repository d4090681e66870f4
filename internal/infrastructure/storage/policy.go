package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"htc-backend/internal/shared/apperr"
)

const MaxUploadSize int64 = 5 << 20

// FilePolicy decides which uploads are accepted for a field.
type FilePolicy struct {
	MaxSize      int64
	Extensions   []string
	ContentTypes []string
}

var (
	ImagePolicy = FilePolicy{
		MaxSize:      MaxUploadSize,
		Extensions:   []string{".jpg", ".jpeg", ".png", ".gif"},
		ContentTypes: []string{"image/jpeg", "image/png", "image/gif"},
	}

	LogoPolicy = FilePolicy{
		MaxSize:      MaxUploadSize,
		Extensions:   []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"},
		ContentTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/svg+xml"},
	}
)

func (p FilePolicy) typeError() error {
	names := make([]string, len(p.Extensions))
	for i, ext := range p.Extensions {
		names[i] = strings.ToUpper(strings.TrimPrefix(ext, "."))
	}
	return apperr.Validationf("Invalid file type. Only %s files are allowed.", strings.Join(names, ", "))
}

func (p FilePolicy) sizeError() error {
	return apperr.Validationf("File size must be less than %dMB.", p.MaxSize>>20)
}

// Open validates a multipart upload and reads it into memory.
func (p FilePolicy) Open(fh *multipart.FileHeader) (*File, error) {
	if fh == nil || fh.Size == 0 {
		return nil, apperr.Validation("No file uploaded")
	}
	if !p.allowsExt(fh.Filename) {
		return nil, p.typeError()
	}
	if fh.Size > p.MaxSize {
		return nil, p.sizeError()
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, p.MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return p.Check(fh.Filename, data)
}

// Check validates size, extension and the sniffed content type of data.
func (p FilePolicy) Check(name string, data []byte) (*File, error) {
	if len(data) == 0 {
		return nil, apperr.Validation("No file uploaded")
	}
	if !p.allowsExt(name) {
		return nil, p.typeError()
	}
	if int64(len(data)) > p.MaxSize {
		return nil, p.sizeError()
	}

	mtype := mimetype.Detect(data)
	contentType, ok := p.matchType(mtype)
	if !ok {
		return nil, p.typeError()
	}

	return &File{
		Name:        name,
		Size:        int64(len(data)),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func (p FilePolicy) allowsExt(name string) bool {
	f := File{Name: name}
	return slices.Contains(p.Extensions, f.Ext())
}

// matchType accepts the detected type or any of its ancestors.
func (p FilePolicy) matchType(m *mimetype.MIME) (string, bool) {
	for ; m != nil; m = m.Parent() {
		for _, allowed := range p.ContentTypes {
			if m.Is(allowed) {
				return allowed, true
			}
		}
	}
	return "", false
}
