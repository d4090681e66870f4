package utils

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"htc-backend/internal/infrastructure/storage"
	"htc-backend/internal/shared/apperr"
)

// FormString returns the trimmed value of the first key present in the form, or nil when none was sent.
// A key sent with an empty value yields a pointer to "".
func FormString(c *gin.Context, keys ...string) *string {
	for _, key := range keys {
		if v, ok := c.GetPostForm(key); ok {
			v = strings.TrimSpace(v)
			return &v
		}
	}
	return nil
}

func FormBool(c *gin.Context, keys ...string) (*bool, error) {
	raw := FormString(c, keys...)
	if raw == nil {
		return nil, nil
	}
	if *raw == "" {
		v := false
		return &v, nil
	}
	v, err := strconv.ParseBool(*raw)
	if err != nil {
		return nil, apperr.Validationf("Invalid value for %s", keys[0])
	}
	return &v, nil
}

// FormFloat treats an empty value as absent.
func FormFloat(c *gin.Context, keys ...string) (*float64, error) {
	raw := FormString(c, keys...)
	if raw == nil || *raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return nil, apperr.Validationf("Invalid value for %s", keys[0])
	}
	return &v, nil
}

// FormFile returns nil when the field is missing or the file is empty.
func FormFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Validationf("Invalid upload for %s", field)
	}
	if fh.Size == 0 {
		return nil, nil
	}
	return fh, nil
}

// FormUpload opens the file under field and checks it against policy. A missing file yields nil.
func FormUpload(c *gin.Context, field string, policy storage.FilePolicy) (*storage.File, error) {
	fh, err := FormFile(c, field)
	if err != nil || fh == nil {
		return nil, err
	}
	return policy.Open(fh)
}

func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
