package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"htc-backend/internal/shared/apperr"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// ParsePage reads page and per_page, falling back to defaults for missing or invalid values.
func ParsePage(c *gin.Context) (page, perPage int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = DefaultPage
	}
	perPage, err = strconv.Atoi(c.Query("per_page"))
	if err != nil || perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

// QueryString returns the trimmed parameter and whether it is non-empty.
func QueryString(c *gin.Context, key string) (string, bool) {
	v := strings.TrimSpace(c.Query(key))
	return v, v != ""
}

func QueryBool(c *gin.Context, key string) (bool, bool, error) {
	raw, ok := QueryString(c, key)
	if !ok {
		return false, false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, apperr.Validationf("Invalid value for %s", key)
	}
	return v, true, nil
}

// QueryTime accepts RFC3339 or a bare date (midnight UTC).
func QueryTime(c *gin.Context, key string) (time.Time, bool, error) {
	raw, ok := QueryString(c, key)
	if !ok {
		return time.Time{}, false, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, apperr.Validationf("Invalid value for %s", key)
}
