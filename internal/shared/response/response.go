package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"htc-backend/internal/shared/apperr"
	"htc-backend/pkg/repository"
)

type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type MessageBody struct {
	Message string `json:"message"`
}

// Paginated is the envelope every list endpoint returns.
type Paginated[T any] struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalRecords int64 `json:"totalRecords"`
	Datas        []T   `json:"datas"`
}

// NewPaginated copies the paging numbers from page and takes the already mapped items.
func NewPaginated[E any, T any](page repository.Page[E], items []T) Paginated[T] {
	if items == nil {
		items = []T{}
	}
	return Paginated[T]{
		CurrentPage:  page.Page,
		TotalPages:   page.TotalPages(),
		TotalRecords: page.Total,
		Datas:        items,
	}
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sets Location to the new resource.
func Created(c *gin.Context, location string, data interface{}) {
	if location != "" {
		c.Header("Location", location)
	}
	c.JSON(http.StatusCreated, data)
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageBody{Message: message})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: message})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorBody{Error: message})
}

func InternalServerError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, ErrorBody{
		Error:   "Internal server error",
		Details: err.Error(),
	})
}

// Error renders err by its apperr kind. Unclassified errors are logged and become 500.
func Error(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		BadRequest(c, apperr.Message(err))
	case apperr.KindNotFound:
		NotFound(c, apperr.Message(err))
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		InternalServerError(c, err)
	}
}
