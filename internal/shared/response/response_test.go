package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htc-backend/internal/shared/apperr"
	"htc-backend/pkg/repository"
)

func init() { gin.SetMode(gin.TestMode) }

func render(t *testing.T, fn func(c *gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/x", nil)
	fn(c)
	return w
}

func TestError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		body   string
	}{
		{apperr.Validation("Name is required"), 400, `{"error":"Name is required"}`},
		{fmt.Errorf("get: %w", apperr.NotFound("Kol not found")), 404, `{"error":"Kol not found"}`},
		{errors.New("mongo down"), 500, `{"error":"Internal server error","details":"mongo down"}`},
	}
	for _, tt := range tests {
		w := render(t, func(c *gin.Context) { Error(c, tt.err) })
		assert.Equal(t, tt.status, w.Code)
		assert.JSONEq(t, tt.body, w.Body.String())
	}
}

func TestCreated(t *testing.T) {
	w := render(t, func(c *gin.Context) { Created(c, "/api/pets/1", gin.H{"id": "1"}) })
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/pets/1", w.Header().Get("Location"))
}

func TestNewPaginated(t *testing.T) {
	page := repository.Page[int]{Items: []int{5}, Total: 3, Page: 2, PageSize: 2}

	env := NewPaginated(page, []string{"e"})
	assert.Equal(t, 2, env.CurrentPage)
	assert.Equal(t, 2, env.TotalPages)
	assert.EqualValues(t, 3, env.TotalRecords)

	empty := NewPaginated(repository.Page[int]{Page: 1, PageSize: 10}, []string(nil))
	data, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"currentPage":1,"totalPages":0,"totalRecords":0,"datas":[]}`, string(data))
}
