package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htc-backend/internal/domains/kol/model"
	"htc-backend/internal/domains/kol/service"
	"htc-backend/internal/infrastructure/storage/storagetest"
	"htc-backend/internal/shared/formtest"
	"htc-backend/internal/shared/media"
	"htc-backend/internal/shared/response"
	"htc-backend/pkg/repository"
)

func setupRouter(t *testing.T) (*gin.Engine, *storagetest.Fake) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemory("kols", model.New)
	fake := storagetest.New()
	avatars := media.NewManager[*model.Kol](media.NewAttacher(fake, nil), repo, service.AvatarSlot)
	h := NewKolHandler(service.NewKolService(repo, avatars))

	r := gin.New()
	r.GET("/api/kols", h.List)
	r.GET("/api/kols/:id", h.GetByID)
	r.POST("/api/kols", h.Create)
	r.PUT("/api/kols/:id", h.Update)
	r.DELETE("/api/kols/:id", h.Delete)
	return r, fake
}

func TestKolHandler_CRUD(t *testing.T) {
	r, fake := setupRouter(t)

	rec := formtest.Serve(r, formtest.Request(t, http.MethodPost, "/api/kols",
		map[string]string{"name": "Kai", "link_x": "https://x.com/kai"},
		formtest.File{Field: "avatar", Name: "kai.png", Data: formtest.PNG}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := formtest.Decode[model.KolResponse](t, rec)
	assert.Equal(t, "https://x.com/kai", created.LinkX)
	assert.Contains(t, created.Avatar, "https://blobs.test/kols/"+created.ID+"/")

	rec = formtest.Get(r, "/api/kols/"+created.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Kai", formtest.Decode[model.KolResponse](t, rec).Name)

	rec = formtest.Serve(r, formtest.Request(t, http.MethodPut, "/api/kols/"+created.ID,
		map[string]string{"linkX": ""}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := formtest.Decode[model.KolResponse](t, rec)
	assert.Empty(t, updated.LinkX)
	assert.Equal(t, "Kai", updated.Name)

	rec = formtest.Delete(r, "/api/kols/"+created.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "KOL deleted", formtest.Decode[map[string]string](t, rec)["message"])
	assert.Zero(t, fake.Len())

	rec = formtest.Get(r, "/api/kols/"+created.ID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "KOL not found", formtest.ErrorMessage(t, rec))
}

func TestKolHandler_Validation(t *testing.T) {
	r, _ := setupRouter(t)

	rec := formtest.Serve(r, formtest.Request(t, http.MethodPost, "/api/kols", map[string]string{"linkX": "https://x.com/kai"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name is required", formtest.ErrorMessage(t, rec))

	rec = formtest.Serve(r, formtest.Request(t, http.MethodPost, "/api/kols", map[string]string{"name": "Kai", "linkX": "x.com/kai"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid URL format for link_x", formtest.ErrorMessage(t, rec))

	rec = formtest.Serve(r, formtest.Request(t, http.MethodPost, "/api/kols", map[string]string{"name": "Kai", "disabled": "sometimes"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid value for disabled", formtest.ErrorMessage(t, rec))
}

func TestKolHandler_HidesDisabled(t *testing.T) {
	r, _ := setupRouter(t)
	for _, f := range []map[string]string{
		{"name": "Kai"},
		{"name": "Kim", "disabled": "true"},
	} {
		rec := formtest.Serve(r, formtest.Request(t, http.MethodPost, "/api/kols", f))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := formtest.Get(r, "/api/kols")
	page := formtest.Decode[response.Paginated[model.KolResponse]](t, rec)
	require.Len(t, page.Datas, 1)
	assert.Equal(t, "Kai", page.Datas[0].Name)

	rec = formtest.Get(r, "/api/kols?include_disabled=true&name=k")
	assert.EqualValues(t, 2, formtest.Decode[response.Paginated[model.KolResponse]](t, rec).TotalRecords)
}
