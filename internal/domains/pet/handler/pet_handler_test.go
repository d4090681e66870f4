package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htc-backend/internal/domains/pet/model"
	"htc-backend/internal/domains/pet/service"
	"htc-backend/internal/infrastructure/storage/storagetest"
	"htc-backend/internal/shared/formtest"
	"htc-backend/internal/shared/media"
	"htc-backend/pkg/repository"
)

func setupRouter(t *testing.T) (*gin.Engine, *storagetest.Fake) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemory("pets", model.New)
	fake := storagetest.New()
	avatars := media.NewManager[*model.Pet](media.NewAttacher(fake, nil), repo, service.AvatarSlot)
	h := NewPetHandler(service.NewPetService(repo, avatars))

	r := gin.New()
	r.GET("/api/pets", h.List)
	r.GET("/api/pets/:id", h.GetByID)
	r.POST("/api/pets", h.Create)
	r.PUT("/api/pets/:id", h.Update)
	r.DELETE("/api/pets/:id", h.Delete)
	return r, fake
}

func TestPetHandler_UploadRules(t *testing.T) {
	r, fake := setupRouter(t)

	rec := formtest.Serve(r, formtest.Request(t, http.MethodPost, "/api/pets",
		map[string]string{"name": "Mochi"},
		formtest.File{Field: "avatar", Name: "mochi.gif", Data: formtest.PNG}))
	// extension and sniffed type are checked independently
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = formtest.Serve(r, formtest.Request(t, http.MethodPost, "/api/pets",
		map[string]string{"name": "Mochi"},
		formtest.File{Field: "avatar", Name: "mochi.png", Data: []byte("plain text, not an image")}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, formtest.ErrorMessage(t, rec), "Invalid file type")

	assert.Equal(t, 1, fake.Len())
}

func TestPetHandler_UpdateAndDelete(t *testing.T) {
	r, fake := setupRouter(t)

	rec := formtest.Serve(r, formtest.Request(t, http.MethodPost, "/api/pets",
		map[string]string{"name": "Mochi"},
		formtest.File{Field: "avatar", Name: "mochi.png", Data: formtest.PNG}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := formtest.Decode[model.PetResponse](t, rec)

	rec = formtest.Serve(r, formtest.Request(t, http.MethodPut, "/api/pets/"+created.ID,
		map[string]string{"disabled": "true"},
		formtest.File{Field: "avatar", Name: "mochi2.png", Data: formtest.PNG}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := formtest.Decode[model.PetResponse](t, rec)
	assert.True(t, updated.Disabled)
	assert.NotEqual(t, created.Avatar, updated.Avatar)
	// the replaced blob is gone, only the new one is left
	assert.Equal(t, 1, fake.Len())
	require.Len(t, fake.Deleted, 1)

	rec = formtest.Delete(r, "/api/pets/"+created.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Pet deleted", formtest.Decode[map[string]string](t, rec)["message"])

	rec = formtest.Delete(r, "/api/pets/"+created.ID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Pet not found", formtest.ErrorMessage(t, rec))
}
