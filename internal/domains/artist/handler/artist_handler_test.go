package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htc-backend/internal/domains/artist/model"
	"htc-backend/internal/domains/artist/service"
	"htc-backend/internal/infrastructure/storage/storagetest"
	"htc-backend/internal/shared/formtest"
	"htc-backend/internal/shared/media"
	"htc-backend/internal/shared/response"
	"htc-backend/pkg/repository"
)

type noPictures struct{}

func (noPictures) CountByArtist(context.Context, string) (int64, error)          { return 0, nil }
func (noPictures) ListByArtist(context.Context, string) ([]model.Picture, error) { return nil, nil }

func tickingClock() repository.Clock {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *storagetest.Fake) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemory("artists", model.New).WithClock(tickingClock())
	fake := storagetest.New()
	avatars := media.NewManager[*model.Artist](media.NewAttacher(fake, nil), repo, service.AvatarSlot)
	h := NewArtistHandler(service.NewArtistService(repo, avatars, noPictures{}))

	r := gin.New()
	g := r.Group("/api/artists")
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.GET("/:id/images", h.Images)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r, fake
}

func createArtist(t *testing.T, r http.Handler, fields map[string]string) model.ArtistResponse {
	t.Helper()
	rec := formtest.Serve(r, formtest.Request(t, http.MethodPost, "/api/artists", fields))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return formtest.Decode[model.ArtistResponse](t, rec)
}

func TestArtistHandler_CreateThenReplaceAvatar(t *testing.T) {
	r, fake := setupRouter(t)

	rec := formtest.Serve(r, formtest.Request(t, http.MethodPost, "/api/artists",
		map[string]string{"name": "Ada", "style": "Oil"}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := formtest.Decode[model.ArtistResponse](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Ada", created.Name)
	assert.Equal(t, "Oil", created.Style)
	assert.Empty(t, created.Avatar)
	assert.Equal(t, "/api/artists/"+created.ID, rec.Header().Get("Location"))

	rec = formtest.Serve(r, formtest.Request(t, http.MethodPut, "/api/artists/"+created.ID, nil,
		formtest.File{Field: "avatar", Name: "ada.png", Data: formtest.PNG}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := formtest.Decode[model.ArtistResponse](t, rec)
	assert.Contains(t, updated.Avatar, "https://blobs.test/artists/"+created.ID+"/")
	assert.Equal(t, "Ada", updated.Name)
	assert.Equal(t, "Oil", updated.Style)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, 1, fake.Len())
}

func TestArtistHandler_CreateValidation(t *testing.T) {
	r, fake := setupRouter(t)

	cases := []struct {
		name   string
		fields map[string]string
		files  []formtest.File
		want   string
	}{
		{"missing name", map[string]string{"style": "Oil"}, nil, "Name is required"},
		{"blank name", map[string]string{"name": "  ", "style": "Oil"}, nil, "Name is required"},
		{"missing style", map[string]string{"name": "Ada"}, nil, "Style is required"},
		{"bad link", map[string]string{"name": "Ada", "style": "Oil", "linkX": "not-a-url"}, nil, "Invalid URL format for link_x"},
		{"bad file type", map[string]string{"name": "Ada", "style": "Oil"},
			[]formtest.File{{Field: "avatar", Name: "ada.txt", Data: []byte("hello")}},
			"Invalid file type. Only JPG, JPEG, PNG, GIF files are allowed."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := formtest.Serve(r, formtest.Request(t, http.MethodPost, "/api/artists", tc.fields, tc.files...))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.want, formtest.ErrorMessage(t, rec))
		})
	}
	assert.Zero(t, fake.Len())

	rec := formtest.Get(r, "/api/artists")
	assert.Zero(t, formtest.Decode[response.Paginated[model.ArtistResponse]](t, rec).TotalRecords)
}

func TestArtistHandler_ListPaging(t *testing.T) {
	r, _ := setupRouter(t)
	for _, name := range []string{"Ada", "Bea", "Cy"} {
		createArtist(t, r, map[string]string{"name": name, "style": "Oil"})
	}

	rec := formtest.Get(r, "/api/artists?page=2&per_page=2")
	require.Equal(t, http.StatusOK, rec.Code)

	page := formtest.Decode[response.Paginated[model.ArtistResponse]](t, rec)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 2, page.TotalPages)
	assert.EqualValues(t, 3, page.TotalRecords)
	require.Len(t, page.Datas, 1)
	// newest first, so the oldest artist lands on the last page
	assert.Equal(t, "Ada", page.Datas[0].Name)

	rec = formtest.Get(r, "/api/artists?page=9")
	page = formtest.Decode[response.Paginated[model.ArtistResponse]](t, rec)
	assert.Empty(t, page.Datas)
	assert.NotNil(t, page.Datas)
}

func TestArtistHandler_ListFilters(t *testing.T) {
	r, _ := setupRouter(t)
	createArtist(t, r, map[string]string{"name": "Ada Lovelace", "style": "Oil"})
	createArtist(t, r, map[string]string{"name": "Adam", "style": "Watercolor"})
	createArtist(t, r, map[string]string{"name": "Bea", "style": "Oil", "disabled": "true"})

	names := func(target string) []string {
		rec := formtest.Get(r, target)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var out []string
		for _, a := range formtest.Decode[response.Paginated[model.ArtistResponse]](t, rec).Datas {
			out = append(out, a.Name)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"Ada Lovelace", "Adam"}, names("/api/artists"))
	assert.ElementsMatch(t, []string{"Ada Lovelace", "Adam"}, names("/api/artists?name=ADA"))
	assert.ElementsMatch(t, []string{"Ada Lovelace"}, names("/api/artists?name=ada&style=oil"))
	assert.ElementsMatch(t, []string{"Ada Lovelace", "Bea"}, names("/api/artists?style=oil&include_disabled=true"))
	assert.Empty(t, names("/api/artists?created_at=2999-01-01"))
	assert.Len(t, names("/api/artists?created_at=2000-01-01T00:00:00Z"), 2)

	rec := formtest.Get(r, "/api/artists?created_at=yesterday")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid value for created_at", formtest.ErrorMessage(t, rec))
}

func TestArtistHandler_PartialUpdate(t *testing.T) {
	r, _ := setupRouter(t)
	created := createArtist(t, r, map[string]string{
		"name": "Ada", "style": "Oil", "linkX": "https://x.com/ada", "xTag": "@ada",
	})

	rec := formtest.Serve(r, formtest.Request(t, http.MethodPut, "/api/artists/"+created.ID,
		map[string]string{"style": "Ink", "xTag": ""}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := formtest.Decode[model.ArtistResponse](t, rec)
	assert.Equal(t, "Ada", updated.Name)
	assert.Equal(t, "Ink", updated.Style)
	assert.Equal(t, "https://x.com/ada", updated.LinkX)
	assert.Empty(t, updated.XTag)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	rec = formtest.Serve(r, formtest.Request(t, http.MethodPut, "/api/artists/"+created.ID,
		map[string]string{"name": ""}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name is required", formtest.ErrorMessage(t, rec))

	rec = formtest.Serve(r, formtest.Request(t, http.MethodPut, "/api/artists/"+repository.NewID(),
		map[string]string{"name": "Ghost"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Artist not found", formtest.ErrorMessage(t, rec))
}

func TestArtistHandler_DeleteTwice(t *testing.T) {
	r, fake := setupRouter(t)
	rec := formtest.Serve(r, formtest.Request(t, http.MethodPost, "/api/artists",
		map[string]string{"name": "Ada", "style": "Oil"},
		formtest.File{Field: "avatar", Name: "ada.png", Data: formtest.PNG}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := formtest.Decode[model.ArtistResponse](t, rec)
	require.Equal(t, 1, fake.Len())

	rec = formtest.Delete(r, "/api/artists/"+created.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Artist deleted", formtest.Decode[map[string]string](t, rec)["message"])
	assert.Zero(t, fake.Len())

	rec = formtest.Delete(r, "/api/artists/"+created.ID)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = formtest.Get(r, "/api/artists/"+created.ID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Artist not found", formtest.ErrorMessage(t, rec))
}

func TestArtistHandler_Images(t *testing.T) {
	r, _ := setupRouter(t)
	created := createArtist(t, r, map[string]string{"name": "Ada", "style": "Oil"})

	rec := formtest.Get(r, "/api/artists/"+created.ID+"/images")
	require.Equal(t, http.StatusOK, rec.Code)

	body := formtest.Decode[model.ArtistImagesResponse](t, rec)
	assert.Equal(t, created.ID, body.Artist.ID)
	assert.NotNil(t, body.Pictures)
	assert.Empty(t, body.Pictures)
}
