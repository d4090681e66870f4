package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	artistmodel "htc-backend/internal/domains/artist/model"
	"htc-backend/internal/domains/gallery/model"
	"htc-backend/internal/domains/gallery/service"
	"htc-backend/internal/infrastructure/storage/storagetest"
	"htc-backend/internal/shared/formtest"
	"htc-backend/internal/shared/media"
	"htc-backend/internal/shared/response"
	"htc-backend/pkg/repository"
)

type fixture struct {
	router *gin.Engine
	fake   *storagetest.Fake
	artist *artistmodel.Artist
}

func setup(t *testing.T) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	artists := repository.NewMemory("artists", artistmodel.New)
	artist, err := artists.Create(context.Background(), &artistmodel.Artist{Name: "Ada", Style: "Oil"})
	require.NoError(t, err)

	repo := repository.NewMemory("galleries", model.New)
	fake := storagetest.New()
	pictures := media.NewManager[*model.Gallery](media.NewAttacher(fake, nil), repo, service.PictureSlot)
	h := NewGalleryHandler(service.NewGalleryService(repo, artists, pictures))

	r := gin.New()
	g := r.Group("/api/galleries")
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return fixture{router: r, fake: fake, artist: artist}
}

func picture() formtest.File {
	return formtest.File{Field: "picture", Name: "art.png", Data: formtest.PNG}
}

func TestGalleryHandler_CreateValidationOrder(t *testing.T) {
	f := setup(t)

	cases := []struct {
		name   string
		fields map[string]string
		files  []formtest.File
		want   string
	}{
		{"no picture", map[string]string{"artistId": f.artist.ID}, nil, "Picture is required"},
		{"no picture and no artist", map[string]string{}, nil, "Picture is required"},
		{"no artist", map[string]string{}, []formtest.File{picture()}, "Artist ID is required"},
		{"unknown artist", map[string]string{"artistId": repository.NewID()}, []formtest.File{picture()}, "Artist not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := formtest.Serve(f.router, formtest.Request(t, http.MethodPost, "/api/galleries", tc.fields, tc.files...))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.want, formtest.ErrorMessage(t, rec))
		})
	}
	assert.Zero(t, f.fake.Len())
}

func TestGalleryHandler_Lifecycle(t *testing.T) {
	f := setup(t)

	rec := formtest.Serve(f.router, formtest.Request(t, http.MethodPost, "/api/galleries",
		map[string]string{"artist_id": f.artist.ID, "showOnTop": "true"}, picture()))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := formtest.Decode[model.GalleryResponse](t, rec)
	assert.Equal(t, f.artist.ID, created.ArtistID)
	assert.True(t, created.ShowOnTop)
	assert.Contains(t, created.Picture, "https://blobs.test/galleries/"+created.ID+"/")
	assert.Equal(t, "/api/galleries/"+created.ID, rec.Header().Get("Location"))

	rec = formtest.Serve(f.router, formtest.Request(t, http.MethodPut, "/api/galleries/"+created.ID,
		map[string]string{"showOnTop": "false"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := formtest.Decode[model.GalleryResponse](t, rec)
	assert.False(t, updated.ShowOnTop)
	assert.Equal(t, created.Picture, updated.Picture)

	rec = formtest.Serve(f.router, formtest.Request(t, http.MethodPut, "/api/galleries/"+created.ID,
		map[string]string{"artistId": repository.NewID()}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Artist not found", formtest.ErrorMessage(t, rec))

	rec = formtest.Delete(f.router, "/api/galleries/"+created.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Gallery deleted", formtest.Decode[map[string]string](t, rec)["message"])
	assert.Zero(t, f.fake.Len())

	rec = formtest.Delete(f.router, "/api/galleries/"+created.ID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Gallery not found", formtest.ErrorMessage(t, rec))
}

func TestGalleryHandler_ListFilters(t *testing.T) {
	f := setup(t)
	create := func(showOnTop string) {
		rec := formtest.Serve(f.router, formtest.Request(t, http.MethodPost, "/api/galleries",
			map[string]string{"artistId": f.artist.ID, "showOnTop": showOnTop}, picture()))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	create("true")
	create("false")
	create("false")

	total := func(target string) int64 {
		rec := formtest.Get(f.router, target)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return formtest.Decode[response.Paginated[model.GalleryResponse]](t, rec).TotalRecords
	}

	assert.EqualValues(t, 3, total("/api/galleries"))
	assert.EqualValues(t, 1, total("/api/galleries?show_on_top=true"))
	assert.EqualValues(t, 2, total("/api/galleries?show_on_top=false&artist_id="+f.artist.ID))
	assert.EqualValues(t, 0, total("/api/galleries?artist_id=other"))

	rec := formtest.Get(f.router, "/api/galleries?show_on_top=maybe")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
