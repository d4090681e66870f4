package handler

import (
	"github.com/gin-gonic/gin"

	"htc-backend/internal/domains/gallery/model"
	"htc-backend/internal/domains/gallery/service"
	"htc-backend/internal/infrastructure/storage"
	"htc-backend/internal/shared/response"
	"htc-backend/internal/shared/utils"
)

type GalleryHandler struct {
	service service.Service
}

func NewGalleryHandler(s service.Service) *GalleryHandler {
	return &GalleryHandler{service: s}
}

// List handles GET /api/galleries
func (h *GalleryHandler) List(c *gin.Context) {
	page, perPage := utils.ParsePage(c)
	showOnTop, hasShowOnTop, err := utils.QueryBool(c, "show_on_top")
	if err != nil {
		response.Error(c, err)
		return
	}
	artistID, _ := utils.QueryString(c, "artist_id")

	result, err := h.service.List(c.Request.Context(), model.ListQuery{
		Page:         page,
		PerPage:      perPage,
		ArtistID:     artistID,
		ShowOnTop:    showOnTop,
		HasShowOnTop: hasShowOnTop,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// GetByID handles GET /api/galleries/:id
func (h *GalleryHandler) GetByID(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Create handles POST /api/galleries (multipart)
func (h *GalleryHandler) Create(c *gin.Context) {
	picture, err := utils.FormUpload(c, "picture", storage.ImagePolicy)
	if err != nil {
		response.Error(c, err)
		return
	}
	showOnTop, err := utils.FormBool(c, "showOnTop", "show_on_top")
	if err != nil {
		response.Error(c, err)
		return
	}

	req := &model.CreateGalleryRequest{
		ArtistID: utils.StringValue(utils.FormString(c, "artistId", "artist_id")),
		Picture:  picture,
	}
	if showOnTop != nil {
		req.ShowOnTop = *showOnTop
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "/api/galleries/"+result.ID, result)
}

// Update handles PUT /api/galleries/:id (multipart, partial)
func (h *GalleryHandler) Update(c *gin.Context) {
	picture, err := utils.FormUpload(c, "picture", storage.ImagePolicy)
	if err != nil {
		response.Error(c, err)
		return
	}
	showOnTop, err := utils.FormBool(c, "showOnTop", "show_on_top")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.Update(c.Request.Context(), c.Param("id"), &model.UpdateGalleryRequest{
		ArtistID:  utils.FormString(c, "artistId", "artist_id"),
		ShowOnTop: showOnTop,
		Picture:   picture,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Delete handles DELETE /api/galleries/:id
func (h *GalleryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Gallery deleted")
}
