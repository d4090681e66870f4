package handler

import (
	"github.com/gin-gonic/gin"

	"htc-backend/internal/domains/artist/model"
	"htc-backend/internal/domains/artist/service"
	"htc-backend/internal/infrastructure/storage"
	"htc-backend/internal/shared/response"
	"htc-backend/internal/shared/utils"
)

type ArtistHandler struct {
	service service.Service
}

func NewArtistHandler(s service.Service) *ArtistHandler {
	return &ArtistHandler{service: s}
}

// List handles GET /api/artists
func (h *ArtistHandler) List(c *gin.Context) {
	q, err := listQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// GetByID handles GET /api/artists/:id
func (h *ArtistHandler) GetByID(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Images handles GET /api/artists/:id/images
func (h *ArtistHandler) Images(c *gin.Context) {
	result, err := h.service.Images(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Create handles POST /api/artists (multipart)
func (h *ArtistHandler) Create(c *gin.Context) {
	avatar, err := utils.FormUpload(c, "avatar", storage.ImagePolicy)
	if err != nil {
		response.Error(c, err)
		return
	}
	disabled, err := utils.FormBool(c, "disabled")
	if err != nil {
		response.Error(c, err)
		return
	}

	req := &model.CreateArtistRequest{
		Name:   utils.StringValue(utils.FormString(c, "name")),
		Style:  utils.StringValue(utils.FormString(c, "style")),
		LinkX:  utils.StringValue(utils.FormString(c, "linkX", "link_x")),
		XTag:   utils.StringValue(utils.FormString(c, "xTag", "x_tag")),
		Avatar: avatar,
	}
	if disabled != nil {
		req.Disabled = *disabled
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "/api/artists/"+result.ID, result)
}

// Update handles PUT /api/artists/:id (multipart, partial)
func (h *ArtistHandler) Update(c *gin.Context) {
	avatar, err := utils.FormUpload(c, "avatar", storage.ImagePolicy)
	if err != nil {
		response.Error(c, err)
		return
	}
	disabled, err := utils.FormBool(c, "disabled")
	if err != nil {
		response.Error(c, err)
		return
	}

	req := &model.UpdateArtistRequest{
		Name:     utils.FormString(c, "name"),
		Style:    utils.FormString(c, "style"),
		LinkX:    utils.FormString(c, "linkX", "link_x"),
		XTag:     utils.FormString(c, "xTag", "x_tag"),
		Disabled: disabled,
		Avatar:   avatar,
	}

	result, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Delete handles DELETE /api/artists/:id
func (h *ArtistHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Artist deleted")
}

func listQuery(c *gin.Context) (model.ListQuery, error) {
	page, perPage := utils.ParsePage(c)
	createdFrom, _, err := utils.QueryTime(c, "created_at")
	if err != nil {
		return model.ListQuery{}, err
	}
	includeDisabled, _, err := utils.QueryBool(c, "include_disabled")
	if err != nil {
		return model.ListQuery{}, err
	}
	name, _ := utils.QueryString(c, "name")
	style, _ := utils.QueryString(c, "style")

	return model.ListQuery{
		Page:            page,
		PerPage:         perPage,
		Name:            name,
		Style:           style,
		CreatedFrom:     createdFrom,
		IncludeDisabled: includeDisabled,
	}, nil
}
