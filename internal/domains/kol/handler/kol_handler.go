package handler

import (
	"github.com/gin-gonic/gin"

	"htc-backend/internal/domains/kol/model"
	"htc-backend/internal/domains/kol/service"
	"htc-backend/internal/infrastructure/storage"
	"htc-backend/internal/shared/response"
	"htc-backend/internal/shared/utils"
)

type KolHandler struct {
	service service.Service
}

func NewKolHandler(s service.Service) *KolHandler {
	return &KolHandler{service: s}
}

// List handles GET /api/kols
func (h *KolHandler) List(c *gin.Context) {
	page, perPage := utils.ParsePage(c)
	createdFrom, _, err := utils.QueryTime(c, "created_at")
	if err != nil {
		response.Error(c, err)
		return
	}
	includeDisabled, _, err := utils.QueryBool(c, "include_disabled")
	if err != nil {
		response.Error(c, err)
		return
	}
	name, _ := utils.QueryString(c, "name")

	result, err := h.service.List(c.Request.Context(), model.ListQuery{
		Page:            page,
		PerPage:         perPage,
		Name:            name,
		CreatedFrom:     createdFrom,
		IncludeDisabled: includeDisabled,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// GetByID handles GET /api/kols/:id
func (h *KolHandler) GetByID(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Create handles POST /api/kols (multipart)
func (h *KolHandler) Create(c *gin.Context) {
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

	req := &model.CreateKolRequest{
		Name:   utils.StringValue(utils.FormString(c, "name")),
		LinkX:  utils.StringValue(utils.FormString(c, "linkX", "link_x")),
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
	response.Created(c, "/api/kols/"+result.ID, result)
}

// Update handles PUT /api/kols/:id (multipart, partial)
func (h *KolHandler) Update(c *gin.Context) {
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

	result, err := h.service.Update(c.Request.Context(), c.Param("id"), &model.UpdateKolRequest{
		Name:     utils.FormString(c, "name"),
		LinkX:    utils.FormString(c, "linkX", "link_x"),
		Disabled: disabled,
		Avatar:   avatar,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Delete handles DELETE /api/kols/:id
func (h *KolHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "KOL deleted")
}
