package handler

import (
	"github.com/gin-gonic/gin"

	"htc-backend/internal/domains/pet/model"
	"htc-backend/internal/domains/pet/service"
	"htc-backend/internal/infrastructure/storage"
	"htc-backend/internal/shared/response"
	"htc-backend/internal/shared/utils"
)

type PetHandler struct {
	service service.Service
}

func NewPetHandler(s service.Service) *PetHandler {
	return &PetHandler{service: s}
}

func (h *PetHandler) List(c *gin.Context) {
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

func (h *PetHandler) GetByID(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (h *PetHandler) Create(c *gin.Context) {
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

	req := &model.CreatePetRequest{
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
	response.Created(c, "/api/pets/"+result.ID, result)
}

func (h *PetHandler) Update(c *gin.Context) {
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

	result, err := h.service.Update(c.Request.Context(), c.Param("id"), &model.UpdatePetRequest{
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

func (h *PetHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Pet deleted")
}
