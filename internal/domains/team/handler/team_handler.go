package handler

import (
	"github.com/gin-gonic/gin"

	"htc-backend/internal/domains/team/model"
	"htc-backend/internal/domains/team/service"
	"htc-backend/internal/infrastructure/storage"
	"htc-backend/internal/shared/response"
	"htc-backend/internal/shared/utils"
)

type TeamHandler struct {
	service service.Service
}

func NewTeamHandler(s service.Service) *TeamHandler {
	return &TeamHandler{service: s}
}

// List handles GET /api/teams
func (h *TeamHandler) List(c *gin.Context) {
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
	position, _ := utils.QueryString(c, "position")

	result, err := h.service.List(c.Request.Context(), model.ListQuery{
		Page:            page,
		PerPage:         perPage,
		Name:            name,
		Position:        position,
		CreatedFrom:     createdFrom,
		IncludeDisabled: includeDisabled,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// GetByID handles GET /api/teams/:id
func (h *TeamHandler) GetByID(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Create handles POST /api/teams (multipart)
func (h *TeamHandler) Create(c *gin.Context) {
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

	req := &model.CreateMemberRequest{
		Name:        utils.StringValue(utils.FormString(c, "name")),
		Description: utils.StringValue(utils.FormString(c, "description")),
		Position:    utils.StringValue(utils.FormString(c, "position")),
		LinkX:       utils.StringValue(utils.FormString(c, "linkX", "link_x")),
		Avatar:      avatar,
	}
	if disabled != nil {
		req.Disabled = *disabled
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "/api/teams/"+result.ID, result)
}

// Update handles PUT /api/teams/:id (multipart, partial)
func (h *TeamHandler) Update(c *gin.Context) {
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

	result, err := h.service.Update(c.Request.Context(), c.Param("id"), &model.UpdateMemberRequest{
		Name:        utils.FormString(c, "name"),
		Description: utils.FormString(c, "description"),
		Position:    utils.FormString(c, "position"),
		LinkX:       utils.FormString(c, "linkX", "link_x"),
		Disabled:    disabled,
		Avatar:      avatar,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Delete handles DELETE /api/teams/:id
func (h *TeamHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Team member deleted")
}
