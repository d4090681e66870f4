package handler

import (
	"github.com/gin-gonic/gin"

	"htc-backend/internal/domains/project/model"
	"htc-backend/internal/domains/project/service"
	"htc-backend/internal/infrastructure/storage"
	"htc-backend/internal/shared/response"
	"htc-backend/internal/shared/utils"
)

type ProjectHandler struct {
	service service.Service
}

func NewProjectHandler(s service.Service) *ProjectHandler {
	return &ProjectHandler{service: s}
}

// List handles GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	page, perPage := utils.ParsePage(c)
	name, _ := utils.QueryString(c, "projectName")

	result, err := h.service.List(c.Request.Context(), model.ListQuery{
		Page:        page,
		PerPage:     perPage,
		ProjectName: name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Public handles GET /api/projects/public
func (h *ProjectHandler) Public(c *gin.Context) {
	result, err := h.service.Public(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// GetByID handles GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Create handles POST /api/projects (multipart)
func (h *ProjectHandler) Create(c *gin.Context) {
	form, err := readForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	req := model.NewCreateProjectRequest()
	req.ProjectName = utils.StringValue(form.ProjectName)
	req.Description = utils.StringValue(form.Description)
	req.XLink = utils.StringValue(form.XLink)
	req.LogoURL = utils.StringValue(form.LogoURL)
	req.Logo = form.Logo
	if form.Lat != nil {
		req.Lat = *form.Lat
	}
	if form.Lng != nil {
		req.Lng = *form.Lng
	}
	if form.Size != nil {
		req.Size = *form.Size
	}
	if form.IsActive != nil {
		req.IsActive = *form.IsActive
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "/api/projects/"+result.ID, result)
}

// Update handles PUT /api/projects/:id (multipart, partial)
func (h *ProjectHandler) Update(c *gin.Context) {
	form, err := readForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.Update(c.Request.Context(), c.Param("id"), form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Delete handles DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Project deleted")
}

// readForm collects the present project fields; create fills defaults for the rest.
func readForm(c *gin.Context) (*model.UpdateProjectRequest, error) {
	logo, err := utils.FormUpload(c, "logo", storage.LogoPolicy)
	if err != nil {
		return nil, err
	}
	lat, err := utils.FormFloat(c, "lat")
	if err != nil {
		return nil, err
	}
	lng, err := utils.FormFloat(c, "lng")
	if err != nil {
		return nil, err
	}
	size, err := utils.FormFloat(c, "size")
	if err != nil {
		return nil, err
	}
	isActive, err := utils.FormBool(c, "isActive", "is_active")
	if err != nil {
		return nil, err
	}

	return &model.UpdateProjectRequest{
		ProjectName: utils.FormString(c, "projectName", "project_name"),
		Description: utils.FormString(c, "description"),
		XLink:       utils.FormString(c, "xLink", "x_link"),
		LogoURL:     utils.FormString(c, "logoUrl", "logo_url"),
		Lat:         lat,
		Lng:         lng,
		Size:        size,
		IsActive:    isActive,
		Logo:        logo,
	}, nil
}
