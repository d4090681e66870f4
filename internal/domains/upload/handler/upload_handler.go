package handler

import (
	"github.com/gin-gonic/gin"

	"htc-backend/internal/domains/upload/model"
	"htc-backend/internal/domains/upload/service"
	"htc-backend/internal/shared/apperr"
	"htc-backend/internal/shared/response"
	"htc-backend/internal/shared/utils"
)

type UploadHandler struct {
	service service.Service
}

func NewUploadHandler(s service.Service) *UploadHandler {
	return &UploadHandler{service: s}
}

// Upload handles POST /api/upload/:kind
func (h *UploadHandler) Upload(c *gin.Context) {
	kind, err := model.LookupKind(c.Param("kind"))
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := utils.FormUpload(c, "file", kind.Policy)
	if err != nil {
		response.Error(c, err)
		return
	}
	if file == nil {
		response.Error(c, apperr.Validation("No file uploaded"))
		return
	}

	res, err := h.service.Upload(c.Request.Context(), kind, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "", res)
}

// Delete handles DELETE /api/upload/:kind/:fileName
func (h *UploadHandler) Delete(c *gin.Context) {
	kind, err := model.LookupKind(c.Param("kind"))
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), kind, c.Param("fileName")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, model.MsgFileDeleted)
}
