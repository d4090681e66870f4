package handler

import (
	"github.com/gin-gonic/gin"

	"htc-backend/internal/domains/dashboard/service"
	"htc-backend/internal/shared/response"
)

type DashboardHandler struct {
	service service.Service
}

func NewDashboardHandler(s service.Service) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// Stats handles GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// Activities handles GET /api/dashboard/activities
func (h *DashboardHandler) Activities(c *gin.Context) {
	activities, err := h.service.Activities(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, activities)
}
