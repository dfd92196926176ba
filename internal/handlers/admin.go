// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mittirang/mittirang-backend/internal/services"
	"github.com/mittirang/mittirang-backend/internal/utils"
)

type AdminHandler struct {
	dashboardService *services.DashboardService
}

func NewAdminHandler(dashboardService *services.DashboardService) *AdminHandler {
	return &AdminHandler{
		dashboardService: dashboardService,
	}
}

// GET /v1/admin/dashboard/stats
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to load dashboard stats")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stats": stats,
	})
}
