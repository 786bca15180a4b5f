package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/skbavi/supermarket-pos-api/internal/application/service"
	"github.com/skbavi/supermarket-pos-api/internal/presentation/http/dto/response"
)

// AnalyticsHandler serves the sales-analysis dashboard
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Dashboard handles the dashboard payload request
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.analyticsService.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard retrieved successfully", dashboard)
}
