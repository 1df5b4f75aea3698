package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
)

type DashboardController struct {
	service *services.DashboardService
}

func NewDashboardController(service *services.DashboardService) *DashboardController {
	return &DashboardController{service: service}
}

// Show serves GET /dashboard?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD.
func (h *DashboardController) Show(c *ctx.Context) {
	report, err := h.service.GetMetrics(c.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(report)
}

// Health serves GET /health.
func Health(c *ctx.Context) {
	c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
