package handlers

import (
	"hostelhub/internal/adapters/http/middleware"
	"hostelhub/internal/core/services"
	"hostelhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler serves the aggregated dashboard views
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// AdminDashboard returns the staff overview
// @Summary Admin dashboard
// @Description Aggregate counts across students, rooms, complaints, fees and leaves
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/admin [get]
func (h *DashboardHandler) AdminDashboard(c *fiber.Ctx) error {
	dashboard, err := h.dashboardService.GetAdminDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to build dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", dashboard)
}

// StudentDashboard returns the logged-in student's overview
// @Summary Student dashboard
// @Description Profile, pending fees, open complaints and active leaves for the current student
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/student [get]
func (h *DashboardHandler) StudentDashboard(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)

	dashboard, err := h.dashboardService.GetStudentDashboard(c.Context(), actor)
	if err != nil {
		return response.InternalServerError(c, "Failed to build dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", dashboard)
}
