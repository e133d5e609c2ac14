package handlers

import (
	"hostelhub/internal/core/services"
	"hostelhub/internal/pkg/response"
	"hostelhub/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler generates downloadable PDF and Excel reports
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) rangeInput(c *fiber.Ctx) (*services.ReportRangeInput, error) {
	input := &services.ReportRangeInput{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Format:    c.Query("format"),
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	return input, nil
}

// FeeReport generates the fee collection report
// @Summary Fee report
// @Description Generate a fee collection report as PDF or Excel
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Param format query string false "pdf or excel"
// @Success 200 {object} response.Response
// @Router /reports/fees [get]
func (h *ReportHandler) FeeReport(c *fiber.Ctx) error {
	input, err := h.rangeInput(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	file, err := h.reportService.FeeReport(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate fee report")
	}

	return response.Success(c, "Report generated successfully", file)
}

// ComplaintReport generates the complaint summary report
// @Summary Complaint report
// @Description Generate a complaint summary report as PDF or Excel
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Param format query string false "pdf or excel"
// @Success 200 {object} response.Response
// @Router /reports/complaints [get]
func (h *ReportHandler) ComplaintReport(c *fiber.Ctx) error {
	input, err := h.rangeInput(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	file, err := h.reportService.ComplaintReport(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate complaint report")
	}

	return response.Success(c, "Report generated successfully", file)
}

// LeaveReport generates the leave register report
// @Summary Leave report
// @Description Generate a leave register report as PDF or Excel
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Param format query string false "pdf or excel"
// @Success 200 {object} response.Response
// @Router /reports/leaves [get]
func (h *ReportHandler) LeaveReport(c *fiber.Ctx) error {
	input, err := h.rangeInput(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	file, err := h.reportService.LeaveReport(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate leave report")
	}

	return response.Success(c, "Report generated successfully", file)
}

// OccupancyReport generates the room occupancy report
// @Summary Occupancy report
// @Description Generate a room occupancy report as PDF or Excel
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param format query string false "pdf or excel"
// @Success 200 {object} response.Response
// @Router /reports/occupancy [get]
func (h *ReportHandler) OccupancyReport(c *fiber.Ctx) error {
	file, err := h.reportService.OccupancyReport(c.Context(), c.Query("format"))
	if err != nil {
		return response.InternalServerError(c, "Failed to generate occupancy report")
	}

	return response.Success(c, "Report generated successfully", file)
}
