package handlers

import (
	"errors"
	"strconv"

	"hostelhub/internal/adapters/http/middleware"
	"hostelhub/internal/adapters/persistence/repositories"
	"hostelhub/internal/core/services"
	"hostelhub/internal/pkg/pagination"
	"hostelhub/internal/pkg/response"
	"hostelhub/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// LeaveHandler handles leave application endpoints
type LeaveHandler struct {
	leaveService *services.LeaveService
}

// NewLeaveHandler creates a new leave handler
func NewLeaveHandler(leaveService *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

// ApplyLeave submits a new leave application
// @Summary Apply for leave
// @Description Submit a leave application for the logged-in student
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ApplyLeaveInput true "Leave application"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /leaves [post]
func (h *LeaveHandler) ApplyLeave(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.ApplyLeaveInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	leave, err := h.leaveService.Apply(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLeaveDatesInvalid):
			return response.BadRequest(c, "End date must not be before start date")
		case errors.Is(err, services.ErrLeaveInPast):
			return response.BadRequest(c, "Leave cannot start in the past")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "Student not found")
		default:
			return response.InternalServerError(c, "Failed to apply for leave")
		}
	}

	return response.Created(c, "Leave application submitted successfully", fiber.Map{
		"leave": leave,
	})
}

// ListLeaves lists leave applications
// @Summary List leaves
// @Description List leave applications, students only see their own
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param status query string false "Status"
// @Param leave_type query string false "Leave type"
// @Param student_id query int false "Student ID (staff only)"
// @Success 200 {object} response.Response
// @Router /leaves [get]
func (h *LeaveHandler) ListLeaves(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	params := pagination.GetParams(c)

	filter := repositories.LeaveFilter{
		Status:    c.Query("status"),
		LeaveType: c.Query("leave_type"),
		Offset:    params.Offset,
		Limit:     params.Limit,
	}
	if v := c.Query("student_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			studentID := uint(id)
			filter.StudentID = &studentID
		}
	}

	leaves, total, err := h.leaveService.List(c.Context(), actor, filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list leaves")
	}

	return response.Success(c, "Leaves retrieved successfully", pagination.NewResponse(leaves, params, total))
}

// GetLeave fetches one leave application
// @Summary Get leave
// @Description Get one leave application with its approval history
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /leaves/{id} [get]
func (h *LeaveHandler) GetLeave(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid leave id")
	}

	leave, err := h.leaveService.GetByID(c.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLeaveNotFound):
			return response.NotFound(c, "Leave not found")
		case errors.Is(err, services.ErrLeaveNotOwned):
			return response.Forbidden(c, "Leave belongs to another student")
		default:
			return response.InternalServerError(c, "Failed to get leave")
		}
	}

	return response.Success(c, "Leave retrieved successfully", fiber.Map{
		"leave": leave,
	})
}

// UpdateLeave edits a pending leave application
// @Summary Update leave
// @Description Edit the student's own leave while it is still pending
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave ID"
// @Param body body services.UpdateLeaveInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /leaves/{id} [put]
func (h *LeaveHandler) UpdateLeave(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid leave id")
	}

	var input services.UpdateLeaveInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	leave, err := h.leaveService.Update(c.Context(), actor, id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLeaveNotFound):
			return response.NotFound(c, "Leave not found")
		case errors.Is(err, services.ErrLeaveNotOwned):
			return response.Forbidden(c, "Leave belongs to another student")
		case errors.Is(err, services.ErrLeaveNotPending):
			return response.BadRequest(c, "Only pending leaves can be edited")
		case errors.Is(err, services.ErrLeaveDatesInvalid):
			return response.BadRequest(c, "End date must not be before start date")
		case errors.Is(err, services.ErrLeaveInPast):
			return response.BadRequest(c, "Leave cannot start in the past")
		default:
			return response.InternalServerError(c, "Failed to update leave")
		}
	}

	return response.Success(c, "Leave updated successfully", fiber.Map{
		"leave": leave,
	})
}

// DecideLeave approves or rejects a pending leave
// @Summary Decide leave
// @Description Approve or reject a pending leave application
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave ID"
// @Param body body services.LeaveDecisionInput true "Decision"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /leaves/{id}/decide [patch]
func (h *LeaveHandler) DecideLeave(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid leave id")
	}

	var input services.LeaveDecisionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	leave, err := h.leaveService.Decide(c.Context(), actor, id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLeaveNotFound):
			return response.NotFound(c, "Leave not found")
		case errors.Is(err, services.ErrLeaveNotPending):
			return response.BadRequest(c, "Leave has already been decided")
		default:
			return response.InternalServerError(c, "Failed to decide leave")
		}
	}

	return response.Success(c, "Leave decision recorded successfully", fiber.Map{
		"leave": leave,
	})
}

// CancelLeave cancels a pending leave
// @Summary Cancel leave
// @Description Cancel the student's own pending leave application
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /leaves/{id}/cancel [patch]
func (h *LeaveHandler) CancelLeave(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid leave id")
	}

	leave, err := h.leaveService.Cancel(c.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLeaveNotFound):
			return response.NotFound(c, "Leave not found")
		case errors.Is(err, services.ErrLeaveNotOwned):
			return response.Forbidden(c, "Leave belongs to another student")
		case errors.Is(err, services.ErrLeaveNotPending):
			return response.BadRequest(c, "Only pending leaves can be cancelled")
		default:
			return response.InternalServerError(c, "Failed to cancel leave")
		}
	}

	return response.Success(c, "Leave cancelled successfully", fiber.Map{
		"leave": leave,
	})
}

// RequestExtension asks for more time on an approved leave
// @Summary Request extension
// @Description Request an extension on an approved leave
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave ID"
// @Param body body services.ExtensionInput true "Extension request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /leaves/{id}/extend [post]
func (h *LeaveHandler) RequestExtension(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid leave id")
	}

	var input services.ExtensionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	leave, err := h.leaveService.RequestExtension(c.Context(), actor, id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLeaveNotFound):
			return response.NotFound(c, "Leave not found")
		case errors.Is(err, services.ErrLeaveNotOwned):
			return response.Forbidden(c, "Leave belongs to another student")
		case errors.Is(err, services.ErrLeaveNotApproved):
			return response.BadRequest(c, "Only approved leaves can be extended")
		case errors.Is(err, services.ErrExtensionTooShort):
			return response.BadRequest(c, "New end date must be after the current end date")
		default:
			return response.InternalServerError(c, "Failed to request extension")
		}
	}

	return response.Success(c, "Extension requested successfully", fiber.Map{
		"leave": leave,
	})
}

// DecideExtension approves or rejects an extension request
// @Summary Decide extension
// @Description Approve or reject a pending extension request
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave ID"
// @Param extensionId path int true "Extension ID"
// @Param body body services.LeaveDecisionInput true "Decision"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /leaves/{id}/extensions/{extensionId}/decide [patch]
func (h *LeaveHandler) DecideExtension(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid leave id")
	}
	extID, err := strconv.ParseUint(c.Params("extensionId"), 10, 32)
	if err != nil || extID == 0 {
		return response.BadRequest(c, "Invalid extension id")
	}

	var input services.LeaveDecisionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	leave, err := h.leaveService.DecideExtension(c.Context(), actor, id, uint(extID), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLeaveNotFound):
			return response.NotFound(c, "Leave not found")
		case errors.Is(err, services.ErrExtensionNotFound):
			return response.NotFound(c, "Extension request not found")
		case errors.Is(err, services.ErrExtensionNotPending):
			return response.BadRequest(c, "Extension has already been decided")
		default:
			return response.InternalServerError(c, "Failed to decide extension")
		}
	}

	return response.Success(c, "Extension decision recorded successfully", fiber.Map{
		"leave": leave,
	})
}

// RecordReturn marks the student as returned
// @Summary Record return
// @Description Record the student's actual return date on an approved leave
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /leaves/{id}/return [patch]
func (h *LeaveHandler) RecordReturn(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid leave id")
	}

	leave, err := h.leaveService.RecordReturn(c.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLeaveNotFound):
			return response.NotFound(c, "Leave not found")
		case errors.Is(err, services.ErrLeaveNotApproved):
			return response.BadRequest(c, "Return can only be recorded on approved leaves")
		case errors.Is(err, services.ErrReturnAlreadySet):
			return response.BadRequest(c, "Return has already been recorded")
		default:
			return response.InternalServerError(c, "Failed to record return")
		}
	}

	return response.Success(c, "Return recorded successfully", fiber.Map{
		"leave": leave,
	})
}

// LeaveStats returns leave statistics
// @Summary Leave statistics
// @Description Summarize leave counts by status
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /leaves/stats [get]
func (h *LeaveHandler) LeaveStats(c *fiber.Ctx) error {
	stats, err := h.leaveService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get leave statistics")
	}

	return response.Success(c, "Leave statistics retrieved successfully", stats)
}
