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

// ComplaintHandler handles complaint lifecycle endpoints
type ComplaintHandler struct {
	complaintService *services.ComplaintService
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(complaintService *services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// CreateComplaint raises a complaint
// @Summary Raise complaint
// @Description Raise a complaint on behalf of the logged-in user
// @Tags Complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateComplaintInput true "Complaint data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /complaints [post]
func (h *ComplaintHandler) CreateComplaint(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateComplaintInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	cp, err := h.complaintService.Create(c.Context(), userID, &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to raise complaint")
	}

	return response.Created(c, "Complaint raised successfully", fiber.Map{
		"complaint": cp,
	})
}

// ListComplaints lists complaints
// @Summary List complaints
// @Description List complaints, students only see their own
// @Tags Complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param status query string false "Status"
// @Param category query string false "Category"
// @Param priority query string false "Priority"
// @Param assigned_to query int false "Assignee user ID"
// @Success 200 {object} response.Response
// @Router /complaints [get]
func (h *ComplaintHandler) ListComplaints(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	params := pagination.GetParams(c)

	filter := repositories.ComplaintFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Priority: c.Query("priority"),
		Offset:   params.Offset,
		Limit:    params.Limit,
	}
	if v := c.Query("assigned_to"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			assignee := uint(id)
			filter.AssignedTo = &assignee
		}
	}

	complaints, total, err := h.complaintService.List(c.Context(), actor, filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list complaints")
	}

	return response.Success(c, "Complaints retrieved successfully", pagination.NewResponse(complaints, params, total))
}

// GetComplaint fetches one complaint
// @Summary Get complaint
// @Description Get one complaint with its status history
// @Tags Complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /complaints/{id} [get]
func (h *ComplaintHandler) GetComplaint(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid complaint id")
	}

	cp, err := h.complaintService.GetByID(c.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrComplaintNotFound):
			return response.NotFound(c, "Complaint not found")
		case errors.Is(err, services.ErrComplaintNotOwned):
			return response.Forbidden(c, "Complaint belongs to another student")
		default:
			return response.InternalServerError(c, "Failed to get complaint")
		}
	}

	return response.Success(c, "Complaint retrieved successfully", fiber.Map{
		"complaint": cp,
	})
}

// UpdateComplaintStatus moves a complaint through its lifecycle
// @Summary Update complaint status
// @Description Move the complaint to a new status with an audit entry
// @Tags Complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Param body body services.UpdateStatusInput true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /complaints/{id}/status [patch]
func (h *ComplaintHandler) UpdateComplaintStatus(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid complaint id")
	}

	var input services.UpdateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	cp, err := h.complaintService.UpdateStatus(c.Context(), actor, id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrComplaintNotFound):
			return response.NotFound(c, "Complaint not found")
		case errors.Is(err, services.ErrComplaintNotOwned):
			return response.Forbidden(c, "Complaint belongs to another student")
		case errors.Is(err, services.ErrComplaintTerminal):
			return response.BadRequest(c, "Complaint has already reached a final state")
		default:
			return response.InternalServerError(c, "Failed to update complaint status")
		}
	}

	return response.Success(c, "Complaint status updated successfully", fiber.Map{
		"complaint": cp,
	})
}

// AssignComplaint hands a complaint to a staff member
// @Summary Assign complaint
// @Description Assign the complaint to a warden or admin
// @Tags Complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Param body body services.AssignComplaintInput true "Assignee"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /complaints/{id}/assign [patch]
func (h *ComplaintHandler) AssignComplaint(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid complaint id")
	}

	var input services.AssignComplaintInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	cp, err := h.complaintService.Assign(c.Context(), actor, id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrComplaintNotFound):
			return response.NotFound(c, "Complaint not found")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "Assignee not found")
		case errors.Is(err, services.ErrAssigneeNotStaff):
			return response.BadRequest(c, "Complaints can only be assigned to staff")
		case errors.Is(err, services.ErrComplaintTerminal):
			return response.BadRequest(c, "Complaint has already reached a final state")
		default:
			return response.InternalServerError(c, "Failed to assign complaint")
		}
	}

	return response.Success(c, "Complaint assigned successfully", fiber.Map{
		"complaint": cp,
	})
}

// ResolveComplaint records the resolution
// @Summary Resolve complaint
// @Description Record the resolution and mark the complaint resolved
// @Tags Complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Param body body services.ResolveComplaintInput true "Resolution data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /complaints/{id}/resolve [patch]
func (h *ComplaintHandler) ResolveComplaint(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid complaint id")
	}

	var input services.ResolveComplaintInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	cp, err := h.complaintService.Resolve(c.Context(), actor, id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrComplaintNotFound):
			return response.NotFound(c, "Complaint not found")
		case errors.Is(err, services.ErrComplaintTerminal):
			return response.BadRequest(c, "Complaint has already reached a final state")
		default:
			return response.InternalServerError(c, "Failed to resolve complaint")
		}
	}

	return response.Success(c, "Complaint resolved successfully", fiber.Map{
		"complaint": cp,
	})
}

// SubmitFeedback rates a resolved complaint
// @Summary Submit feedback
// @Description Rate the resolution of one's own resolved complaint
// @Tags Complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Param body body services.FeedbackInput true "Rating and feedback"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /complaints/{id}/feedback [post]
func (h *ComplaintHandler) SubmitFeedback(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid complaint id")
	}

	var input services.FeedbackInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	cp, err := h.complaintService.SubmitFeedback(c.Context(), actor, id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrComplaintNotFound):
			return response.NotFound(c, "Complaint not found")
		case errors.Is(err, services.ErrComplaintNotOwned):
			return response.Forbidden(c, "Only the reporter can rate a complaint")
		case errors.Is(err, services.ErrComplaintUnresolved):
			return response.BadRequest(c, "Complaint is not resolved yet")
		case errors.Is(err, services.ErrInvalidRating):
			return response.BadRequest(c, "Rating must be between 1 and 5")
		default:
			return response.InternalServerError(c, "Failed to submit feedback")
		}
	}

	return response.Success(c, "Feedback submitted successfully", fiber.Map{
		"complaint": cp,
	})
}

// DeleteComplaint removes a complaint
// @Summary Delete complaint
// @Description Students may withdraw their own pending complaint; staff may delete any
// @Tags Complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /complaints/{id} [delete]
func (h *ComplaintHandler) DeleteComplaint(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid complaint id")
	}

	if err := h.complaintService.Delete(c.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, services.ErrComplaintNotFound):
			return response.NotFound(c, "Complaint not found")
		case errors.Is(err, services.ErrComplaintNotOwned):
			return response.Forbidden(c, "Complaint belongs to another student")
		case errors.Is(err, services.ErrComplaintTerminal):
			return response.BadRequest(c, "Only pending complaints can be withdrawn")
		default:
			return response.InternalServerError(c, "Failed to delete complaint")
		}
	}

	return response.Success(c, "Complaint deleted successfully", nil)
}

// ComplaintStats returns complaint statistics
// @Summary Complaint statistics
// @Description Summarize complaints by status and category
// @Tags Complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /complaints/stats [get]
func (h *ComplaintHandler) ComplaintStats(c *fiber.Ctx) error {
	stats, err := h.complaintService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get complaint statistics")
	}

	return response.Success(c, "Complaint statistics retrieved successfully", stats)
}
