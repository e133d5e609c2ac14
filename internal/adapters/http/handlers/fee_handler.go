package handlers

import (
	"errors"
	"strconv"

	"hostelhub/internal/adapters/http/middleware"
	"hostelhub/internal/adapters/persistence/models"
	"hostelhub/internal/adapters/persistence/repositories"
	"hostelhub/internal/core/services"
	"hostelhub/internal/pkg/pagination"
	"hostelhub/internal/pkg/response"
	"hostelhub/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// FeeHandler handles billing and payment endpoints
type FeeHandler struct {
	feeService *services.FeeService
}

// NewFeeHandler creates a new fee handler
func NewFeeHandler(feeService *services.FeeService) *FeeHandler {
	return &FeeHandler{feeService: feeService}
}

// WaiveRequest carries the optional waiver reason
type WaiveRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// CreateFee bills a charge to a student
// @Summary Create fee
// @Description Bill one charge to a student
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateFeeInput true "Fee data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /fees [post]
func (h *FeeHandler) CreateFee(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateFeeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	fee, err := h.feeService.Create(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "Student not found")
		case errors.Is(err, services.ErrNotAStudent):
			return response.BadRequest(c, "Fees can only be billed to students")
		default:
			return response.InternalServerError(c, "Failed to create fee")
		}
	}

	return response.Created(c, "Fee created successfully", fiber.Map{
		"fee": fee,
	})
}

// ListFees lists fees
// @Summary List fees
// @Description List fees, students only see their own
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param status query string false "Status"
// @Param fee_type query string false "Fee type"
// @Param student_id query int false "Student ID (staff only)"
// @Param month query int false "Month"
// @Param year query int false "Year"
// @Success 200 {object} response.Response
// @Router /fees [get]
func (h *FeeHandler) ListFees(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	params := pagination.GetParams(c)

	filter := repositories.FeeFilter{
		Status:  c.Query("status"),
		FeeType: c.Query("fee_type"),
		Offset:  params.Offset,
		Limit:   params.Limit,
	}
	if v := c.Query("student_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			studentID := uint(id)
			filter.StudentID = &studentID
		}
	}
	if v := c.Query("month"); v != "" {
		filter.Month, _ = strconv.Atoi(v)
	}
	if v := c.Query("year"); v != "" {
		filter.Year, _ = strconv.Atoi(v)
	}

	fees, total, err := h.feeService.List(c.Context(), actor, filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list fees")
	}

	return response.Success(c, "Fees retrieved successfully", pagination.NewResponse(fees, params, total))
}

// GetFee fetches one fee
// @Summary Get fee
// @Description Get one fee with its payment history
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /fees/{id} [get]
func (h *FeeHandler) GetFee(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid fee id")
	}

	fee, err := h.feeService.GetByID(c.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFeeNotFound):
			return response.NotFound(c, "Fee not found")
		case errors.Is(err, services.ErrFeeNotOwned):
			return response.Forbidden(c, "Fee belongs to another student")
		default:
			return response.InternalServerError(c, "Failed to get fee")
		}
	}

	return response.Success(c, "Fee retrieved successfully", fiber.Map{
		"fee": fee,
	})
}

// UpdateFee adjusts the billed amounts
// @Summary Update fee
// @Description Adjust billed amounts; derived fields are recomputed
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee ID"
// @Param body body services.UpdateFeeInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /fees/{id} [put]
func (h *FeeHandler) UpdateFee(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid fee id")
	}

	var input services.UpdateFeeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	fee, err := h.feeService.Update(c.Context(), actor, id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFeeNotFound):
			return response.NotFound(c, "Fee not found")
		default:
			return response.InternalServerError(c, "Failed to update fee")
		}
	}

	return response.Success(c, "Fee updated successfully", fiber.Map{
		"fee": fee,
	})
}

// RecordPayment records a payment on a fee
// @Summary Record payment
// @Description Append one payment to the fee's ledger
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee ID"
// @Param body body services.PaymentInput true "Payment data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /fees/{id}/pay [post]
func (h *FeeHandler) RecordPayment(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid fee id")
	}

	var input services.PaymentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	fee, err := h.feeService.RecordPayment(c.Context(), actor, id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFeeNotFound):
			return response.NotFound(c, "Fee not found")
		case errors.Is(err, services.ErrFeeNotOwned):
			return response.Forbidden(c, "Fee belongs to another student")
		case errors.Is(err, services.ErrFeeSettled):
			return response.BadRequest(c, "Fee is already settled")
		case errors.Is(err, models.ErrOverpayment):
			return response.BadRequest(c, "Payment exceeds the remaining balance")
		default:
			return response.InternalServerError(c, "Failed to record payment")
		}
	}

	return response.Success(c, "Payment recorded successfully", fiber.Map{
		"fee": fee,
	})
}

// WaiveFee forgives an unpaid fee
// @Summary Waive fee
// @Description Forgive an unpaid fee; waived status is permanent
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee ID"
// @Param body body WaiveRequest false "Waiver reason"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /fees/{id}/waive [patch]
func (h *FeeHandler) WaiveFee(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid fee id")
	}

	var req WaiveRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return response.BadRequest(c, "Invalid request body")
	}

	fee, err := h.feeService.Waive(c.Context(), actor, id, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFeeNotFound):
			return response.NotFound(c, "Fee not found")
		case errors.Is(err, services.ErrFeeNotWaivable):
			return response.BadRequest(c, "Only unpaid fees can be waived")
		default:
			return response.InternalServerError(c, "Failed to waive fee")
		}
	}

	return response.Success(c, "Fee waived successfully", fiber.Map{
		"fee": fee,
	})
}

// RemindFee sends one payment reminder
// @Summary Send fee reminder
// @Description Email a payment reminder for an unsettled fee
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /fees/{id}/remind [post]
func (h *FeeHandler) RemindFee(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid fee id")
	}

	fee, err := h.feeService.Remind(c.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFeeNotFound):
			return response.NotFound(c, "Fee not found")
		case errors.Is(err, services.ErrFeeSettled):
			return response.BadRequest(c, "Fee is already settled")
		default:
			return response.InternalServerError(c, "Failed to send reminder")
		}
	}

	return response.Success(c, "Reminder sent successfully", fiber.Map{
		"fee": fee,
	})
}

// SendReminders dispatches reminders for all fees due soon
// @Summary Send bulk reminders
// @Description Email reminders for every fee due within the window
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param days query int false "Due window in days (default 3)"
// @Success 200 {object} response.Response
// @Router /fees/reminders [post]
func (h *FeeHandler) SendReminders(c *fiber.Ctx) error {
	days := 3
	if v := c.Query("days"); v != "" {
		if d, err := strconv.Atoi(v); err == nil && d > 0 {
			days = d
		}
	}

	sent, err := h.feeService.SendDueReminders(c.Context(), days)
	if err != nil {
		return response.InternalServerError(c, "Failed to send reminders")
	}

	return response.Success(c, "Reminders sent successfully", fiber.Map{
		"sent": sent,
	})
}

// ListDefaulters lists students with overdue balances
// @Summary List defaulters
// @Description List fees in overdue or partial status with a balance
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /fees/defaulters [get]
func (h *FeeHandler) ListDefaulters(c *fiber.Ctx) error {
	fees, err := h.feeService.ListDefaulters(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list defaulters")
	}

	return response.Success(c, "Defaulters retrieved successfully", fiber.Map{
		"fees": fees,
	})
}

// FeeStats returns billing statistics
// @Summary Fee statistics
// @Description Summarize billed, collected and outstanding totals
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /fees/stats [get]
func (h *FeeHandler) FeeStats(c *fiber.Ctx) error {
	stats, err := h.feeService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get fee statistics")
	}

	return response.Success(c, "Fee statistics retrieved successfully", stats)
}
