package handlers

import (
	"errors"
	"strconv"

	"hostelhub/internal/adapters/persistence/models"
	"hostelhub/internal/adapters/persistence/repositories"
	"hostelhub/internal/core/services"
	"hostelhub/internal/pkg/pagination"
	"hostelhub/internal/pkg/response"
	"hostelhub/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles student and warden management endpoints
type UserHandler struct {
	studentService *services.StudentService
}

// NewUserHandler creates a new user handler
func NewUserHandler(studentService *services.StudentService) *UserHandler {
	return &UserHandler{studentService: studentService}
}

// parseIDParam reads the :id route parameter
func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// CreateStudent handles admin-side student creation
// @Summary Create student
// @Description Create a student account with a generated student ID
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateStudentInput true "Student data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/students [post]
func (h *UserHandler) CreateStudent(c *fiber.Ctx) error {
	var input services.CreateStudentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.studentService.CreateStudent(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return response.Conflict(c, "Email already registered")
		default:
			return response.InternalServerError(c, "Failed to create student")
		}
	}

	return response.Created(c, "Student created successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// CreateWarden handles admin-side warden creation
// @Summary Create warden
// @Description Create a warden account with a generated employee ID
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateWardenInput true "Warden data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/wardens [post]
func (h *UserHandler) CreateWarden(c *fiber.Ctx) error {
	var input services.CreateWardenInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.studentService.CreateWarden(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return response.Conflict(c, "Email already registered")
		default:
			return response.InternalServerError(c, "Failed to create warden")
		}
	}

	return response.Created(c, "Warden created successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// ListStudents lists students
// @Summary List students
// @Description List student accounts with search and pagination
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param search query string false "Search name, email or student ID"
// @Success 200 {object} response.Response
// @Router /admin/students [get]
func (h *UserHandler) ListStudents(c *fiber.Ctx) error {
	return h.listByRole(c, "student")
}

// ListWardens lists wardens
// @Summary List wardens
// @Description List warden accounts with search and pagination
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Router /admin/wardens [get]
func (h *UserHandler) ListWardens(c *fiber.Ctx) error {
	return h.listByRole(c, "warden")
}

func (h *UserHandler) listByRole(c *fiber.Ctx, role string) error {
	params := pagination.GetParams(c)

	filter := repositories.UserFilter{
		Role:   role,
		Search: c.Query("search"),
		Offset: params.Offset,
		Limit:  params.Limit,
	}
	if v := c.Query("is_active"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}

	users, total, err := h.studentService.List(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	items := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, u.ToResponse())
	}

	return response.Success(c, "Users retrieved successfully", pagination.NewResponse(items, params, total))
}

// GetUser fetches one user by ID
// @Summary Get user
// @Description Get one user by ID
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	user, err := h.studentService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// UpdateUser applies staff-side edits to a user
// @Summary Update user
// @Description Update a user's details
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body services.UpdateUserInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.studentService.Update(c.Context(), id, &input)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to update user")
	}

	return response.Success(c, "User updated successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// DeactivateUser disables an account
// @Summary Deactivate user
// @Description Disable a user account, keeping its history
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeactivateUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	if err := h.studentService.Deactivate(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to deactivate user")
	}

	return response.Success(c, "User deactivated successfully", nil)
}

// AssignRoom allocates a room to a student
// @Summary Assign room
// @Description Allocate a bed in a room to a student
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param body body services.AssignRoomInput true "Room assignment"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/students/{id}/assign-room [post]
func (h *UserHandler) AssignRoom(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid student id")
	}

	var input services.AssignRoomInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.studentService.AssignRoom(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "Student not found")
		case errors.Is(err, services.ErrRoomNotFound):
			return response.NotFound(c, "Room not found")
		case errors.Is(err, services.ErrNotAStudent):
			return response.BadRequest(c, "Rooms can only be assigned to students")
		case errors.Is(err, services.ErrStudentHasRoom):
			return response.Conflict(c, "Student already has a room assigned")
		case errors.Is(err, services.ErrRoomNotAvailable):
			return response.Conflict(c, "Room is not available for allocation")
		case errors.Is(err, models.ErrRoomAtCapacity):
			return response.Conflict(c, "Room is at full capacity")
		case errors.Is(err, models.ErrOccupantExists):
			return response.Conflict(c, "Student is already assigned to this room")
		default:
			return response.InternalServerError(c, "Failed to assign room")
		}
	}

	return response.Success(c, "Room assigned successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// UnassignRoom releases a student's room
// @Summary Unassign room
// @Description Release the student's bed and clear the assignment
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/students/{id}/unassign-room [post]
func (h *UserHandler) UnassignRoom(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid student id")
	}

	user, err := h.studentService.UnassignRoom(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "Student not found")
		case errors.Is(err, services.ErrStudentNoRoom):
			return response.BadRequest(c, "Student has no room assigned")
		case errors.Is(err, models.ErrOccupantMissing):
			return response.BadRequest(c, "Student is not on the room's occupant list")
		default:
			return response.InternalServerError(c, "Failed to unassign room")
		}
	}

	return response.Success(c, "Room unassigned successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// UpdateProfile applies self-service edits for the logged-in user
// @Summary Update own profile
// @Description Update the current user's contact details
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateProfileInput true "Profile fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.studentService.UpdateProfile(c.Context(), userID, &input)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.Success(c, "Profile updated successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}
