package handlers

import (
	"errors"
	"strconv"

	"hostelhub/internal/adapters/persistence/repositories"
	"hostelhub/internal/core/services"
	"hostelhub/internal/pkg/pagination"
	"hostelhub/internal/pkg/response"
	"hostelhub/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// RoomHandler handles room inventory endpoints
type RoomHandler struct {
	roomService *services.RoomService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *services.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// CreateRoom handles room creation
// @Summary Create room
// @Description Add a room to the inventory
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateRoomInput true "Room data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /rooms [post]
func (h *RoomHandler) CreateRoom(c *fiber.Ctx) error {
	var input services.CreateRoomInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	room, err := h.roomService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoomNumberTaken):
			return response.Conflict(c, "Room number already exists")
		default:
			return response.InternalServerError(c, "Failed to create room")
		}
	}

	return response.Created(c, "Room created successfully", fiber.Map{
		"room": room,
	})
}

// ListRooms lists rooms
// @Summary List rooms
// @Description List rooms with filters and pagination
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param block query string false "Block"
// @Param type query string false "Room type"
// @Param status query string false "Status"
// @Param floor query int false "Floor"
// @Success 200 {object} response.Response
// @Router /rooms [get]
func (h *RoomHandler) ListRooms(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := repositories.RoomFilter{
		Block:  c.Query("block"),
		Type:   c.Query("type"),
		Status: c.Query("status"),
		Offset: params.Offset,
		Limit:  params.Limit,
	}
	if v := c.Query("floor"); v != "" {
		if floor, err := strconv.Atoi(v); err == nil {
			filter.Floor = &floor
		}
	}

	rooms, total, err := h.roomService.List(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list rooms")
	}

	return response.Success(c, "Rooms retrieved successfully", pagination.NewResponse(rooms, params, total))
}

// ListAvailableRooms lists rooms with free beds
// @Summary List available rooms
// @Description List active rooms with at least one free bed
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /rooms/available [get]
func (h *RoomHandler) ListAvailableRooms(c *fiber.Ctx) error {
	rooms, err := h.roomService.ListAvailable(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list available rooms")
	}

	return response.Success(c, "Available rooms retrieved successfully", fiber.Map{
		"rooms": rooms,
	})
}

// GetRoom fetches one room
// @Summary Get room
// @Description Get one room with its occupants and maintenance history
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid room id")
	}

	room, err := h.roomService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			return response.NotFound(c, "Room not found")
		}
		return response.InternalServerError(c, "Failed to get room")
	}

	return response.Success(c, "Room retrieved successfully", fiber.Map{
		"room": room,
	})
}

// UpdateRoom applies room edits
// @Summary Update room
// @Description Update room details and status
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param body body services.UpdateRoomInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rooms/{id} [put]
func (h *RoomHandler) UpdateRoom(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid room id")
	}

	var input services.UpdateRoomInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	room, err := h.roomService.Update(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoomNotFound):
			return response.NotFound(c, "Room not found")
		case errors.Is(err, services.ErrInvalidCapacity):
			return response.BadRequest(c, "Capacity cannot be below current occupancy")
		default:
			return response.InternalServerError(c, "Failed to update room")
		}
	}

	return response.Success(c, "Room updated successfully", fiber.Map{
		"room": room,
	})
}

// DeleteRoom removes an empty room
// @Summary Delete room
// @Description Remove an empty room from the inventory
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /rooms/{id} [delete]
func (h *RoomHandler) DeleteRoom(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid room id")
	}

	if err := h.roomService.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrRoomNotFound):
			return response.NotFound(c, "Room not found")
		case errors.Is(err, services.ErrRoomHasOccupants):
			return response.Conflict(c, "Room still has occupants")
		default:
			return response.InternalServerError(c, "Failed to delete room")
		}
	}

	return response.Success(c, "Room deleted successfully", nil)
}

// LogMaintenance records a maintenance issue
// @Summary Log maintenance
// @Description Record a maintenance issue and move the room into maintenance
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param body body services.MaintenanceInput true "Maintenance data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rooms/{id}/maintenance [post]
func (h *RoomHandler) LogMaintenance(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid room id")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.MaintenanceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	room, err := h.roomService.LogMaintenance(c.Context(), id, userID, &input)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			return response.NotFound(c, "Room not found")
		}
		return response.InternalServerError(c, "Failed to log maintenance")
	}

	return response.Success(c, "Maintenance logged successfully", fiber.Map{
		"room": room,
	})
}

// RoomStats returns room inventory statistics
// @Summary Room statistics
// @Description Summarize room counts and occupancy
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /rooms/stats [get]
func (h *RoomHandler) RoomStats(c *fiber.Ctx) error {
	stats, err := h.roomService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get room statistics")
	}

	return response.Success(c, "Room statistics retrieved successfully", stats)
}
