package handlers

import (
	"errors"

	"hostelhub/internal/adapters/http/middleware"
	"hostelhub/internal/adapters/persistence/repositories"
	"hostelhub/internal/core/services"
	"hostelhub/internal/pkg/pagination"
	"hostelhub/internal/pkg/response"
	"hostelhub/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// AnnouncementHandler handles the notice board endpoints
type AnnouncementHandler struct {
	announcementService *services.AnnouncementService
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(announcementService *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// PublishRequest controls email broadcast on publish
type PublishRequest struct {
	SendEmail bool `json:"send_email"`
}

// CreateAnnouncement posts a new announcement
// @Summary Create announcement
// @Description Create an announcement, optionally publishing it right away
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateAnnouncementInput true "Announcement data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /announcements [post]
func (h *AnnouncementHandler) CreateAnnouncement(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateAnnouncementInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	announcement, err := h.announcementService.Create(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTargetsRequired):
			return response.BadRequest(c, "Target users are required for a specific_users audience")
		default:
			return response.InternalServerError(c, "Failed to create announcement")
		}
	}

	return response.Created(c, "Announcement created successfully", fiber.Map{
		"announcement": announcement,
	})
}

// ListAnnouncements lists announcements
// @Summary List announcements
// @Description List announcements, non-staff only see published notices visible to them
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param status query string false "Status (staff only)"
// @Param type query string false "Type"
// @Param priority query string false "Priority"
// @Success 200 {object} response.Response
// @Router /announcements [get]
func (h *AnnouncementHandler) ListAnnouncements(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	params := pagination.GetParams(c)

	filter := repositories.AnnouncementFilter{
		Status:   c.Query("status"),
		Type:     c.Query("type"),
		Priority: c.Query("priority"),
		Offset:   params.Offset,
		Limit:    params.Limit,
	}

	announcements, total, err := h.announcementService.List(c.Context(), actor, filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list announcements")
	}

	return response.Success(c, "Announcements retrieved successfully", pagination.NewResponse(announcements, params, total))
}

// GetAnnouncement fetches one announcement
// @Summary Get announcement
// @Description Get one announcement; a student read marks it as read
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /announcements/{id} [get]
func (h *AnnouncementHandler) GetAnnouncement(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid announcement id")
	}

	announcement, err := h.announcementService.GetByID(c.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAnnouncementNotFound):
			return response.NotFound(c, "Announcement not found")
		case errors.Is(err, services.ErrAnnouncementNotVisible):
			return response.Forbidden(c, "Announcement is not visible to you")
		default:
			return response.InternalServerError(c, "Failed to get announcement")
		}
	}

	return response.Success(c, "Announcement retrieved successfully", fiber.Map{
		"announcement": announcement,
	})
}

// UpdateAnnouncement edits an announcement
// @Summary Update announcement
// @Description Update an announcement's content and settings
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Param body body services.UpdateAnnouncementInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /announcements/{id} [put]
func (h *AnnouncementHandler) UpdateAnnouncement(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid announcement id")
	}

	var input services.UpdateAnnouncementInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	announcement, err := h.announcementService.Update(c.Context(), id, &input)
	if err != nil {
		if errors.Is(err, services.ErrAnnouncementNotFound) {
			return response.NotFound(c, "Announcement not found")
		}
		return response.InternalServerError(c, "Failed to update announcement")
	}

	return response.Success(c, "Announcement updated successfully", fiber.Map{
		"announcement": announcement,
	})
}

// PublishAnnouncement publishes a draft
// @Summary Publish announcement
// @Description Publish a draft announcement, optionally emailing the audience
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Param body body PublishRequest false "Publish options"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /announcements/{id}/publish [patch]
func (h *AnnouncementHandler) PublishAnnouncement(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid announcement id")
	}

	var req PublishRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return response.BadRequest(c, "Invalid request body")
	}

	announcement, err := h.announcementService.Publish(c.Context(), id, req.SendEmail)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAnnouncementNotFound):
			return response.NotFound(c, "Announcement not found")
		case errors.Is(err, services.ErrAnnouncementNotDraft):
			return response.BadRequest(c, "Only draft announcements can be published")
		default:
			return response.InternalServerError(c, "Failed to publish announcement")
		}
	}

	return response.Success(c, "Announcement published successfully", fiber.Map{
		"announcement": announcement,
	})
}

// ArchiveAnnouncement archives an announcement
// @Summary Archive announcement
// @Description Move an announcement into the archive
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /announcements/{id}/archive [patch]
func (h *AnnouncementHandler) ArchiveAnnouncement(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid announcement id")
	}

	announcement, err := h.announcementService.Archive(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrAnnouncementNotFound) {
			return response.NotFound(c, "Announcement not found")
		}
		return response.InternalServerError(c, "Failed to archive announcement")
	}

	return response.Success(c, "Announcement archived successfully", fiber.Map{
		"announcement": announcement,
	})
}

// DeleteAnnouncement removes an announcement
// @Summary Delete announcement
// @Description Delete an announcement permanently
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /announcements/{id} [delete]
func (h *AnnouncementHandler) DeleteAnnouncement(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid announcement id")
	}

	if err := h.announcementService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrAnnouncementNotFound) {
			return response.NotFound(c, "Announcement not found")
		}
		return response.InternalServerError(c, "Failed to delete announcement")
	}

	return response.Success(c, "Announcement deleted successfully", nil)
}

// ToggleLike toggles the actor's like on an announcement
// @Summary Toggle like
// @Description Like or unlike an announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /announcements/{id}/like [post]
func (h *AnnouncementHandler) ToggleLike(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid announcement id")
	}

	announcement, liked, err := h.announcementService.ToggleLike(c.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAnnouncementNotFound):
			return response.NotFound(c, "Announcement not found")
		case errors.Is(err, services.ErrAnnouncementNotVisible):
			return response.Forbidden(c, "Announcement is not visible to you")
		default:
			return response.InternalServerError(c, "Failed to toggle like")
		}
	}

	message := "Announcement liked"
	if !liked {
		message = "Announcement unliked"
	}
	return response.Success(c, message, fiber.Map{
		"announcement": announcement,
		"liked":        liked,
	})
}

// AddComment appends a comment to an announcement
// @Summary Add comment
// @Description Comment on a visible announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Param body body services.CommentInput true "Comment"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /announcements/{id}/comments [post]
func (h *AnnouncementHandler) AddComment(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid announcement id")
	}

	var input services.CommentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	announcement, err := h.announcementService.AddComment(c.Context(), actor, id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAnnouncementNotFound):
			return response.NotFound(c, "Announcement not found")
		case errors.Is(err, services.ErrAnnouncementNotVisible):
			return response.Forbidden(c, "Announcement is not visible to you")
		default:
			return response.InternalServerError(c, "Failed to add comment")
		}
	}

	return response.Success(c, "Comment added successfully", fiber.Map{
		"announcement": announcement,
	})
}

// AnnouncementStats returns notice board statistics
// @Summary Announcement statistics
// @Description Summarize announcement counts by status
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /announcements/stats [get]
func (h *AnnouncementHandler) AnnouncementStats(c *fiber.Ctx) error {
	stats, err := h.announcementService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get announcement statistics")
	}

	return response.Success(c, "Announcement statistics retrieved successfully", stats)
}
