package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/hallmoor/binduty/internal/dto"
	"github.com/hallmoor/binduty/internal/middleware"
	"github.com/hallmoor/binduty/internal/rota"
	"github.com/hallmoor/binduty/internal/services"
)

type ReminderHandler struct {
	reminders *services.ReminderService
	auth      *services.AuthService
}

func NewReminderHandler(reminders *services.ReminderService, auth *services.AuthService) *ReminderHandler {
	return &ReminderHandler{reminders: reminders, auth: auth}
}

// Trigger fires the duty reminder. The endpoint is hit by an external
// scheduler without credentials; a valid token makes it a manual run that
// bypasses the pause flag.
func (h *ReminderHandler) Trigger(c *fiber.Ctx) error {
	actor := services.ScheduledActor
	scheduled := true
	if raw := c.Get("x-access-token"); raw != "" {
		id, err := h.auth.ParseToken(raw)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid token for manual trigger",
			})
		}
		actor = fmt.Sprintf("Manual (%s)", id)
		scheduled = false
	}

	var req dto.TriggerReminderRequest
	_ = c.BodyParser(&req) // body is optional

	name, err := h.reminders.Trigger(c.Context(), actor, scheduled, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRemindersPaused):
			return c.JSON(dto.MessageResponse{Message: "Reminders are paused."})
		case errors.Is(err, rota.ErrNoResidents):
			return badRequest(c, "No residents to remind")
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(dto.MessageResponse{
		Message: fmt.Sprintf("Reminder sent to %s.", name),
	})
}

func (h *ReminderHandler) Announce(c *fiber.Ctx) error {
	admin, _ := middleware.Actor(c)
	var req dto.AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	count, err := h.reminders.Announce(c.Context(), admin.Email, req.Subject, req.Message, req.ResidentIDs)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			return badRequest(c, "subject and message are required")
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(dto.MessageResponse{
		Message: fmt.Sprintf("Announcement sent to %d resident(s).", count),
	})
}
