package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hallmoor/binduty/internal/middleware"
	"github.com/hallmoor/binduty/internal/models"
	"github.com/hallmoor/binduty/internal/services"
)

type SettingsHandler struct {
	settings *services.SettingsService
}

func NewSettingsHandler(settings *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := h.settings.Get(c.Context())
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(settings)
}

func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	admin, _ := middleware.Actor(c)
	var settings models.Settings
	if err := c.BodyParser(&settings); err != nil {
		return badRequest(c, "Invalid request body")
	}
	saved, err := h.settings.Update(c.Context(), admin.Email, settings)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPausedFlag) {
			return badRequest(c, err.Error())
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(saved)
}
