package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/hallmoor/binduty/internal/audit"
	"github.com/hallmoor/binduty/internal/dto"
	"github.com/hallmoor/binduty/internal/middleware"
	"github.com/hallmoor/binduty/internal/models"
)

type HistoryHandler struct {
	trail *audit.Trail
}

func NewHistoryHandler(trail *audit.Trail) *HistoryHandler {
	return &HistoryHandler{trail: trail}
}

func (h *HistoryHandler) List(c *fiber.Ctx) error {
	history, err := h.trail.History(c.Context())
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if history == nil {
		history = []models.CommunicationEntry{}
	}
	return c.JSON(history)
}

func (h *HistoryHandler) Delete(c *fiber.Ctx) error {
	admin, _ := middleware.Actor(c)
	var req dto.DeleteIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	removed, err := h.trail.DeleteHistory(c.Context(), req.IDs)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	desc := fmt.Sprintf("Deleted %d history item(s)", removed)
	if err := h.trail.RecordAction(c.Context(), admin.Email, desc); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(dto.MessageResponse{Message: "History items deleted successfully"})
}
