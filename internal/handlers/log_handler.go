package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/hallmoor/binduty/internal/audit"
	"github.com/hallmoor/binduty/internal/dto"
	"github.com/hallmoor/binduty/internal/middleware"
)

type LogHandler struct {
	trail *audit.Trail
}

func NewLogHandler(trail *audit.Trail) *LogHandler {
	return &LogHandler{trail: trail}
}

func (h *LogHandler) List(c *fiber.Ctx) error {
	logs, err := h.trail.Logs(c.Context())
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if logs == nil {
		logs = []string{}
	}
	return c.JSON(logs)
}

func (h *LogHandler) Delete(c *fiber.Ctx) error {
	admin, _ := middleware.Actor(c)
	var req dto.DeleteLogsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	removed, err := h.trail.DeleteLogs(c.Context(), req.Logs)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	desc := fmt.Sprintf("Deleted %d log entries", removed)
	if err := h.trail.RecordAction(c.Context(), admin.Email, desc); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(dto.MessageResponse{Message: "Logs deleted successfully"})
}
