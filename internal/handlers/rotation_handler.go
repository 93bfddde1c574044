package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/hallmoor/binduty/internal/audit"
	"github.com/hallmoor/binduty/internal/dto"
	"github.com/hallmoor/binduty/internal/middleware"
	"github.com/hallmoor/binduty/internal/rota"
)

type RotationHandler struct {
	engine *rota.Engine
	trail  *audit.Trail
}

func NewRotationHandler(engine *rota.Engine, trail *audit.Trail) *RotationHandler {
	return &RotationHandler{engine: engine, trail: trail}
}

func (h *RotationHandler) Advance(c *fiber.Ctx) error {
	admin, _ := middleware.Actor(c)
	moved, err := h.engine.Advance(c.Context())
	if err != nil {
		if errors.Is(err, rota.ErrNotEnoughResidents) {
			return badRequest(c, "Not enough residents to rotate")
		}
		return fiber.ErrInternalServerError
	}
	if err := h.trail.RecordAction(c.Context(), admin.Email, "Duty turn manually advanced."); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(dto.MessageResponse{
		Message: fmt.Sprintf("Advanced turn. %s moved to the end.", moved),
	})
}

func (h *RotationHandler) Skip(c *fiber.Ctx) error {
	admin, _ := middleware.Actor(c)
	skipped, err := h.engine.Skip(c.Context())
	if err != nil {
		if errors.Is(err, rota.ErrNoResidents) {
			return badRequest(c, "No residents to skip")
		}
		if errors.Is(err, rota.ErrNotEnoughResidents) {
			return badRequest(c, "Not enough residents to rotate")
		}
		return fiber.ErrInternalServerError
	}
	if err := h.trail.RecordAction(c.Context(), admin.Email, "Duty Turn Skipped for "+skipped); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(dto.MessageResponse{Message: "Turn skipped successfully"})
}

func (h *RotationHandler) SetCurrent(c *fiber.Ctx) error {
	admin, _ := middleware.Actor(c)
	name, err := h.engine.SetCurrent(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, rota.ErrResidentNotFound) {
			return notFound(c, "Resident not found")
		}
		return fiber.ErrInternalServerError
	}
	if err := h.trail.RecordAction(c.Context(), admin.Email, "Duty Turn Set to "+name); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(dto.MessageResponse{
		Message: fmt.Sprintf("Current turn set to %s.", name),
	})
}
