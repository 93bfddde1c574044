package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hallmoor/binduty/internal/dto"
	"github.com/hallmoor/binduty/internal/middleware"
	"github.com/hallmoor/binduty/internal/models"
	"github.com/hallmoor/binduty/internal/services"
)

type ResidentHandler struct {
	residents *services.ResidentService
}

func NewResidentHandler(residents *services.ResidentService) *ResidentHandler {
	return &ResidentHandler{residents: residents}
}

func (h *ResidentHandler) List(c *fiber.Ctx) error {
	flats, err := h.residents.List(c.Context())
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if flats == nil {
		flats = []models.Resident{}
	}
	return c.JSON(flats)
}

func (h *ResidentHandler) Create(c *fiber.Ctx) error {
	admin, _ := middleware.Actor(c)
	var req dto.CreateResidentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	resident, err := h.residents.Add(c.Context(), admin.Email, req)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			return badRequest(c, "name and flat_number are required")
		}
		return fiber.ErrInternalServerError
	}
	return c.Status(fiber.StatusCreated).JSON(resident)
}

func (h *ResidentHandler) Update(c *fiber.Ctx) error {
	admin, _ := middleware.Actor(c)
	var req dto.UpdateResidentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	err := h.residents.Update(c.Context(), admin.Email, c.Params("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrResidentNotFound) {
			return notFound(c, "Resident not found")
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(dto.MessageResponse{Message: "Resident updated successfully"})
}

func (h *ResidentHandler) Delete(c *fiber.Ctx) error {
	admin, _ := middleware.Actor(c)
	err := h.residents.Delete(c.Context(), admin.Email, c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrResidentNotFound) {
			return notFound(c, "Resident not found")
		}
		return fiber.ErrInternalServerError
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ResidentHandler) Reorder(c *fiber.Ctx) error {
	admin, _ := middleware.Actor(c)
	var req dto.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Residents == nil {
		return badRequest(c, "No residents data provided")
	}
	if err := h.residents.Reorder(c.Context(), admin.Email, req.Residents); err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			return badRequest(c, err.Error())
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(dto.MessageResponse{Message: "Resident order updated successfully"})
}
