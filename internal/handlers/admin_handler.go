package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hallmoor/binduty/internal/dto"
	"github.com/hallmoor/binduty/internal/middleware"
	"github.com/hallmoor/binduty/internal/services"
)

type AdminHandler struct {
	admins *services.AdminService
}

func NewAdminHandler(admins *services.AdminService) *AdminHandler {
	return &AdminHandler{admins: admins}
}

func (h *AdminHandler) List(c *fiber.Ctx) error {
	admins, err := h.admins.List(c.Context())
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if admins == nil {
		admins = []dto.AdminResponse{}
	}
	return c.JSON(admins)
}

func (h *AdminHandler) Create(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)
	var req dto.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	created, err := h.admins.Create(c.Context(), actor.Email, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin with this email already exists",
			})
		case errors.Is(err, services.ErrMissingFields), errors.Is(err, services.ErrInvalidRole):
			return badRequest(c, err.Error())
		}
		return fiber.ErrInternalServerError
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *AdminHandler) Update(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)
	var req dto.UpdateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	err := h.admins.Update(c.Context(), actor.Email, c.Params("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminNotFound):
			return notFound(c, "Admin not found")
		case errors.Is(err, services.ErrInvalidRole):
			return badRequest(c, err.Error())
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(dto.MessageResponse{Message: "Admin updated successfully"})
}

func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	actor, _ := middleware.Actor(c)
	err := h.admins.Delete(c.Context(), actor.Email, actor.ID, c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfDelete):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Cannot delete yourself",
			})
		case errors.Is(err, services.ErrAdminNotFound):
			return notFound(c, "Admin not found")
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(dto.MessageResponse{Message: "Admin deleted successfully"})
}
