package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hallmoor/binduty/internal/dto"
	"github.com/hallmoor/binduty/internal/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	token, admin, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid credentials",
			})
		}
		return fiber.ErrInternalServerError
	}

	return c.JSON(dto.LoginResponse{
		Token: token,
		User:  dto.AdminResponse{ID: admin.ID, Email: admin.Email, Role: admin.Role},
	})
}
