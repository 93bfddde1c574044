package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/hallmoor/binduty/internal/config"
	"github.com/hallmoor/binduty/internal/dto"
	"github.com/hallmoor/binduty/internal/models"
	"github.com/hallmoor/binduty/internal/services"
)

// AdminContextKey is where CurrentAdmin stores the resolved models.Admin.
const AdminContextKey = "admin"

// JWTProtected verifies the token from the x-access-token header, the header
// the original web client sends.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: "header:x-access-token",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// CurrentAdmin resolves the admin behind the verified token and stores it in
// the request context. A token for a deleted admin is rejected.
func CurrentAdmin(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid claims",
			})
		}
		id, _ := claims["id"].(string)
		admin, err := authService.FindByID(c.Context(), id)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		c.Locals(AdminContextKey, admin)
		return c.Next()
	}
}

// Actor returns the authenticated admin from the request context.
func Actor(c *fiber.Ctx) (models.Admin, bool) {
	admin, ok := c.Locals(AdminContextKey).(models.Admin)
	return admin, ok
}
