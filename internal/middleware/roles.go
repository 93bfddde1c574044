package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hallmoor/binduty/internal/dto"
)

// RoleRequired gates a route to the given roles. It must run after
// CurrentAdmin.
func RoleRequired(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		admin, ok := Actor(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if _, ok := allowed[admin.Role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Permission denied",
			})
		}
		return c.Next()
	}
}
