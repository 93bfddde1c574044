package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hallmoor/binduty/internal/dto"
	"github.com/hallmoor/binduty/internal/store"
)

type HealthHandler struct {
	store store.Store
}

func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	storeStatus := "up"
	status := "ok"
	code := fiber.StatusOK
	if err := h.store.Ping(c.Context()); err != nil {
		storeStatus = "down"
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Store:     storeStatus,
	})
}
