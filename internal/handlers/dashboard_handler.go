package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hallmoor/binduty/internal/dto"
	"github.com/hallmoor/binduty/internal/rota"
	"github.com/hallmoor/binduty/internal/services"
)

type DashboardHandler struct {
	engine   *rota.Engine
	settings *services.SettingsService
}

func NewDashboardHandler(engine *rota.Engine, settings *services.SettingsService) *DashboardHandler {
	return &DashboardHandler{engine: engine, settings: settings}
}

func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	current, next, err := h.engine.DutyView(c.Context())
	if err != nil {
		return fiber.ErrInternalServerError
	}
	lastRun, err := h.settings.LastReminderDate(c.Context())
	if err != nil {
		return fiber.ErrInternalServerError
	}
	paused, err := h.settings.Paused(c.Context())
	if err != nil {
		return fiber.ErrInternalServerError
	}

	return c.JSON(dto.DashboardResponse{
		CurrentDuty:    dto.DutyPerson{Name: current},
		NextInRotation: dto.DutyPerson{Name: next},
		SystemStatus: dto.SystemStatus{
			LastReminderRun: lastRun,
			RemindersPaused: paused,
		},
	})
}
