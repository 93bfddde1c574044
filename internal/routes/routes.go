package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/hallmoor/binduty/internal/config"
	"github.com/hallmoor/binduty/internal/handlers"
	"github.com/hallmoor/binduty/internal/middleware"
	"github.com/hallmoor/binduty/internal/models"
	"github.com/hallmoor/binduty/internal/services"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Dashboard *handlers.DashboardHandler
	Residents *handlers.ResidentHandler
	Rotation  *handlers.RotationHandler
	Issues    *handlers.IssueHandler
	History   *handlers.HistoryHandler
	Logs      *handlers.LogHandler
	Admins    *handlers.AdminHandler
	Settings  *handlers.SettingsHandler
	Reminders *handlers.ReminderHandler
	Health    *handlers.HealthHandler
}

func Setup(app *fiber.App, cfg *config.Config, authService *services.AuthService, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth — stricter limit against credential stuffing
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", h.Auth.Login)

	// Public: the report form and the public issue board have no login, and
	// the reminder trigger is hit by an external scheduler.
	api.Get("/issues/public", h.Issues.List)
	api.Post("/issues", h.Issues.Report)
	api.Post("/trigger-reminder", h.Reminders.Trigger)

	// Everything below requires a verified admin.
	protected := api.Group("", middleware.JWTProtected(cfg), middleware.CurrentAdmin(authService))

	anyRole := protected.Group("")
	anyRole.Get("/dashboard", h.Dashboard.Get)
	anyRole.Get("/residents", h.Residents.List)
	anyRole.Get("/issues", h.Issues.List)
	anyRole.Get("/logs", h.Logs.List)

	editors := protected.Group("", middleware.RoleRequired(models.RoleSuperuser, models.RoleEditor))
	editors.Post("/residents", h.Residents.Create)
	editors.Put("/residents/order", h.Residents.Reorder)
	editors.Put("/residents/:id", h.Residents.Update)
	editors.Put("/issues/:id", h.Issues.UpdateStatus)
	editors.Post("/announcements", h.Reminders.Announce)
	editors.Post("/set-current-turn/:id", h.Rotation.SetCurrent)
	editors.Post("/skip-turn", h.Rotation.Skip)
	editors.Post("/advance-turn", h.Rotation.Advance)
	editors.Get("/history", h.History.List)
	editors.Delete("/history", h.History.Delete)

	superusers := protected.Group("", middleware.RoleRequired(models.RoleSuperuser))
	superusers.Delete("/residents/:id", h.Residents.Delete)
	superusers.Delete("/issues", h.Issues.Delete)
	superusers.Delete("/logs", h.Logs.Delete)
	superusers.Get("/admins", h.Admins.List)
	superusers.Post("/admins", h.Admins.Create)
	superusers.Put("/admins/:id", h.Admins.Update)
	superusers.Delete("/admins/:id", h.Admins.Delete)
	superusers.Get("/settings", h.Settings.Get)
	superusers.Put("/settings", h.Settings.Update)
}
