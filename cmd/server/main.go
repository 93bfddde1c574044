package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"

	"github.com/hallmoor/binduty/internal/audit"
	"github.com/hallmoor/binduty/internal/config"
	"github.com/hallmoor/binduty/internal/handlers"
	"github.com/hallmoor/binduty/internal/logging"
	"github.com/hallmoor/binduty/internal/middleware"
	"github.com/hallmoor/binduty/internal/notify"
	"github.com/hallmoor/binduty/internal/rota"
	"github.com/hallmoor/binduty/internal/routes"
	"github.com/hallmoor/binduty/internal/services"
	"github.com/hallmoor/binduty/internal/store"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}

	st, err := openStore(cfg)
	if err != nil {
		slog.Error("store connection failed", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	slog.Info("store connected", "backend", cfg.StoreBackend)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	var sender notify.Sender
	if cfg.Notifier == "provider" {
		sender = notify.NewProviderSender(cfg)
	} else {
		sender = notify.NewMockSender()
	}
	dispatcher := notify.NewDispatcher(sender)

	trail := audit.NewTrail(st)
	engine := rota.NewEngine(st)
	authService := services.NewAuthService(st, cfg)
	residentService := services.NewResidentService(st, trail)
	adminService := services.NewAdminService(st, trail)
	settingsService := services.NewSettingsService(st, trail)
	issueService := services.NewIssueService(st, trail, dispatcher, settingsService, cfg)
	reminderService := services.NewReminderService(engine, trail, dispatcher, settingsService, residentService, cfg)

	h := routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Dashboard: handlers.NewDashboardHandler(engine, settingsService),
		Residents: handlers.NewResidentHandler(residentService),
		Rotation:  handlers.NewRotationHandler(engine, trail),
		Issues:    handlers.NewIssueHandler(issueService),
		History:   handlers.NewHistoryHandler(trail),
		Logs:      handlers.NewLogHandler(trail),
		Admins:    handlers.NewAdminHandler(adminService),
		Settings:  handlers.NewSettingsHandler(settingsService),
		Reminders: handlers.NewReminderHandler(reminderService, authService),
		Health:    handlers.NewHealthHandler(st),
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, authService, h)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	if err := st.Close(); err != nil {
		slog.Error("store close error", "error", err)
	}

	slog.Info("server stopped")
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.StoreBackend == "postgres" {
		return store.NewPostgres(cfg)
	}
	return store.NewRedis(cfg), nil
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
