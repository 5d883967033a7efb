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
	"github.com/storehubhq/storehub-backend/internal/config"
	"github.com/storehubhq/storehub-backend/internal/database"
	"github.com/storehubhq/storehub-backend/internal/handlers"
	"github.com/storehubhq/storehub-backend/internal/logging"
	"github.com/storehubhq/storehub-backend/internal/middleware"
	"github.com/storehubhq/storehub-backend/internal/ownership"
	"github.com/storehubhq/storehub-backend/internal/routes"
	"github.com/storehubhq/storehub-backend/internal/services"
	"github.com/storehubhq/storehub-backend/internal/uploader"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Database log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		dbLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Services
	uploads := uploader.NewHTTPClient(cfg)
	resolver := ownership.NewResolver(database.DB)
	authService := services.NewAuthService(database.DB, cfg)
	userService := services.NewUserService(database.DB, resolver, uploads)
	contactService := services.NewContactService(database.DB, resolver)
	addressService := services.NewAddressService(database.DB, resolver)
	storeService := services.NewStoreService(database.DB, resolver, uploads)
	bannerService := services.NewBannerService(database.DB, resolver)
	categoryService := services.NewCategoryService(database.DB, resolver)
	colorService := services.NewColorService(database.DB, resolver)
	productService := services.NewProductService(database.DB, resolver, uploads)
	imageService := services.NewImageService(database.DB, resolver, uploads)

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

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    25 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
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

	// Routes
	routes.Setup(app, cfg, database.DB, routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Health:   handlers.NewHealthHandler(database.DB),
		User:     handlers.NewUserHandler(userService),
		Contact:  handlers.NewContactHandler(contactService),
		Address:  handlers.NewAddressHandler(addressService),
		Store:    handlers.NewStoreHandler(storeService),
		Banner:   handlers.NewBannerHandler(bannerService),
		Category: handlers.NewCategoryHandler(categoryService),
		Color:    handlers.NewColorHandler(colorService),
		Product:  handlers.NewProductHandler(productService),
		Image:    handlers.NewImageHandler(imageService),
	})

	// Graceful shutdown
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

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Server errors keep their detail in the logs, not the response.
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"success":   false,
		"errors":    []fiber.Map{{"message": message}},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
