// Exposes the conversions over HTTP.
package server

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// New returns the application serving the conversion routes.
func New(cfg *Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    cfg.BodyLimit,
		AppName:      "dl",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(RequestID())
	app.Use(CORS())
	if cfg.Environment != "test" {
		app.Use(Logger())
	}

	// ============================================================
	// Routes
	// ============================================================

	app.Get("/health/live", Live)
	app.Get("/health/ready", Ready)

	h := NewHandler(cfg)
	app.Post("/convert", h.Convert)

	return app
}
