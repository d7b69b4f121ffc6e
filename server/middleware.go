package server

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/google/uuid"
)

// ============================================================
// Middleware
// ============================================================

// Logger returns the access log middleware.
func Logger() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} | id: ${respHeader:X-Request-ID}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}

// CORS allows browser uploads from any origin.
func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowHeaders:  []string{"*"},
		AllowMethods:  []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions},
		ExposeHeaders: []string{fiber.HeaderXRequestID, fiber.HeaderContentDisposition},
	})
}

type requestIDKey struct{}

// RequestID tags every response with an X-Request-ID header,
// keeping the one sent by the client when it is a valid UUID.
func RequestID() fiber.Handler {
	return func(c fiber.Ctx) error {
		parsed, err := uuid.Parse(c.Get(fiber.HeaderXRequestID))
		if err != nil {
			parsed = uuid.New()
		}
		id := parsed.String()
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals(requestIDKey{}, id)
		return c.Next()
	}
}

// requestID returns the identifier set by RequestID.
func requestID(c fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey{}).(string)
	return id
}
