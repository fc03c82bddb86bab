package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// ErrOriginNotAllowed is returned for cross-origin requests from any origin
// other than the configured one.
var ErrOriginNotAllowed = fiber.NewError(fiber.StatusForbidden, "origin not allowed by CORS")

// OriginGuard rejects requests whose Origin header does not match
// allowedOrigin. Requests without an Origin header (same-origin, curl,
// server-to-server) pass through.
func OriginGuard(allowedOrigin string) fiber.Handler {
	allowed := strings.TrimSuffix(allowedOrigin, "/")
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" || strings.EqualFold(strings.TrimSuffix(origin, "/"), allowed) {
			return c.Next()
		}
		return ErrOriginNotAllowed
	}
}

// CORS chains the origin guard with fiber's CORS middleware, which answers
// preflight requests and sets the Access-Control-* headers for the allowed origin.
func CORS(allowedOrigin string) []fiber.Handler {
	return []fiber.Handler{
		OriginGuard(allowedOrigin),
		cors.New(cors.Config{
			AllowOrigins: strings.TrimSuffix(allowedOrigin, "/"),
			AllowMethods: strings.Join([]string{
				fiber.MethodGet,
				fiber.MethodPost,
				fiber.MethodPut,
				fiber.MethodPatch,
				fiber.MethodDelete,
				fiber.MethodOptions,
			}, ","),
			AllowHeaders: "Origin, Content-Type, Accept",
		}),
	}
}
