package handlers

import (
	"errors"

	"productapi/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// MsgInternalError is the body message of every unexpected failure.
const MsgInternalError = "internal server error"

// ErrorHandler renders errors returned from the handler chain as
// {"message": ...}. fiber errors keep their status and message; anything else
// is logged and hidden behind a generic 500.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}

		log.Error().Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("unhandled request error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": MsgInternalError,
		})
	}
}
