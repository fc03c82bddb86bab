package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDLocalsKey = "request_id"

// RequestID tags every request with a UUID, reusing an incoming X-Request-ID header.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: requestIDLocalsKey,
	})
}

// GetRequestID returns the request ID assigned by RequestID, if any.
func GetRequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDLocalsKey).(string); ok {
		return id
	}
	return ""
}

// RequestLogger writes one structured line per request. The level follows the
// final status: error for 5xx, warn for 4xx, info otherwise.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		// The app error handler writes the status after this middleware
		// returns, so derive it from the error instead.
		if chainErr != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(chainErr, &fe) {
				status = fe.Code
			}
		}

		var e *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			e = log.Error().Err(chainErr)
		case status >= fiber.StatusBadRequest:
			e = log.Warn()
		default:
			e = log.Info()
		}

		if id := GetRequestID(c); id != "" {
			e = e.Str("request_id", id)
		}

		e.Dur("latency", time.Since(start)).
			Int("status", status).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Str("user_agent", c.Get(fiber.HeaderUserAgent)).
			Msg("API")

		return chainErr
	}
}
