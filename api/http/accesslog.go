package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobtracker/pkg/logging"
)

// AccessLog logs one line per request after the handler chain has run.
// Requests to skipPath are not logged.
func AccessLog(log logging.Logger, skipPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == skipPath {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		args := []any{
			"method", c.Method(),
			"route", c.Route().Path,
			"path", c.Path(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if id, ok := c.Locals("requestid").(string); ok {
			args = append(args, "request_id", id)
		}
		if status >= fiber.StatusInternalServerError {
			log.Warn(c.UserContext(), "http request", args...)
		} else {
			log.Info(c.UserContext(), "http request", args...)
		}
		return err
	}
}
