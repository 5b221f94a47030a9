package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobtracker/api/http/presenter"
)

// ErrorHandler renders errors that escape the handlers (unknown routes,
// body limits, recovered panics) in the same {"message"} shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return presenter.Error(c, fe.Code, fe.Message)
	}
	return presenter.Error(c, fiber.StatusInternalServerError, "internal server error")
}
