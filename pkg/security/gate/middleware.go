// Package gate is the Fiber authentication gate for protected routes.
package gate

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/api/http/presenter"
	"github.com/artem13815/jobtracker/pkg/auth"
	"github.com/artem13815/jobtracker/pkg/logging"
)

const localsUserID = "userId"

// NewMiddleware returns a Fiber middleware that resolves the Bearer token and
// sets the caller's user id (uuid.UUID) into c.Locals("userId"). Requests
// without a resolved identity never reach the next handler.
func NewMiddleware(resolver auth.Resolver, log logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
		if err == nil {
			var id uuid.UUID
			id, err = resolver.Resolve(c.UserContext(), token)
			if err == nil {
				c.Locals(localsUserID, id)
				return c.Next()
			}
		}
		switch {
		case errors.Is(err, auth.ErrMissingCredential):
			return presenter.Error(c, http.StatusUnauthorized, "missing Authorization header")
		case errors.Is(err, auth.ErrInvalidCredential):
			return presenter.Error(c, http.StatusUnauthorized, "invalid or expired token")
		default:
			log.Error(c.UserContext(), "resolve identity", "err", err, "path", c.Path())
			return presenter.Error(c, http.StatusInternalServerError, "authentication is temporarily unavailable")
		}
	}
}

// UserID returns the id stored by the middleware.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(localsUserID).(uuid.UUID)
	return id, ok && id != uuid.Nil
}
