package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobtracker/api/http/presenter"
	"github.com/artem13815/jobtracker/pkg/auth"
	"github.com/artem13815/jobtracker/pkg/logging"
	"github.com/artem13815/jobtracker/pkg/security/gate"
)

// AccountHandler serves the caller's own user record.
type AccountHandler struct {
	uc  auth.AccountUseCase
	log logging.Logger
}

func NewAccountHandler(uc auth.AccountUseCase, log logging.Logger) *AccountHandler {
	return &AccountHandler{uc: uc, log: log}
}

// @Summary  Current user
// @Tags     account
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} auth.User
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /me [get]
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	u, err := h.uc.Get(c.UserContext(), uid)
	if err != nil {
		return fail(c, h.log, "get account", err)
	}
	return presenter.JSON(c, http.StatusOK, u)
}

// Delete removes the caller and everything they own.
// @Summary  Delete account
// @Tags     account
// @Security BearerAuth
// @Success  204
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /me [delete]
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	if err := h.uc.Delete(c.UserContext(), uid); err != nil {
		return fail(c, h.log, "delete account", err)
	}
	return presenter.NoContent(c)
}
