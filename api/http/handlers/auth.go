package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobtracker/api/http/presenter"
	"github.com/artem13815/jobtracker/pkg/auth"
	"github.com/artem13815/jobtracker/pkg/logging"
)

// AuthHandler serves local account registration and login.
type AuthHandler struct {
	useCase auth.AuthUseCase
	log     logging.Logger
}

func NewAuthHandler(useCase auth.AuthUseCase, log logging.Logger) *AuthHandler {
	return &AuthHandler{useCase: useCase, log: log}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Token     string    `json:"token"`
}

type loginResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Register handles user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "registration payload"
// @Success 201 {object} registerResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if msg, ok := bindJSON(c, &req); !ok {
		return presenter.Error(c, http.StatusBadRequest, msg)
	}

	result, err := h.useCase.Register(c.UserContext(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrUserAlreadyExists):
		return presenter.Error(c, http.StatusConflict, "user already exists")
	default:
		return fail(c, h.log, "register user", err)
	}

	return presenter.JSON(c, http.StatusCreated, registerResponse{
		ID:        result.User.ID.String(),
		Email:     result.User.Email,
		CreatedAt: result.User.CreatedAt,
		Token:     result.Token,
	})
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "login payload"
// @Success 200 {object} loginResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if msg, ok := bindJSON(c, &req); !ok {
		return presenter.Error(c, http.StatusBadRequest, msg)
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}

	result, err := h.useCase.Login(c.UserContext(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrInvalidCredentials):
		return presenter.Error(c, http.StatusUnauthorized, "invalid credentials")
	default:
		return fail(c, h.log, "login", err)
	}

	return presenter.JSON(c, http.StatusOK, loginResponse{
		ID:    result.User.ID.String(),
		Email: result.User.Email,
		Token: result.Token,
	})
}
