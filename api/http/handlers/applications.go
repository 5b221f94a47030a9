package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobtracker/api/http/presenter"
	"github.com/artem13815/jobtracker/pkg/application"
	"github.com/artem13815/jobtracker/pkg/logging"
	"github.com/artem13815/jobtracker/pkg/patch"
	"github.com/artem13815/jobtracker/pkg/security/gate"
)

type ApplicationHandler struct {
	uc  application.UseCase
	log logging.Logger
}

func NewApplicationHandler(uc application.UseCase, log logging.Logger) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, log: log}
}

type createApplicationRequest struct {
	CompanyName     string  `json:"companyName"`
	PositionTitle   string  `json:"positionTitle"`
	JobURL          *string `json:"jobUrl"`
	LogoURL         *string `json:"logoUrl"`
	Status          string  `json:"status"`
	SalaryMin       *int    `json:"salaryMin"`
	SalaryMax       *int    `json:"salaryMax"`
	Location        *string `json:"location"`
	IsRemote        bool    `json:"isRemote"`
	ApplicationDate *Date   `json:"applicationDate" swaggertype:"string" example:"2024-03-01"`
	Notes           *string `json:"notes"`
}

func (r createApplicationRequest) draft() application.Draft {
	d := application.Draft{
		CompanyName:   r.CompanyName,
		PositionTitle: r.PositionTitle,
		JobURL:        r.JobURL,
		LogoURL:       r.LogoURL,
		Status:        application.Status(r.Status),
		SalaryMin:     r.SalaryMin,
		SalaryMax:     r.SalaryMax,
		Location:      r.Location,
		IsRemote:      r.IsRemote,
		Notes:         r.Notes,
	}
	if r.ApplicationDate != nil {
		d.ApplicationDate = r.ApplicationDate.Time
	}
	return d
}

type updateApplicationRequest struct {
	CompanyName     *string                `json:"companyName"`
	PositionTitle   *string                `json:"positionTitle"`
	JobURL          patch.Nullable[string] `json:"jobUrl" swaggertype:"string"`
	LogoURL         patch.Nullable[string] `json:"logoUrl" swaggertype:"string"`
	Status          *string                `json:"status"`
	SalaryMin       patch.Nullable[int]    `json:"salaryMin" swaggertype:"integer"`
	SalaryMax       patch.Nullable[int]    `json:"salaryMax" swaggertype:"integer"`
	Location        patch.Nullable[string] `json:"location" swaggertype:"string"`
	IsRemote        *bool                  `json:"isRemote"`
	ApplicationDate *Date                  `json:"applicationDate" swaggertype:"string"`
	Notes           patch.Nullable[string] `json:"notes" swaggertype:"string"`
}

func (r updateApplicationRequest) patch() application.Patch {
	p := application.Patch{
		CompanyName:     r.CompanyName,
		PositionTitle:   r.PositionTitle,
		JobURL:          r.JobURL,
		LogoURL:         r.LogoURL,
		SalaryMin:       r.SalaryMin,
		SalaryMax:       r.SalaryMax,
		Location:        r.Location,
		IsRemote:        r.IsRemote,
		ApplicationDate: datePtr(r.ApplicationDate),
		Notes:           r.Notes,
	}
	if r.Status != nil {
		s := application.Status(*r.Status)
		p.Status = &s
	}
	return p
}

// List returns the caller's applications.
// @Summary List applications
// @Tags    applications
// @Produce json
// @Param   status query string false "status filter; all for no filter"
// @Param   search query string false "substring of company name or position title"
// @Security BearerAuth
// @Success 200 {array} application.Application
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	status, err := application.ParseStatusFilter(c.Query("status"))
	if err != nil {
		return fail(c, h.log, "list applications", err)
	}
	items, err := h.uc.List(c.UserContext(), uid, application.Filter{Status: status, Search: c.Query("search")})
	if err != nil {
		return fail(c, h.log, "list applications", err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Stats counts the caller's applications by status.
// @Summary Application statistics
// @Tags    applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} application.Stats
// @Router  /applications/stats [get]
func (h *ApplicationHandler) Stats(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	st, err := h.uc.Stats(c.UserContext(), uid)
	if err != nil {
		return fail(c, h.log, "application stats", err)
	}
	return presenter.JSON(c, http.StatusOK, st)
}

// @Summary  Get application
// @Tags     applications
// @Produce  json
// @Param    id path string true "application id"
// @Security BearerAuth
// @Success  200 {object} application.Application
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /applications/{id} [get]
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusNotFound, msgNotFound)
	}
	a, err := h.uc.Get(c.UserContext(), uid, id)
	if err != nil {
		return fail(c, h.log, "get application", err)
	}
	return presenter.JSON(c, http.StatusOK, a)
}

// @Summary  Create application
// @Tags     applications
// @Accept   json
// @Produce  json
// @Param    input body createApplicationRequest true "application"
// @Security BearerAuth
// @Success  201 {object} application.Application
// @Failure  400 {object} presenter.ErrorResponse
// @Router   /applications [post]
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	var req createApplicationRequest
	if msg, ok := bindJSON(c, &req); !ok {
		return presenter.Error(c, http.StatusBadRequest, msg)
	}
	a, err := h.uc.Create(c.UserContext(), uid, req.draft())
	if err != nil {
		return fail(c, h.log, "create application", err)
	}
	return presenter.JSON(c, http.StatusCreated, a)
}

// Update applies a partial update; null clears a nullable field.
// @Summary  Update application
// @Tags     applications
// @Accept   json
// @Produce  json
// @Param    id    path string                   true "application id"
// @Param    input body updateApplicationRequest true "fields to change"
// @Security BearerAuth
// @Success  200 {object} application.Application
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /applications/{id} [patch]
func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusNotFound, msgNotFound)
	}
	var req updateApplicationRequest
	if msg, ok := bindPatch(c, &req,
		"companyName", "positionTitle", "status", "isRemote", "applicationDate"); !ok {
		return presenter.Error(c, http.StatusBadRequest, msg)
	}
	a, err := h.uc.Update(c.UserContext(), uid, id, req.patch())
	if err != nil {
		return fail(c, h.log, "update application", err)
	}
	return presenter.JSON(c, http.StatusOK, a)
}

// Delete removes the application with its interviews and unlinks resources.
// @Summary  Delete application
// @Tags     applications
// @Param    id path string true "application id"
// @Security BearerAuth
// @Success  204
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /applications/{id} [delete]
func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusNotFound, msgNotFound)
	}
	if err := h.uc.Delete(c.UserContext(), uid, id); err != nil {
		return fail(c, h.log, "delete application", err)
	}
	return presenter.NoContent(c)
}
