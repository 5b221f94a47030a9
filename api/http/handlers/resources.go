package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/api/http/presenter"
	"github.com/artem13815/jobtracker/pkg/logging"
	"github.com/artem13815/jobtracker/pkg/patch"
	"github.com/artem13815/jobtracker/pkg/resource"
	"github.com/artem13815/jobtracker/pkg/security/gate"
)

type ResourceHandler struct {
	uc  resource.UseCase
	log logging.Logger
}

func NewResourceHandler(uc resource.UseCase, log logging.Logger) *ResourceHandler {
	return &ResourceHandler{uc: uc, log: log}
}

type createResourceRequest struct {
	Title               string     `json:"title"`
	URL                 *string    `json:"url"`
	Category            string     `json:"category"`
	Notes               *string    `json:"notes"`
	IsReviewed          bool       `json:"isReviewed"`
	LinkedApplicationID *uuid.UUID `json:"linkedApplicationId"`
}

type updateResourceRequest struct {
	Title               *string                   `json:"title"`
	URL                 patch.Nullable[string]    `json:"url" swaggertype:"string"`
	Category            *string                   `json:"category"`
	Notes               patch.Nullable[string]    `json:"notes" swaggertype:"string"`
	IsReviewed          *bool                     `json:"isReviewed"`
	LinkedApplicationID patch.Nullable[uuid.UUID] `json:"linkedApplicationId" swaggertype:"string"`
}

func (r updateResourceRequest) patch() resource.Patch {
	p := resource.Patch{
		Title:               r.Title,
		URL:                 r.URL,
		Notes:               r.Notes,
		IsReviewed:          r.IsReviewed,
		LinkedApplicationID: r.LinkedApplicationID,
	}
	if r.Category != nil {
		cat := resource.Category(*r.Category)
		p.Category = &cat
	}
	return p
}

// @Summary List resources
// @Tags    resources
// @Produce json
// @Param   category query string false "category filter; all for no filter"
// @Security BearerAuth
// @Success 200 {array} resource.Resource
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /resources [get]
func (h *ResourceHandler) List(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	cat, err := resource.ParseCategoryFilter(c.Query("category"))
	if err != nil {
		return fail(c, h.log, "list resources", err)
	}
	items, err := h.uc.List(c.UserContext(), uid, resource.Filter{Category: cat})
	if err != nil {
		return fail(c, h.log, "list resources", err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// @Summary  Get resource
// @Tags     resources
// @Produce  json
// @Param    id path string true "resource id"
// @Security BearerAuth
// @Success  200 {object} resource.Resource
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /resources/{id} [get]
func (h *ResourceHandler) Get(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusNotFound, msgNotFound)
	}
	res, err := h.uc.Get(c.UserContext(), uid, id)
	if err != nil {
		return fail(c, h.log, "get resource", err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// @Summary  Create resource
// @Tags     resources
// @Accept   json
// @Produce  json
// @Param    input body createResourceRequest true "resource"
// @Security BearerAuth
// @Success  201 {object} resource.Resource
// @Failure  400 {object} presenter.ErrorResponse
// @Router   /resources [post]
func (h *ResourceHandler) Create(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	var req createResourceRequest
	if msg, ok := bindJSON(c, &req); !ok {
		return presenter.Error(c, http.StatusBadRequest, msg)
	}
	res, err := h.uc.Create(c.UserContext(), uid, resource.Draft{
		Title:               req.Title,
		URL:                 req.URL,
		Category:            resource.Category(req.Category),
		Notes:               req.Notes,
		IsReviewed:          req.IsReviewed,
		LinkedApplicationID: req.LinkedApplicationID,
	})
	if err != nil {
		return fail(c, h.log, "create resource", err)
	}
	return presenter.JSON(c, http.StatusCreated, res)
}

// @Summary  Update resource
// @Tags     resources
// @Accept   json
// @Produce  json
// @Param    id    path string                true "resource id"
// @Param    input body updateResourceRequest true "fields to change"
// @Security BearerAuth
// @Success  200 {object} resource.Resource
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /resources/{id} [patch]
func (h *ResourceHandler) Update(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusNotFound, msgNotFound)
	}
	var req updateResourceRequest
	if msg, ok := bindPatch(c, &req, "title", "category", "isReviewed"); !ok {
		return presenter.Error(c, http.StatusBadRequest, msg)
	}
	res, err := h.uc.Update(c.UserContext(), uid, id, req.patch())
	if err != nil {
		return fail(c, h.log, "update resource", err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// @Summary  Delete resource
// @Tags     resources
// @Param    id path string true "resource id"
// @Security BearerAuth
// @Success  204
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /resources/{id} [delete]
func (h *ResourceHandler) Delete(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusNotFound, msgNotFound)
	}
	if err := h.uc.Delete(c.UserContext(), uid, id); err != nil {
		return fail(c, h.log, "delete resource", err)
	}
	return presenter.NoContent(c)
}
