package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/api/http/presenter"
	"github.com/artem13815/jobtracker/pkg/apperr"
	"github.com/artem13815/jobtracker/pkg/interview"
	"github.com/artem13815/jobtracker/pkg/logging"
	"github.com/artem13815/jobtracker/pkg/patch"
	"github.com/artem13815/jobtracker/pkg/security/gate"
)

type InterviewHandler struct {
	uc  interview.UseCase
	log logging.Logger
}

func NewInterviewHandler(uc interview.UseCase, log logging.Logger) *InterviewHandler {
	return &InterviewHandler{uc: uc, log: log}
}

type createInterviewRequest struct {
	ApplicationID    applicationRef `json:"applicationId" swaggertype:"string" format:"uuid"`
	InterviewType    string         `json:"interviewType"`
	InterviewDate    *Date          `json:"interviewDate" swaggertype:"string" example:"2024-05-01T15:00:00Z"`
	DurationMinutes  *int           `json:"durationMinutes"`
	InterviewerNames *string        `json:"interviewerNames"`
	Platform         *string        `json:"platform"`
	Status           string         `json:"status"`
	PrepNotes        *string        `json:"prepNotes"`
	InterviewNotes   *string        `json:"interviewNotes"`
	QuestionsAsked   *string        `json:"questionsAsked"`
	Rating           *int           `json:"rating"`
	FollowUpActions  *string        `json:"followUpActions"`
}

func (r createInterviewRequest) draft() interview.Draft {
	d := interview.Draft{
		ApplicationID:    r.ApplicationID.UUID,
		InterviewType:    interview.Type(r.InterviewType),
		DurationMinutes:  r.DurationMinutes,
		InterviewerNames: r.InterviewerNames,
		Platform:         r.Platform,
		Status:           interview.Status(r.Status),
		PrepNotes:        r.PrepNotes,
		InterviewNotes:   r.InterviewNotes,
		QuestionsAsked:   r.QuestionsAsked,
		Rating:           r.Rating,
		FollowUpActions:  r.FollowUpActions,
	}
	if r.InterviewDate != nil {
		d.InterviewDate = r.InterviewDate.Time
	}
	return d
}

type updateInterviewRequest struct {
	ApplicationID    *applicationRef        `json:"applicationId" swaggertype:"string" format:"uuid"`
	InterviewType    *string                `json:"interviewType"`
	InterviewDate    *Date                  `json:"interviewDate" swaggertype:"string"`
	DurationMinutes  patch.Nullable[int]    `json:"durationMinutes" swaggertype:"integer"`
	InterviewerNames patch.Nullable[string] `json:"interviewerNames" swaggertype:"string"`
	Platform         patch.Nullable[string] `json:"platform" swaggertype:"string"`
	Status           *string                `json:"status"`
	PrepNotes        patch.Nullable[string] `json:"prepNotes" swaggertype:"string"`
	InterviewNotes   patch.Nullable[string] `json:"interviewNotes" swaggertype:"string"`
	QuestionsAsked   patch.Nullable[string] `json:"questionsAsked" swaggertype:"string"`
	Rating           patch.Nullable[int]    `json:"rating" swaggertype:"integer"`
	FollowUpActions  patch.Nullable[string] `json:"followUpActions" swaggertype:"string"`
}

func (r updateInterviewRequest) patch() interview.Patch {
	p := interview.Patch{
		InterviewDate:    datePtr(r.InterviewDate),
		DurationMinutes:  r.DurationMinutes,
		InterviewerNames: r.InterviewerNames,
		Platform:         r.Platform,
		PrepNotes:        r.PrepNotes,
		InterviewNotes:   r.InterviewNotes,
		QuestionsAsked:   r.QuestionsAsked,
		Rating:           r.Rating,
		FollowUpActions:  r.FollowUpActions,
	}
	if r.ApplicationID != nil {
		id := r.ApplicationID.UUID
		p.ApplicationID = &id
	}
	if r.InterviewType != nil {
		t := interview.Type(*r.InterviewType)
		p.InterviewType = &t
	}
	if r.Status != nil {
		s := interview.Status(*r.Status)
		p.Status = &s
	}
	return p
}

// List returns the caller's interviews with their application's company and
// position, soonest first.
// @Summary List interviews
// @Tags    interviews
// @Produce json
// @Param   applicationId query string false "only interviews of this application"
// @Param   status        query string false "status filter; all for no filter"
// @Security BearerAuth
// @Success 200 {array} interview.Listing
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /interviews [get]
func (h *InterviewHandler) List(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	var f interview.Filter
	if v := strings.TrimSpace(c.Query("applicationId")); v != "" {
		appID, err := uuid.Parse(v)
		if err != nil {
			return fail(c, h.log, "list interviews", apperr.Validation("invalid applicationId: "+v))
		}
		f.ApplicationID = &appID
	}
	status, err := interview.ParseStatusFilter(c.Query("status"))
	if err != nil {
		return fail(c, h.log, "list interviews", err)
	}
	f.Status = status

	items, err := h.uc.List(c.UserContext(), uid, f)
	if err != nil {
		return fail(c, h.log, "list interviews", err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Upcoming returns scheduled interviews from now on.
// @Summary Upcoming interviews
// @Tags    interviews
// @Produce json
// @Param   limit query int false "maximum number of interviews (default 5, max 50)"
// @Security BearerAuth
// @Success 200 {array} interview.Listing
// @Router  /interviews/upcoming [get]
func (h *InterviewHandler) Upcoming(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	items, err := h.uc.Upcoming(c.UserContext(), uid, c.QueryInt("limit", interview.DefaultUpcomingLimit))
	if err != nil {
		return fail(c, h.log, "upcoming interviews", err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// @Summary  Get interview
// @Tags     interviews
// @Produce  json
// @Param    id path string true "interview id"
// @Security BearerAuth
// @Success  200 {object} interview.Interview
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /interviews/{id} [get]
func (h *InterviewHandler) Get(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusNotFound, msgNotFound)
	}
	iv, err := h.uc.Get(c.UserContext(), uid, id)
	if err != nil {
		return fail(c, h.log, "get interview", err)
	}
	return presenter.JSON(c, http.StatusOK, iv)
}

// Create schedules an interview for one of the caller's applications.
// @Summary  Create interview
// @Tags     interviews
// @Accept   json
// @Produce  json
// @Param    input body createInterviewRequest true "interview"
// @Security BearerAuth
// @Success  201 {object} interview.Interview
// @Failure  400 {object} presenter.ErrorResponse
// @Router   /interviews [post]
func (h *InterviewHandler) Create(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	var req createInterviewRequest
	if msg, ok := bindJSON(c, &req); !ok {
		return presenter.Error(c, http.StatusBadRequest, msg)
	}
	iv, err := h.uc.Create(c.UserContext(), uid, req.draft())
	if err != nil {
		return fail(c, h.log, "create interview", err)
	}
	return presenter.JSON(c, http.StatusCreated, iv)
}

// @Summary  Update interview
// @Tags     interviews
// @Accept   json
// @Produce  json
// @Param    id    path string                 true "interview id"
// @Param    input body updateInterviewRequest true "fields to change"
// @Security BearerAuth
// @Success  200 {object} interview.Interview
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /interviews/{id} [patch]
func (h *InterviewHandler) Update(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusNotFound, msgNotFound)
	}
	var req updateInterviewRequest
	if msg, ok := bindPatch(c, &req, "applicationId", "interviewType", "interviewDate", "status"); !ok {
		return presenter.Error(c, http.StatusBadRequest, msg)
	}
	iv, err := h.uc.Update(c.UserContext(), uid, id, req.patch())
	if err != nil {
		return fail(c, h.log, "update interview", err)
	}
	return presenter.JSON(c, http.StatusOK, iv)
}

// @Summary  Delete interview
// @Tags     interviews
// @Param    id path string true "interview id"
// @Security BearerAuth
// @Success  204
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /interviews/{id} [delete]
func (h *InterviewHandler) Delete(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusNotFound, msgNotFound)
	}
	if err := h.uc.Delete(c.UserContext(), uid, id); err != nil {
		return fail(c, h.log, "delete interview", err)
	}
	return presenter.NoContent(c)
}
