package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/api/http/presenter"
	"github.com/artem13815/jobtracker/pkg/logging"
	"github.com/artem13815/jobtracker/pkg/patch"
	"github.com/artem13815/jobtracker/pkg/question"
	"github.com/artem13815/jobtracker/pkg/security/gate"
)

// Suggester drafts an answer for a stored question.
type Suggester interface {
	Suggest(ctx context.Context, userID, id uuid.UUID) (question.Suggestion, error)
}

type QuestionHandler struct {
	uc    question.UseCase
	coach Suggester
	log   logging.Logger
}

func NewQuestionHandler(uc question.UseCase, coach Suggester, log logging.Logger) *QuestionHandler {
	return &QuestionHandler{uc: uc, coach: coach, log: log}
}

type createQuestionRequest struct {
	QuestionText string   `json:"questionText"`
	AnswerText   *string  `json:"answerText"`
	QuestionType string   `json:"questionType"`
	IsFavorite   bool     `json:"isFavorite"`
	Tags         []string `json:"tags"`
}

type updateQuestionRequest struct {
	QuestionText *string                  `json:"questionText"`
	AnswerText   patch.Nullable[string]   `json:"answerText" swaggertype:"string"`
	QuestionType *string                  `json:"questionType"`
	IsFavorite   *bool                    `json:"isFavorite"`
	Tags         patch.Nullable[[]string] `json:"tags" swaggertype:"array,string"`
}

func (r updateQuestionRequest) patch() question.Patch {
	p := question.Patch{
		QuestionText: r.QuestionText,
		AnswerText:   r.AnswerText,
		IsFavorite:   r.IsFavorite,
		Tags:         r.Tags,
	}
	if r.QuestionType != nil {
		t := question.Type(*r.QuestionType)
		p.QuestionType = &t
	}
	return p
}

// @Summary List questions
// @Tags    questions
// @Produce json
// @Param   type   query string false "question type filter; all for no filter"
// @Param   search query string false "substring of the question text"
// @Security BearerAuth
// @Success 200 {array} question.Question
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /questions [get]
func (h *QuestionHandler) List(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	typ, err := question.ParseTypeFilter(c.Query("type"))
	if err != nil {
		return fail(c, h.log, "list questions", err)
	}
	items, err := h.uc.List(c.UserContext(), uid, question.Filter{Type: typ, Search: c.Query("search")})
	if err != nil {
		return fail(c, h.log, "list questions", err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// @Summary  Get question
// @Tags     questions
// @Produce  json
// @Param    id path string true "question id"
// @Security BearerAuth
// @Success  200 {object} question.Question
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /questions/{id} [get]
func (h *QuestionHandler) Get(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusNotFound, msgNotFound)
	}
	q, err := h.uc.Get(c.UserContext(), uid, id)
	if err != nil {
		return fail(c, h.log, "get question", err)
	}
	return presenter.JSON(c, http.StatusOK, q)
}

// @Summary  Create question
// @Tags     questions
// @Accept   json
// @Produce  json
// @Param    input body createQuestionRequest true "question"
// @Security BearerAuth
// @Success  201 {object} question.Question
// @Failure  400 {object} presenter.ErrorResponse
// @Router   /questions [post]
func (h *QuestionHandler) Create(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	var req createQuestionRequest
	if msg, ok := bindJSON(c, &req); !ok {
		return presenter.Error(c, http.StatusBadRequest, msg)
	}
	q, err := h.uc.Create(c.UserContext(), uid, question.Draft{
		QuestionText: req.QuestionText,
		AnswerText:   req.AnswerText,
		QuestionType: question.Type(req.QuestionType),
		IsFavorite:   req.IsFavorite,
		Tags:         req.Tags,
	})
	if err != nil {
		return fail(c, h.log, "create question", err)
	}
	return presenter.JSON(c, http.StatusCreated, q)
}

// @Summary  Update question
// @Tags     questions
// @Accept   json
// @Produce  json
// @Param    id    path string                true "question id"
// @Param    input body updateQuestionRequest true "fields to change"
// @Security BearerAuth
// @Success  200 {object} question.Question
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /questions/{id} [patch]
func (h *QuestionHandler) Update(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusNotFound, msgNotFound)
	}
	var req updateQuestionRequest
	if msg, ok := bindPatch(c, &req, "questionText", "questionType", "isFavorite"); !ok {
		return presenter.Error(c, http.StatusBadRequest, msg)
	}
	q, err := h.uc.Update(c.UserContext(), uid, id, req.patch())
	if err != nil {
		return fail(c, h.log, "update question", err)
	}
	return presenter.JSON(c, http.StatusOK, q)
}

// @Summary  Delete question
// @Tags     questions
// @Param    id path string true "question id"
// @Security BearerAuth
// @Success  204
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /questions/{id} [delete]
func (h *QuestionHandler) Delete(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusNotFound, msgNotFound)
	}
	if err := h.uc.Delete(c.UserContext(), uid, id); err != nil {
		return fail(c, h.log, "delete question", err)
	}
	return presenter.NoContent(c)
}

// Suggest drafts an answer with the configured chat model. Nothing is stored.
// @Summary  Suggest an answer
// @Tags     questions
// @Produce  json
// @Param    id path string true "question id"
// @Security BearerAuth
// @Success  200 {object} question.Suggestion
// @Failure  404 {object} presenter.ErrorResponse
// @Failure  503 {object} presenter.ErrorResponse
// @Router   /questions/{id}/suggestion [post]
func (h *QuestionHandler) Suggest(c *fiber.Ctx) error {
	uid, ok := gate.UserID(c)
	if !ok {
		return unauthenticated(c)
	}
	id, ok := pathID(c)
	if !ok {
		return presenter.Error(c, http.StatusNotFound, msgNotFound)
	}
	s, err := h.coach.Suggest(c.UserContext(), uid, id)
	if errors.Is(err, question.ErrCoachUnavailable) {
		return presenter.Error(c, http.StatusServiceUnavailable, err.Error())
	}
	if err != nil {
		return fail(c, h.log, "suggest answer", err)
	}
	return presenter.JSON(c, http.StatusOK, s)
}
