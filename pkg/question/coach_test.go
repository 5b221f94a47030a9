package question

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobtracker/pkg/apperr"
)

type stubRepo struct {
	Repository
	q Question
}

func (r stubRepo) GetForOwner(_ context.Context, userID, id uuid.UUID) (Question, error) {
	if r.q.UserID != userID || r.q.ID != id {
		return Question{}, apperr.ErrNotFound
	}
	return r.q, nil
}

type stubModel struct {
	system, user string
	reply        string
	err          error
}

func (m *stubModel) Ask(_ context.Context, system, user string) (string, error) {
	m.system, m.user = system, user
	return m.reply, m.err
}

func TestCoachSuggest(t *testing.T) {
	draft := "I fixed it"
	q := Question{
		ID: uuid.New(), UserID: uuid.New(), QuestionText: "Describe an outage",
		QuestionType: TypeExperience, Tags: []string{"oncall"}, AnswerText: &draft,
	}
	model := &stubModel{reply: "  Situation: ...  "}
	coach := NewCoach(stubRepo{q: q}, model, "test-model")

	got, err := coach.Suggest(context.Background(), q.UserID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, Suggestion{Model: "test-model", Answer: "Situation: ..."}, got)
	assert.Contains(t, model.user, "Describe an outage")
	assert.Contains(t, model.user, "oncall")
	assert.Contains(t, model.user, "I fixed it")
	assert.Contains(t, model.system, "STAR")
}

func TestCoachSuggest_Errors(t *testing.T) {
	q := Question{ID: uuid.New(), UserID: uuid.New(), QuestionText: "q", QuestionType: TypeTechnical}

	_, err := NewCoach(stubRepo{q: q}, nil, "").Suggest(context.Background(), q.UserID, q.ID)
	assert.ErrorIs(t, err, ErrCoachUnavailable)

	_, err = NewCoach(stubRepo{q: q}, &stubModel{}, "m").Suggest(context.Background(), uuid.New(), q.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	boom := errors.New("upstream down")
	_, err = NewCoach(stubRepo{q: q}, &stubModel{err: boom}, "m").Suggest(context.Background(), q.UserID, q.ID)
	assert.ErrorIs(t, err, boom)
}
