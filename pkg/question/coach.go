package question

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/llm"
)

// ErrCoachUnavailable is returned when no chat model is configured.
var ErrCoachUnavailable = errors.New("answer suggestions are not configured")

// Suggestion is a model-drafted answer. It is returned to the caller only and
// never stored.
type Suggestion struct {
	Model  string `json:"model"`
	Answer string `json:"answer"`
}

// Coach drafts answers for stored questions.
type Coach struct {
	repo  Repository
	model llm.ChatModel
	name  string
}

// NewCoach returns a Coach. A nil model makes every Suggest call fail with
// ErrCoachUnavailable.
func NewCoach(repo Repository, model llm.ChatModel, modelName string) *Coach {
	return &Coach{repo: repo, model: model, name: modelName}
}

const coachSystemPrompt = `You are an interview coach. Draft a concise answer the candidate could give.
For behavioral and experience questions use the STAR structure (situation, task, action, result).
For technical and system design questions outline the key points in order.
When the candidate already has a draft, improve it instead of starting over.
Reply with the answer text only.`

func (c *Coach) Suggest(ctx context.Context, userID, id uuid.UUID) (Suggestion, error) {
	if c.model == nil {
		return Suggestion{}, ErrCoachUnavailable
	}
	q, err := c.repo.GetForOwner(ctx, userID, id)
	if err != nil {
		return Suggestion{}, err
	}
	answer, err := c.model.Ask(ctx, coachSystemPrompt, coachPrompt(q))
	if err != nil {
		return Suggestion{}, fmt.Errorf("suggest answer: %w", err)
	}
	return Suggestion{Model: c.name, Answer: strings.TrimSpace(answer)}, nil
}

func coachPrompt(q Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question type: %s\n", q.QuestionType)
	if len(q.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(q.Tags, ", "))
	}
	fmt.Fprintf(&b, "Question: %s\n", q.QuestionText)
	if q.AnswerText != nil && strings.TrimSpace(*q.AnswerText) != "" {
		fmt.Fprintf(&b, "Current draft:\n%s\n", *q.AnswerText)
	}
	return b.String()
}
