package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/apperr"
	"github.com/artem13815/jobtracker/pkg/question"
)

// QuestionRepository implements question.Repository.
type QuestionRepository struct{ m *Memory }

func cloneQuestion(q question.Question) question.Question {
	q.Tags = cloneTags(q.Tags)
	return q
}

func (r *QuestionRepository) ListByOwner(_ context.Context, userID uuid.UUID, f question.Filter) ([]question.Question, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	out := make([]question.Question, 0)
	for _, q := range r.m.questions {
		if q.UserID != userID {
			continue
		}
		if f.Type != nil && q.QuestionType != *f.Type {
			continue
		}
		if f.Search != "" && !containsFold(q.QuestionText, f.Search) {
			continue
		}
		out = append(out, cloneQuestion(q))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *QuestionRepository) GetForOwner(_ context.Context, userID, id uuid.UUID) (question.Question, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	q, ok := r.m.questions[id]
	if !ok || q.UserID != userID {
		return question.Question{}, apperr.ErrNotFound
	}
	return cloneQuestion(q), nil
}

func (r *QuestionRepository) Create(_ context.Context, q question.Question) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.users[q.UserID]; !ok {
		return apperr.ErrAccessDenied
	}
	r.m.questions[q.ID] = cloneQuestion(q)
	return nil
}

func (r *QuestionRepository) UpdateForOwner(_ context.Context, userID, id uuid.UUID, p question.Patch) (question.Question, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	q, ok := r.m.questions[id]
	if !ok || q.UserID != userID {
		return question.Question{}, apperr.ErrNotFound
	}
	q = cloneQuestion(q)
	p.Apply(&q)
	r.m.questions[id] = q
	return cloneQuestion(q), nil
}

func (r *QuestionRepository) DeleteForOwner(_ context.Context, userID, id uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	q, ok := r.m.questions[id]
	if !ok || q.UserID != userID {
		return false, nil
	}
	delete(r.m.questions, id)
	return true, nil
}
