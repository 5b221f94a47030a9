package question

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/apperr"
)

type UseCase interface {
	List(ctx context.Context, userID uuid.UUID, f Filter) ([]Question, error)
	Get(ctx context.Context, userID, id uuid.UUID) (Question, error)
	Create(ctx context.Context, userID uuid.UUID, d Draft) (Question, error)
	Update(ctx context.Context, userID, id uuid.UUID, p Patch) (Question, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, f Filter) ([]Question, error) {
	f.Search = strings.TrimSpace(f.Search)
	return s.repo.ListByOwner(ctx, userID, f)
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (Question, error) {
	return s.repo.GetForOwner(ctx, userID, id)
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, d Draft) (Question, error) {
	if err := d.Validate(); err != nil {
		return Question{}, err
	}
	q := Question{
		ID:           uuid.New(),
		UserID:       userID,
		QuestionText: d.QuestionText,
		AnswerText:   d.AnswerText,
		QuestionType: d.QuestionType,
		IsFavorite:   d.IsFavorite,
		Tags:         d.Tags,
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return Question{}, err
	}
	return q, nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, p Patch) (Question, error) {
	if err := p.Validate(); err != nil {
		return Question{}, err
	}
	return s.repo.UpdateForOwner(ctx, userID, id, p)
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ok, err := s.repo.DeleteForOwner(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	return nil
}
